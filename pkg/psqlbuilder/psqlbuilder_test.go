package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").From("bookings").Where(squirrel.Eq{"user_id": 7}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE user_id = $1", query)
	assert.Equal(t, []interface{}{7}, args)
}

func TestBuilder_ForUpdate(t *testing.T) {
	pg := New(squirrel.Dollar, true)
	lite := New(squirrel.Question, false)

	query, _, err := pg.ForUpdate(pg.Select("id").From("bookings").Where(squirrel.Eq{"id": 1})).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE id = $1 FOR UPDATE", query)

	query, _, err = lite.ForUpdate(lite.Select("id").From("bookings").Where(squirrel.Eq{"id": 1})).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE id = ?", query)
}
