package dialect

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	d, err = Parse("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	_, err = Parse("mysql")
	assert.Error(t, err)
}

func TestPostgresErrorClassification(t *testing.T) {
	overlap := fmt.Errorf("wrapped: %w", &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})
	assert.True(t, IsConstraintViolation(overlap, "bookings_no_overlap"))
	assert.False(t, IsConstraintViolation(overlap, "availability_windows_no_overlap"))

	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, IsRetryable(fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestSQLiteErrorClassification(t *testing.T) {
	db, err := sql.Open(SQLite.DriverName(), "file:"+filepath.Join(t.TempDir(), "d.db")+"?_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE parents (id INTEGER PRIMARY KEY, name TEXT UNIQUE);
		CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER REFERENCES parents(id) ON DELETE RESTRICT);
		CREATE TRIGGER parents_guard BEFORE INSERT ON parents WHEN NEW.name = 'forbidden'
		BEGIN SELECT RAISE(ABORT, 'parents_guard'); END;
	`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO parents (id, name) VALUES (1, 'a')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO parents (id, name) VALUES (2, 'a')`)
	assert.True(t, IsUniqueViolation(err))

	_, err = db.Exec(`INSERT INTO children (parent_id) VALUES (1)`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM parents WHERE id = 1`)
	assert.True(t, IsForeignKeyViolation(err), "ON DELETE RESTRICT: %v", err)

	_, err = db.Exec(`INSERT INTO children (parent_id) VALUES (42)`)
	assert.True(t, IsForeignKeyViolation(err), "missing parent: %v", err)

	_, err = db.Exec(`INSERT INTO parents (id, name) VALUES (3, 'forbidden')`)
	assert.True(t, IsConstraintViolation(err, "parents_guard"))
	assert.False(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err), "a trigger abort is not a foreign key error")
}
