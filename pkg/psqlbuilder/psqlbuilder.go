package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder построитель запросов с плейсхолдерами $1, $2 (PostgreSQL)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}

// Builder построитель запросов под конкретный диалект
// locking=false отключает FOR UPDATE (sqlite не поддерживает блокировку строк)
type Builder struct {
	sb      squirrel.StatementBuilderType
	locking bool
}

// New создает построитель с заданным форматом плейсхолдеров
func New(format squirrel.PlaceholderFormat, locking bool) Builder {
	return Builder{
		sb:      squirrel.StatementBuilder.PlaceholderFormat(format),
		locking: locking,
	}
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b Builder) Insert(into string) squirrel.InsertBuilder {
	return b.sb.Insert(into)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b Builder) Delete(from string) squirrel.DeleteBuilder {
	return b.sb.Delete(from)
}

// ForUpdate добавляет FOR UPDATE, если диалект поддерживает блокировку строк
func (b Builder) ForUpdate(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if !b.locking {
		return q
	}
	return q.Suffix("FOR UPDATE")
}

// SupportsLocking сообщает, поддерживает ли диалект блокировки
func (b Builder) SupportsLocking() bool {
	return b.locking
}
