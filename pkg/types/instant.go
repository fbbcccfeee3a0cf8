package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInstant некорректная метка времени
var ErrInvalidInstant = errors.New("invalid instant format")

// InstantLayout формат хранения: UTC с точностью до секунды
// Строки фиксированной ширины сравниваются лексикографически (sqlite)
const InstantLayout = "2006-01-02T15:04:05Z"

var instantLayouts = []string{
	InstantLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// Instant момент времени для хранения в БД
type Instant struct {
	time.Time
}

// NewInstant обрезает t до секунд и переводит в UTC
func NewInstant(t time.Time) Instant {
	return Instant{Time: t.UTC().Truncate(time.Second)}
}

// Scan поддерживает TIMESTAMPTZ (postgres) и TEXT (sqlite)
func (i *Instant) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		i.Time = time.Time{}
		return nil
	case time.Time:
		i.Time = v.UTC()
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidInstant, src)
	}

	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			i.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidInstant, raw)
}

func (i Instant) Value() (driver.Value, error) {
	if i.Time.IsZero() {
		return nil, nil
	}
	return i.Time.UTC().Format(InstantLayout), nil
}
