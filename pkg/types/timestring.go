package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeString некорректный формат времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow время вышло за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

const secondsPerDay = 24 * 60 * 60

// TimeString время суток без даты в формате "HH:MM:SS"
// Пустое значение означает "не задано"
type TimeString string

// NewTimeString берёт время суток из time.Time (в его собственной локации)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04:05"))
}

// NewTimeStringFromString разбирает "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		values[i] = v
	}

	return fromSeconds(values[0]*3600 + values[1]*60 + values[2]), nil
}

func fromSeconds(sec int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60))
}

// Seconds количество секунд от начала суток
func (t TimeString) Seconds() int {
	if t == "" {
		return 0
	}
	var h, m, s int
	_, _ = fmt.Sscanf(string(t), "%02d:%02d:%02d", &h, &m, &s)
	return h*3600 + m*60 + s
}

// Add сдвигает время на d, результат должен остаться в пределах суток
func (t TimeString) Add(d time.Duration) (TimeString, error) {
	sec := t.Seconds() + int(d/time.Second)
	if sec < 0 || sec >= secondsPerDay {
		return "", fmt.Errorf("%w: %s + %s", ErrTimeOverflow, t, d)
	}
	return fromSeconds(sec), nil
}

// AddMinutes сдвигает время на заданное число минут
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	return t.Add(time.Duration(minutes) * time.Minute)
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Seconds() < other.Seconds()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Seconds() > other.Seconds()
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(t))
	return err
}

func (t TimeString) String() string {
	return string(t)
}

// Short возвращает "HH:MM"
func (t TimeString) Short() string {
	if len(t) < 5 {
		return string(t)
	}
	return string(t[:5])
}

// OnDate собирает момент времени из даты и времени суток в локации loc
func (t TimeString) OnDate(d Date, loc *time.Location) time.Time {
	sec := t.Seconds()
	y, m, day := d.Time(time.UTC).Date()
	return time.Date(y, m, day, sec/3600, (sec%3600)/60, sec%60, 0, loc)
}

func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan поддерживает TIME (postgres) и TEXT (sqlite)
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}

	// postgres может вернуть дробные секунды "09:00:00.000000"
	if i := strings.IndexByte(raw, '.'); i > 0 {
		raw = raw[:i]
	}
	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeString) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	return string(t), nil
}
