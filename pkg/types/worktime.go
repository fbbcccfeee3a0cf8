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

// ErrInvalidWorktime некорректная длительность
var ErrInvalidWorktime = errors.New("invalid worktime format")

// Worktime длительность услуги, в JSON представлена как "HH:MM:SS"
type Worktime time.Duration

// NewWorktime создает длительность из часов, минут и секунд
func NewWorktime(hours, minutes, seconds int) Worktime {
	return Worktime(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second)
}

// ParseWorktime разбирает "HH:MM:SS" или "HH:MM", часы могут быть больше 23
func ParseWorktime(s string) (Worktime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWorktime, s)
	}

	values := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || (i > 0 && v > 59) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWorktime, s)
		}
		values[i] = v
	}

	return NewWorktime(values[0], values[1], values[2]), nil
}

func (w Worktime) Duration() time.Duration {
	return time.Duration(w)
}

// Seconds длительность в целых секундах
func (w Worktime) Seconds() int64 {
	return int64(time.Duration(w) / time.Second)
}

func (w Worktime) String() string {
	total := w.Seconds()
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func (w Worktime) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Worktime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseWorktime(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Scan читает длительность из колонки worktime_seconds
func (w *Worktime) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*w = Worktime(time.Duration(v) * time.Second)
	case int32:
		*w = Worktime(time.Duration(v) * time.Second)
	case nil:
		*w = 0
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidWorktime, src)
	}
	return nil
}

func (w Worktime) Value() (driver.Value, error) {
	return w.Seconds(), nil
}
