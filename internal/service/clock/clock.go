// Package clock переводит моменты времени в настенное время настроенного часового пояса
//
// Окна доступности хранятся как дата и время без зоны и сравниваются в зоне из настроек,
// бронирования хранятся как абсолютные моменты. Зона передаётся явно, глобальной зоны нет.
package clock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	// ErrInvalidDateTime возвращается, когда строку нельзя разобрать как дату и время
	ErrInvalidDateTime = errors.New("clock: invalid date_time")

	// ErrInvalidTimezone возвращается, когда в настройках сохранена неизвестная зона
	ErrInvalidTimezone = errors.New("clock: invalid timezone setting")
)

// форматы со смещением: момент переводится в зону настроек
var offsetLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// форматы без смещения: настенное время в зоне настроек
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// SettingsProvider источник строки настроек часового пояса
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.TimezoneSetting, error)
}

// Resolver определяет зону, в которой интерпретируется время запроса
type Resolver struct {
	settings SettingsProvider
}

// NewResolver создает резолвер часового пояса
func NewResolver(settings SettingsProvider) *Resolver {
	return &Resolver{settings: settings}
}

// Location загружает зону из настроек, читается один раз на запрос
func (r *Resolver) Location(ctx context.Context) (*time.Location, error) {
	setting, err := r.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	loc, err := setting.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, setting.Timezone, err)
	}
	return loc, nil
}

// Resolve разбирает дату и время запроса
// Со смещением момент сохраняется и переводится в loc, без смещения считается настенным временем в loc
func Resolve(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDateTime
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc), nil
		}
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, raw)
}

// WallClock разбивает момент на дату и время в зоне loc
func WallClock(t time.Time, loc *time.Location) (types.Date, types.TimeString) {
	local := t.In(loc)
	return types.NewDate(local), types.NewTimeString(local)
}

// SameLocalDate сообщает, приходятся ли оба момента на одну календарную дату в loc
func SameLocalDate(a, b time.Time, loc *time.Location) bool {
	da, _ := WallClock(a, loc)
	db, _ := WallClock(b, loc)
	return da == db
}
