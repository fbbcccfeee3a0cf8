package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger printf-логгер поверх zerolog
// Интерфейс Info/Warn/Error(format, v...) используется во всех слоях сервиса
type Logger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// Option дополнительная настройка логгера
type Option func(*options)

type options struct {
	format  string
	service string
	output  io.Writer
}

// WithFormat задает формат вывода: "json" (по умолчанию) или "console"
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithService добавляет поле service в каждую запись
func WithService(name string) Option {
	return func(o *options) {
		o.service = name
	}
}

// WithOutput подменяет вывод (используется в тестах)
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// New создает логгер
// Если file пустой - пишем в stdout, иначе дописываем в файл
func New(file string, level string, opts ...Option) (*Logger, error) {
	o := &options{format: "json"}
	for _, opt := range opts {
		opt(o)
	}

	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && parsed != zerolog.NoLevel {
		lvl = parsed
	}

	var (
		output io.Writer = os.Stdout
		closer io.Closer
	)

	switch {
	case o.output != nil:
		output = o.output
	case file != "":
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		output = f
		closer = f
	}

	if strings.EqualFold(strings.TrimSpace(o.format), "console") {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(output).Level(lvl).With().Timestamp()
	if o.service != "" {
		ctx = ctx.Str("service", o.service)
	}

	return &Logger{zl: ctx.Logger(), closer: closer}, nil
}

// Nop логгер, который ничего не пишет
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.zl.Fatal().Msgf(format, v...)
}

// With возвращает дочерний логгер с дополнительным строковым полем
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
