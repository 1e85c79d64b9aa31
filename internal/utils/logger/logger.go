package logger

import (
	"io"
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/natefinch/lumberjack.v2"

	"shopkeeper/internal/utils/logger/handlers/slogpretty"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type options struct {
	out   io.Writer
	file  *lumberjack.Logger
	level *slog.Level
}

type Option func(*options)

// WithFile пишет лог в файл с ротацией вместо stdout
func WithFile(path string) Option {
	return func(o *options) {
		if path == "" {
			return
		}
		o.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	}
}

// WithLevel переопределяет уровень по умолчанию для окружения. Неизвестные значения игнорируются
func WithLevel(level string) Option {
	return func(o *options) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return
		}
		o.level = &l
	}
}

// WithOutput подменяет stdout, нужен в тестах
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// New создает логгер под окружение: local - цветной текст, dev - JSON с debug, prod - JSON с info
func New(env string, opts ...Option) *slog.Logger {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	level := slog.LevelDebug
	if env == envProd {
		level = slog.LevelInfo
	}
	if o.level != nil {
		level = *o.level
	}

	// в файл цвета не пишем
	if o.file != nil {
		return slog.New(slog.NewJSONHandler(o.file, &slog.HandlerOptions{Level: level}))
	}

	switch env {
	case envLocal, "":
		return setupPrettySlog(level, o.out)
	default:
		return slog.New(slog.NewJSONHandler(o.out, &slog.HandlerOptions{Level: level}))
	}
}

func setupPrettySlog(level slog.Level, out ...io.Writer) *slog.Logger {
	w := io.Writer(os.Stdout)
	if len(out) > 0 && out[0] != nil {
		w = out[0]
	}

	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: level},
	}

	return slog.New(opts.NewPrettyHandler(w))
}
