// Package ctxlog provides context-aware structured logging utilities.
package ctxlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
}

var setup = false

// Setup installs the process logger described by config and stores it in
// the returned context. It panics if the log file cannot be created.
func Setup(ctx context.Context, name string, config Config) context.Context {
	if setup {
		return Store(ctx, slog.Default())
	}

	w := io.Writer(os.Stderr)
	if config.Dir != "" {
		err := os.MkdirAll(config.Dir, 0755)
		if err != nil {
			panic(fmt.Errorf("create log dir: %w", err))
		}

		logFile, err := os.Create(filepath.Join(config.Dir, name+"-"+time.Now().Format("2006-01-02-15-04-05.log")))
		if err != nil {
			panic(fmt.Errorf("create log file: %w", err))
		}

		w = io.MultiWriter(os.Stderr, logFile)
	}

	h, err := NewHandler(w, name, config)
	if err != nil {
		panic(err)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	setup = true

	return Store(ctx, logger)
}

// NewHandler returns a JSON handler for format "json" and a human readable
// one otherwise.
func NewHandler(w io.Writer, name string, config Config) (slog.Handler, error) {
	level := slog.LevelInfo
	if config.Level != "" {
		err := level.UnmarshalText([]byte(config.Level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", config.Level, err)
		}
	}

	switch strings.ToLower(config.Format) {
	case "json":
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
		return h.WithAttrs([]slog.Attr{slog.String("app", name)}), nil

	case "", "text":
		logger := log.NewWithOptions(w, log.Options{
			Level:           log.Level(level),
			Prefix:          name,
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
		})
		logger.SetStyles(styles())
		return logger, nil

	default:
		return nil, fmt.Errorf("log format %q: want text or json", config.Format)
	}
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("204")).
		Foreground(lipgloss.Color("0"))
	s.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	s.Values["error"] = lipgloss.NewStyle().Bold(true)
	return s
}

type ctxKey struct{}

var key ctxKey

func Store(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, key, log)
}

func Get(ctx context.Context) *slog.Logger {
	log, ok := ctx.Value(key).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return log
}

func Close(ctx context.Context, name string, closer io.Closer) error {
	logger := Get(ctx)
	err := closer.Close()
	if err != nil {
		logger.Error("failed to close", "closer", name, "error", err)
		return err
	}
	return nil
}

func With(ctx context.Context, kv ...any) context.Context {
	return Store(ctx, Get(ctx).With(kv...))
}
