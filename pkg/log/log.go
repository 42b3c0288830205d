package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/levenlabs/go-llog"
)

var (
	defaultLogLevel slog.LevelVar
	defaultLogger   = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     &defaultLogLevel,
	}))
)

func init() {
	defaultLogLevel.Set(slog.LevelInfo)
}

type contextKey struct{}

var loggerKey = contextKey{}

// Ctx returns the logger from the context. If no logger is found, it returns the default logger.
func Ctx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

// With returns a new context with the given logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func SetDefaultLogLevel(level slog.Level) {
	defaultLogLevel.Set(level)
}

// ConfiguredLevel translates the llog level, which lflag sets from the
// --log-level flag, into the equivalent slog level.
func ConfiguredLevel() slog.Level {
	switch llog.GetLevel() {
	case llog.DebugLevel:
		return slog.LevelDebug
	case llog.InfoLevel:
		return slog.LevelInfo
	case llog.WarnLevel:
		return slog.LevelWarn
	case llog.ErrorLevel:
		return slog.LevelError
	default:
		panic(fmt.Errorf("unknown log level: %s", llog.GetLevel().String()))
	}
}

// Setup installs a JSON logger at the configured level as both the slog
// default and this package's default. Called once from main after
// lflag.Configure.
func Setup() {
	level := ConfiguredLevel()
	SetDefaultLogLevel(level)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	slog.Debug("logger configured", slog.String("level", level.String()))
}
