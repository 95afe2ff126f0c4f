package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance
var log zerolog.Logger

type ctxKey struct{}

// Init initializes the global logger
func Init(env string, logLevel string) {
	InitWithWriter(env, logLevel, os.Stdout)
}

// InitWithWriter is Init with an explicit sink. Development environments get
// the console writer on top of out.
func InitWithWriter(env string, logLevel string, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	output := out
	if env == "development" || env == "dev" || env == "" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	zerolog.SetGlobalLevel(ParseLevel(logLevel))

	log = zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level, defaulting to info.
func ParseLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &log
}

// WithContext returns the logger stored in ctx, or the global one.
func WithContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &log
	}
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &log
}

// NewContext creates a new context with the logger
func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID adds a request ID to the logger
func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

// WithDeviceID adds the storefront device to the logger
func WithDeviceID(l zerolog.Logger, deviceID string) zerolog.Logger {
	return l.With().Str("device_id", deviceID).Logger()
}

// --- Convenience Methods ---

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

// Fatal logs a fatal message and exits
func Fatal() *zerolog.Event {
	return log.Fatal()
}

// --- Structured Logging Helpers ---

// StorageOp logs a call against the snapshot storage backend
func StorageOp(ctx context.Context, op, key string, duration time.Duration, err error) {
	l := WithContext(ctx)
	if err != nil {
		l.Warn().
			Str("op", op).
			Str("key", key).
			Dur("duration_ms", duration).
			Err(err).
			Msg("Storage Op Failed")
		return
	}
	l.Debug().
		Str("op", op).
		Str("key", key).
		Dur("duration_ms", duration).
		Msg("Storage Op")
}

// ServiceStart logs service startup
func ServiceStart(name, version, port string) {
	log.Info().
		Str("service", name).
		Str("version", version).
		Str("port", port).
		Msg("Service Started")
}

// ServiceStop logs service shutdown
func ServiceStop(name string) {
	log.Info().
		Str("service", name).
		Msg("Service Stopped")
}
