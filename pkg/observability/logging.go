// Package observability provides the process-wide structured logger.
//
// The logger is zap-backed and initialized once at startup; the package-level
// helpers (Infof, Debugf, ...) are safe to call before initialization and fall
// back to a production logger with sane defaults.
package observability

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger   *zap.SugaredLogger
	loggerMu sync.RWMutex
)

// InitLoggerFromEnv initializes the global logger from environment variables.
// LOG_LEVEL selects the minimum level (debug, info, warn, error; default info).
// LOG_FORMAT selects the encoder (json or console; default json).
func InitLoggerFromEnv() (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = zapcore.DebugLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	loggerMu.Lock()
	logger = l.Sugar()
	loggerMu.Unlock()
	return logger, nil
}

// SetLogger replaces the global logger. Intended for tests.
func SetLogger(l *zap.SugaredLogger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func get() *zap.SugaredLogger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	// Lazy fallback so library code can log before InitLoggerFromEnv runs
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		base, _ := zap.NewProduction(zap.AddCallerSkip(1))
		logger = base.Sugar()
	}
	return logger
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) { get().Debugf(format, args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) { get().Infof(format, args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...interface{}) { get().Warnf(format, args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) { get().Errorf(format, args...) }

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(format string, args ...interface{}) { get().Fatalf(format, args...) }

// Sync flushes any buffered log entries.
func Sync() {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if logger != nil {
		_ = logger.Sync()
	}
}
