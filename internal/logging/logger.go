package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables read by Initialize.
const (
	// LogLevelEnvVar sets the level when none is passed explicitly. Unset or
	// empty means no log output at all.
	LogLevelEnvVar = "TERMASK_LOG_LEVEL"

	// LogFileEnvVar names a file logs are appended to instead of stderr.
	LogFileEnvVar = "TERMASK_LOG_FILE"
)

var logger = zap.NewNop()

// Initialize installs the global logger at level, falling back to
// TERMASK_LOG_LEVEL. With neither set the logger discards everything.
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	path := os.Getenv(LogFileEnvVar)
	if path == "" {
		path = "stderr"
	}
	sink, _, err := zap.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log output %q: %w", path, err)
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), sink, ParseLevel(level))
	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	return nil
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		return zapcore.WarnLevel
	}
	l, err := zapcore.ParseLevel(name)
	if err != nil || l > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return l
}

// SetLogger replaces the global logger; nil restores the silent one.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger.
func GetLogger() *zap.Logger {
	return logger
}

func Debug(msg string, fields ...zap.Field) { logger.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { logger.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { logger.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { logger.Error(msg, fields...) }

// LogKey records a key a prompt received.
func LogKey(title, key string) {
	Debug("Key event", zap.String("prompt", title), zap.String("key", key))
}

// LogRejected records an answer that failed validation.
func LogRejected(title, reason string) {
	Debug("Answer rejected", zap.String("prompt", title), zap.String("reason", reason))
}

// LogAnswer records an accepted answer.
func LogAnswer(title, answer string) {
	Info("Answer accepted", zap.String("prompt", title), zap.String("answer", answer))
}

// LogConnection records a remote session lifecycle event.
func LogConnection(remoteAddr, event string) {
	Info("Connection event", zap.String("remote_addr", remoteAddr), zap.String("event", event))
}

// Sync flushes buffered entries.
func Sync() {
	_ = logger.Sync()
}
