// Package logging builds the zap logger used for captrans diagnostics.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level; unknown names are info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns a console-encoded logger writing to logFile, or to stderr when
// logFile is empty. Stderr output never drops below warn so diagnostics do
// not interleave with the interactive dialogue. The returned cleanup flushes
// the logger and closes the log file.
func New(level, logFile string) (*zap.Logger, func(), error) {
	zapLevel := ParseLevel(level)

	if logFile == "" {
		if zapLevel < zapcore.WarnLevel {
			zapLevel = zapcore.WarnLevel
		}
		logger := newLogger(zapcore.Lock(os.Stderr), zapLevel)
		return logger, func() { _ = logger.Sync() }, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, nil, err
	}
	ws, closeFile, err := zap.Open(logFile)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(ws, zapLevel)
	return logger, func() {
		_ = logger.Sync()
		closeFile()
	}, nil
}

func newLogger(ws zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.ConsoleSeparator = " | "

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		ws,
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}
