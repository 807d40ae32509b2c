// Package logging provides the file-backed debug logger used to trace
// serial traffic and per-check outcomes. Console output belongs to the
// operator report, not this logger.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFilename = "px4check.log"

// New creates a logger writing to <dir>/px4check.log with rotation.
// With debug enabled the level drops to Debug, which includes every
// TX/RX line exchanged with the board.
func New(dir string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFilename),
		MaxSize:    10, // MB
		MaxAge:     14, // days
		MaxBackups: 3,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(writer),
		level,
	)

	return zap.New(core), nil
}
