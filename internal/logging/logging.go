// Package logging builds the zap logger used across devlog. The terminal is
// owned by the TUI, so log lines go to a rotating file in the data directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelOff disables logging entirely.
const LevelOff = "off"

// Options controls where and how much is logged.
type Options struct {
	Level      string // debug, info, warn, error or off
	File       string // log file path
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a sugared logger writing JSON lines to opts.File. The returned
// close func flushes buffered entries and closes the file.
func New(opts Options) (*zap.SugaredLogger, func(), error) {
	level := strings.ToLower(strings.TrimSpace(opts.Level))
	if level == LevelOff || opts.File == "" {
		return Nop(), func() {}, nil
	}
	if level == "" {
		level = "info"
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    orDefault(opts.MaxSizeMB, 5),
		MaxBackups: orDefault(opts.MaxBackups, 3),
		MaxAge:     orDefault(opts.MaxAgeDays, 30),
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		lvl,
	)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))

	closeFn := func() {
		_ = logger.Sync()
		_ = rotator.Close()
	}
	return logger.Sugar(), closeFn, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
