// Package log builds the process logger.
package log

import (
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures NewLogger.
type Options struct {
	// Path of the JSON log file. Empty disables the file core.
	Path  string
	Debug bool
	// Quiet raises the console level to warnings.
	Quiet bool
}

// NewLogger builds a tee of a JSON file core and a colored console core,
// installs it as the zap global and returns it.
func NewLogger(opts Options) (*zap.Logger, error) {
	pe := zap.NewProductionEncoderConfig()
	pe.EncodeTime = zapcore.ISO8601TimeEncoder
	pe.MessageKey = "message"
	pe.TimeKey = "time"
	fileEncoder := zapcore.NewJSONEncoder(pe)

	pe.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(pe)

	level := zap.InfoLevel
	if opts.Debug {
		level = zap.DebugLevel
	}
	consoleLevel := level
	if opts.Quiet {
		consoleLevel = zap.WarnLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(colorable.NewColorableStderr()), consoleLevel),
	}
	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(f), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	zap.ReplaceGlobals(logger)
	return logger, nil
}
