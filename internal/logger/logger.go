// Package logger builds the zap logger used for run diagnostics.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level maps the verbose flag to a zap level: info by default, debug when
// verbose so skipped overloads become visible.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// New returns a sugared logger writing to w. Console output carries no
// timestamps so runs are reproducible; JSON output uses the production
// encoder for machine consumption.
func New(w io.Writer, verbose, jsonOutput bool) *zap.SugaredLogger {
	var enc zapcore.Encoder
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			LevelKey:         "level",
			MessageKey:       "msg",
			NameKey:          "logger",
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeDuration:   zapcore.StringDurationEncoder,
			ConsoleSeparator: " ",
		})
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), Level(verbose))
	return zap.New(core).Sugar()
}
