// Package log builds the zap logger used by the jdoc command.
package log

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/calumari/jdoc/internal/options"
)

var levelMap = map[string]zapcore.Level{
	"DEBUG": zapcore.DebugLevel,
	"INFO":  zapcore.InfoLevel,
	"WARN":  zapcore.WarnLevel,
	"ERROR": zapcore.ErrorLevel,
}

type modeEncoder func() zapcore.Encoder

var modeMap = map[string]modeEncoder{
	"SIMPLE": simpleEncoder,
	"FULL":   fullEncoder,
}

// New returns a logger writing to console and, when opt.Filename is set, to
// a rotated log file as well.
func New(opt options.LogOption, console io.Writer) (*zap.Logger, error) {
	enc, level, err := encoderAndLevel(opt.Mode, opt.Level)
	if err != nil {
		return nil, err
	}
	ws := zapcore.AddSync(console)
	if opt.Filename != "" {
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(newFileWriter(opt.Filename)))
	}
	core := zapcore.NewCore(enc(), ws, level)
	return zap.New(core, zap.AddCaller()), nil
}

// ParseLevel validates a level name.
func ParseLevel(level string) (zapcore.Level, error) {
	l, ok := levelMap[strings.ToUpper(level)]
	if !ok {
		return zapcore.DebugLevel, fmt.Errorf("illegal log level: %s", level)
	}
	return l, nil
}

func encoderAndLevel(mode, level string) (modeEncoder, zapcore.Level, error) {
	enc, ok := modeMap[strings.ToUpper(mode)]
	if !ok {
		return nil, zapcore.DebugLevel, fmt.Errorf("illegal log mode: %s", mode)
	}
	l, err := ParseLevel(level)
	if err != nil {
		return nil, zapcore.DebugLevel, err
	}
	return enc, l, nil
}

func newFileWriter(filename string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxAge:     30, // days
		MaxBackups: 7,
		LocalTime:  true,
	}
}

func simpleEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.CallerKey = ""
	cfg.FunctionKey = ""
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = "|"
	return zapcore.NewConsoleEncoder(cfg)
}

func fullEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.FunctionKey = "func"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = "|"
	return zapcore.NewConsoleEncoder(cfg)
}
