package server

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the shared SugaredLogger; every server component writes through it.
var Log *zap.SugaredLogger

// InitLogger wires zap to a rolling local file. debug widens the level for
// per-tick diagnostics (rejected actions, input drops).
func InitLogger(filePath string, debug bool) error {
	lj := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(lj), level)
	Log = zap.New(core, zap.AddCaller()).Sugar()
	return nil
}

// SyncLogger flushes buffered entries; call on shutdown.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
