package logger

import (
	"os"

	"lms_backend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log defaults to a no-op logger so packages can log before InitLogger runs
// (and so tests need no logging setup).
var Log = zap.NewNop()

// InitLogger builds the shared logger: JSON to a rotated file, plus a
// human-readable console alongside it in debug mode.
func InitLogger(cfg *config.Config) {
	fileEncoder := zap.NewProductionEncoderConfig()
	fileEncoder.TimeKey = "time"
	fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
	fileEncoder.EncodeLevel = zapcore.CapitalLevelEncoder
	fileEncoder.EncodeDuration = zapcore.MillisDurationEncoder

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileEncoder),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   "logs/lms.log",
			MaxSize:    50,
			MaxBackups: 10,
			MaxAge:     14,
			Compress:   true,
		}),
		zap.InfoLevel,
	)

	core := fileCore
	if cfg.Server.Mode == "debug" {
		consoleEncoder := zap.NewDevelopmentEncoderConfig()
		consoleEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewTee(fileCore, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoder),
			zapcore.AddSync(os.Stdout),
			zap.DebugLevel,
		))
	}

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}
