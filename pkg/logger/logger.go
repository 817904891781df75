package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// log stays a no-op until Init runs, so packages can log from tests.
var log = zap.NewNop()

// Init builds the process logger. Production gets JSON output, everything else
// the colored console encoder.
func Init(environment, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	built, err := cfg.Build(
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("environment", environment)),
	)
	if err != nil {
		return err
	}

	log = built
	zap.ReplaceGlobals(built)
	return nil
}

// L returns the process logger for direct zap calls.
func L() *zap.Logger {
	return log.WithOptions(zap.AddCallerSkip(-1))
}

func Sync() {
	_ = log.Sync()
}

func Debug(msg string, keysAndValues ...interface{}) {
	log.Sugar().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	log.Sugar().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	log.Sugar().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	log.Sugar().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	log.Sugar().Fatalw(msg, keysAndValues...)
}
