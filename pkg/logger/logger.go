package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

// Init builds the global logger. "production" gets the JSON encoder; anything
// else gets the colored development console. level overrides the default
// level when it parses ("debug", "info", "warn", "error").
func Init(env, level string) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// Sync flushes buffered entries. Call before exit.
func Sync() {
	_ = Logger.Sync()
}

func Named(name string) *zap.Logger { return Logger.Named(name) }

func Info(msg string, fields ...zapcore.Field)  { Logger.Info(msg, fields...) }
func Warn(msg string, fields ...zapcore.Field)  { Logger.Warn(msg, fields...) }
func Error(msg string, fields ...zapcore.Field) { Logger.Error(msg, fields...) }
func Debug(msg string, fields ...zapcore.Field) { Logger.Debug(msg, fields...) }
func Fatal(msg string, fields ...zapcore.Field) { Logger.Fatal(msg, fields...) }
