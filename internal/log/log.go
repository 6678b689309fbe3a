package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const TimeFormat = "2006-01-02 15:04:05.999"

// AtomicLevel lets SetLevel change the level of the running logger.
var AtomicLevel = zap.NewAtomicLevel()

var GlobalLogger = MustNewLogger()

func SetLevel(level string) {
	if err := AtomicLevel.UnmarshalText([]byte(level)); err != nil {
		GlobalLogger.Warn("invalid log level, keeping current", zap.String("level", level))
		return
	}
	GlobalLogger.Info("logger level updated", zap.String("level", level))
}

func MustNewLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.Level = AtomicLevel
	_ = AtomicLevel.UnmarshalText([]byte(os.Getenv("LOG_LEVEL")))
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(TimeFormat)
	config.DisableStacktrace = true
	config.Sampling = nil
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func Fatalf(fmt string, v ...interface{}) {
	GlobalLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Fatalf(fmt, v...)
}

func Errorf(fmt string, v ...interface{}) {
	GlobalLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Errorf(fmt, v...)
}

func Warnf(fmt string, v ...interface{}) {
	GlobalLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Warnf(fmt, v...)
}

func Infof(fmt string, v ...interface{}) {
	GlobalLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Infof(fmt, v...)
}

func Debugf(fmt string, v ...interface{}) {
	GlobalLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Debugf(fmt, v...)
}

func Error(err error, msg string, keysAndValues ...interface{}) {
	GlobalLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}

func Info(msg string, keysAndValues ...interface{}) {
	GlobalLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Infow(msg, keysAndValues...)
}
