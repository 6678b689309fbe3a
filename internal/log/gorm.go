package log

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger routes gorm statements to zap. Statements run at debug level,
// slow ones at warn and failed ones at error. Record-not-found is a normal
// outcome for user and post lookups and is not reported as a failure.
type GormLogger struct {
	logger *zap.Logger
	level  logger.LogLevel
	slow   time.Duration
}

// NewGormLogger warns about statements slower than slow. Zero disables the check.
func NewGormLogger(slow time.Duration) *GormLogger {
	return newGormLogger(GlobalLogger, slow)
}

func newGormLogger(l *zap.Logger, slow time.Duration) *GormLogger {
	return &GormLogger{
		logger: l.WithOptions(zap.AddCallerSkip(3)).Named("sql"),
		level:  logger.Info,
		slow:   slow,
	}
}

// LogMode returns a copy so sessions can silence statements without
// affecting the shared logger.
func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, s string, args ...interface{}) {
	if l.level >= logger.Info {
		l.logger.Sugar().Infof(s, args...)
	}
}

func (l *GormLogger) Warn(_ context.Context, s string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.logger.Sugar().Warnf(s, args...)
	}
}

func (l *GormLogger) Error(_ context.Context, s string, args ...interface{}) {
	if l.level >= logger.Error {
		l.logger.Sugar().Errorf(s, args...)
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.slow > 0 && elapsed > l.slow
	if !failed && !slow && !l.logger.Core().Enabled(zap.DebugLevel) {
		return
	}

	statement, rows := fc()
	fields := []zap.Field{
		zap.String("statement", statement),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
		zap.String("source", utils.FileWithLineNum()),
	}
	switch {
	case failed && l.level >= logger.Error:
		l.logger.Error("statement failed", append(fields, zap.Error(err))...)
	case slow && l.level >= logger.Warn:
		l.logger.Warn("slow statement", append(fields, zap.Duration("threshold", l.slow))...)
	case !failed && !slow && l.level >= logger.Info:
		l.logger.Debug("statement", fields...)
	}
}
