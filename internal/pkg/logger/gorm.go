package logger

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// SlogGormLogger routes gorm output through slog
type SlogGormLogger struct {
	LogLevel      logger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(slow time.Duration) *SlogGormLogger {
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return &SlogGormLogger{LogLevel: logger.Warn, SlowThreshold: slow}
}

func (l *SlogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *SlogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Info {
		log.InfoContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Warn {
		log.WarnContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Error {
		log.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	op, _, _ := strings.Cut(sql, " ")
	if op == "" {
		op = "QUERY"
	}

	fields := []any{
		log.String("sql", sql),
		log.Duration("latency", elapsed),
		log.Int64("rows", rows),
	}

	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound):
		log.ErrorContext(ctx, "MySQL "+op+" failed", append(fields, log.Any("err", err))...)
	case elapsed > l.SlowThreshold:
		log.WarnContext(ctx, "MySQL "+op+" slow", fields...)
	case l.LogLevel >= logger.Info:
		log.DebugContext(ctx, "MySQL "+op, fields...)
	}
}
