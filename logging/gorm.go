package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger 实现 gorm.io/gorm/logger.Interface，
// 将数据库操作日志输出到统一的 slog 日志系统.
type GormLogger struct {
	logger        *slog.Logger
	SlowThreshold time.Duration // 慢查询阈值，超过则记为警告
}

// NewGormLogger 创建 GORM 日志适配器.
func NewGormLogger(l *Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		logger:        l.Logger,
		SlowThreshold: slowThreshold,
	}
}

// LogMode GORM 的级别控制沿用 slog 自身的级别配置，此处直接返回自身.
func (l *GormLogger) LogMode(logger.LogLevel) logger.Interface {
	return l
}

// Info 记录 Info 级别日志.
func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, fmt.Sprintf(msg, args...))
}

// Warn 记录 Warn 级别日志.
func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, fmt.Sprintf(msg, args...))
}

// Error 记录 Error 级别日志.
func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, fmt.Sprintf(msg, args...))
}

// Trace 记录 SQL 执行情况：错误优先，其次慢查询，其余降为 Debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.logger.ErrorContext(ctx, "gorm query failed",
			"error", err, "sql", sql, "rows", rows, "duration", elapsed)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold:
		l.logger.WarnContext(ctx, "gorm slow query",
			"sql", sql, "rows", rows, "duration", elapsed, "threshold", l.SlowThreshold)
	default:
		l.logger.DebugContext(ctx, "gorm query",
			"sql", sql, "rows", rows, "duration", elapsed)
	}
}
