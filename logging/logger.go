// Package logging 提供了统一的结构化日志（slog）封装，
// 支持 OpenTelemetry 追踪上下文注入、日志文件切割与 GORM 日志集成.
package logging

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"go.opentelemetry.io/otel/trace"
)

var (
	// defaultLogger 全局默认 Logger 实例，单例.
	defaultLogger *Logger
	// once 确保 InitLogger 只执行一次.
	once sync.Once
	// levelVar 全局日志级别，支持配置热更新.
	levelVar slog.LevelVar
)

// Config 定义日志配置.
type Config struct {
	Service    string
	Module     string
	Level      string
	File       string // 日志文件路径，为空则只输出到 stdout
	MaxSize    int    // 每个日志文件最大尺寸 (MB)
	MaxBackups int    // 保留旧日志文件的最大个数
	MaxAge     int    // 保留旧日志文件的最大天数
	Compress   bool   // 是否压缩旧日志
}

// Logger 封装原生 *slog.Logger，附带服务名与模块名以区分日志来源.
type Logger struct {
	*slog.Logger
	Service string
	Module  string
}

// TraceHandler 是一个 slog.Handler 装饰器，
// 从 context.Context 中提取 OpenTelemetry 的 trace_id 与 span_id 注入日志记录.
type TraceHandler struct {
	slog.Handler
}

// Handle 在处理日志记录前注入有效的追踪上下文.
func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}

	return h.Handler.Handle(ctx, r)
}

// ParseLevel 将级别字符串解析为 slog.Level，未知值回落到 Info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel 动态调整全局日志级别，配合配置热更新使用.
func SetLevel(level string) {
	levelVar.Set(ParseLevel(level))
}

// NewFromConfig 创建一个新的 Logger 实例.
// 配置了文件路径时使用 lumberjack 做日志切割，否则输出到 stdout；输出格式为 JSON.
func NewFromConfig(cfg Config) *Logger {
	levelVar.Set(ParseLevel(cfg.Level))

	replaceAttr := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			a.Key = "timestamp"
		}

		return a
	}

	opts := &slog.HandlerOptions{
		Level:       &levelVar,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		handler = slog.NewJSONHandler(fileWriter, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(&TraceHandler{Handler: handler}).With(
		slog.String("service", cfg.Service),
		slog.String("module", cfg.Module),
	)

	return &Logger{
		Logger:  logger,
		Service: cfg.Service,
		Module:  cfg.Module,
	}
}

// NewLogger 带简单参数的创建入口.
func NewLogger(service, module string, level ...string) *Logger {
	lvl := "info"
	if len(level) > 0 {
		lvl = level[0]
	}

	return NewFromConfig(Config{Service: service, Module: module, Level: lvl})
}

// InitLogger 初始化全局默认日志记录器，应在应用启动时调用一次.
func InitLogger(service, module string, level ...string) {
	once.Do(func() {
		lvl := "info"
		if len(level) > 0 {
			lvl = level[0]
		}
		defaultLogger = NewFromConfig(Config{Service: service, Module: module, Level: lvl})
		slog.SetDefault(defaultLogger.Logger)
	})
}

// Default 返回全局默认日志记录器实例.
func Default() *Logger {
	if defaultLogger == nil {
		InitLogger("genkit", "default", "info")
	}

	return defaultLogger
}
