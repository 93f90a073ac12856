// Package utils 提供了跨包复用的通用执行工具.
package utils

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// fallbackTotal 记录降级发生的次数.
var fallbackTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "genkit_fallback_total",
		Help: "Total number of fallbacks executed",
	},
	[]string{"component", "operation"},
)

func init() {
	prometheus.MustRegister(fallbackTotal)
}

// FallbackFunc 定义了要执行的业务函数.
type FallbackFunc[T any] func(ctx context.Context) (T, error)

// ExecuteWithFallback 执行带降级的逻辑.
// component: 组件名，operation: 操作名（用于监控）.
// mainFunc: 主逻辑，fallbackFunc: 降级逻辑（兜底）.
// 主逻辑成功直接返回；失败则记录日志、累加监控计数，再执行降级逻辑.
func ExecuteWithFallback[T any](
	ctx context.Context,
	component, operation string,
	mainFunc FallbackFunc[T],
	fallbackFunc FallbackFunc[T],
) (T, error) {
	res, err := mainFunc(ctx)
	if err == nil {
		return res, nil
	}

	slog.WarnContext(ctx, "main logic failed, executing fallback",
		"component", component,
		"operation", operation,
		"error", err,
	)

	fallbackTotal.WithLabelValues(component, operation).Inc()

	return fallbackFunc(ctx)
}
