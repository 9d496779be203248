// Пакет ctxmeta: метаданные обработки, которые едут через context.Context
// (request_id, order_id, trace/span). HTTP-слой, конвейер и логгер зависят от него,
// но не друг от друга.
package ctxmeta

import (
	"context"
	"strconv"
)

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyOrderID   ctxKey = "order_id"
)

// WithRequestID кладёт request_id в контекст (если пусто, ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithOrderID помечает контекст заказом, который сейчас проверяется; 0 игнорируется.
func WithOrderID(ctx context.Context, orderID int64) context.Context {
	if ctx == nil || orderID == 0 {
		return ctx
	}
	return context.WithValue(ctx, KeyOrderID, orderID)
}

// OrderIDFromContext достаёт order_id строкой (для логов).
func OrderIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyOrderID).(int64); ok && v != 0 {
		return strconv.FormatInt(v, 10), true
	}
	return "", false
}
