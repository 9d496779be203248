package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gunvolt24/order_guard/pkg/ctxmeta"
)

// ZapLogger реализует ports.Logger; метаданные из контекста (request_id,
// order_id, trace_id) добавляются полями к каждой записи.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// NewZapLogger: isProd выбирает JSON-пресет zap.NewProduction, иначе консольный dev.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	return wrap(logger, isProd), func() error { return logger.Sync() }, nil
}

// NewFromZap оборачивает готовый *zap.Logger (тесты, zaptest/observer).
func NewFromZap(logger *zap.Logger) *ZapLogger { return wrap(logger, false) }

func wrap(logger *zap.Logger, isProd bool) *ZapLogger {
	return &ZapLogger{base: logger, sugar: logger.Sugar(), isProd: isProd}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}

func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}

func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }

func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	var kv []any
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		kv = append(kv, "request_id", id)
	}
	if id, ok := ctxmeta.OrderIDFromContext(ctx); ok {
		kv = append(kv, "order_id", id)
	}
	if id, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		kv = append(kv, "trace_id", id)
	}
	if len(kv) == 0 {
		return z.sugar
	}
	return z.sugar.With(kv...)
}
