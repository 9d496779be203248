package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Gunvolt24/order_guard/pkg/ctxmeta"
)

func TestZapLogger_AddsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core))

	ctx := ctxmeta.WithOrderID(ctxmeta.WithRequestID(context.Background(), "req-1"), 42)
	l.Warnf(ctx, "rejected %d", 42)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Message != "rejected 42" || e.Level != zapcore.WarnLevel {
		t.Fatalf("unexpected entry: %+v", e)
	}
	fields := e.ContextMap()
	if fields["request_id"] != "req-1" || fields["order_id"] != "42" {
		t.Fatalf("missing ctx fields: %v", fields)
	}
}

func TestZapLogger_NoContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Infof(context.Background(), "plain")
	l.Errorf(context.Background(), "boom")

	if logs.Len() != 2 {
		t.Fatalf("want 2 entries, got %d", logs.Len())
	}
	if len(logs.All()[0].Context) != 0 {
		t.Fatalf("no fields expected, got %v", logs.All()[0].Context)
	}
}
