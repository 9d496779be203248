package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/order_guard/config"
	"github.com/Gunvolt24/order_guard/internal/app"
	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/ports/mocks"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// waitForCancel: Run консьюмера, который работает до отмены контекста.
func waitForCancel(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestAppRun_GracefulShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	consumer := mocks.NewMockMessageConsumer(ctrl)
	consumer.EXPECT().Run(gomock.Any()).DoAndReturn(waitForCancel).Times(1)
	consumer.EXPECT().Close().Return(nil).Times(1)

	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		KafkaConsumer: consumer,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestAppRun_ConsumerCloseErrorIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	consumer := mocks.NewMockMessageConsumer(ctrl)
	consumer.EXPECT().Run(gomock.Any()).DoAndReturn(waitForCancel)
	consumer.EXPECT().Close().Return(errors.New("already closed"))

	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		KafkaConsumer: consumer,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("close error must only be logged, got %v", err)
	}
}

func TestAppRun_WithoutConsumer(t *testing.T) {
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		MetricsServer: &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestAppRun_ConsumerErrorStopsService(t *testing.T) {
	boom := errors.New("broker gone")
	ctrl := gomock.NewController(t)
	consumer := mocks.NewMockMessageConsumer(ctrl)
	consumer.EXPECT().Run(gomock.Any()).Return(boom)
	consumer.EXPECT().Close().Return(nil).Times(1)

	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		KafkaConsumer: consumer,
	}

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Fatalf("want consumer error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after consumer failure")
	}
}

// loadMemoryConfig: конфиг без внешних зависимостей (memory-остатки, без Kafka и трейсинга).
func loadMemoryConfig(t *testing.T, seed string) *config.Config {
	t.Helper()
	const p = "ORDER_APP_TEST"

	t.Setenv(p+"_HTTP_GIN_MODE", "test")
	t.Setenv(p+"_METRICS_ADDR", "")
	t.Setenv(p+"_KAFKA_ENABLED", "false")
	t.Setenv(p+"_STOCK_BACKEND", "memory")
	t.Setenv(p+"_RULES_BLOCKED_CUSTOMERS", "13")

	if seed != "" {
		path := filepath.Join(t.TempDir(), "stock.yaml")
		if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
			t.Fatalf("write seed: %v", err)
		}
		t.Setenv(p+"_STOCK_SEED_FILE", path)
	}

	cfg, err := config.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix: %v", err)
	}
	return &cfg
}

func postOrder(t *testing.T, h http.Handler, body string) (int, domain.Verdict) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/orders/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var v domain.Verdict
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
			t.Fatalf("decode verdict: %v (%s)", err, w.Body.String())
		}
	}
	return w.Code, v
}

func order(customerID int64, quantity int) string {
	return fmt.Sprintf(`{"order_id":77,"customer_id":%d,"order_date":"2026-03-01T12:00:00Z",`+
		`"total_charge":%d,"ordered_products":[{"product_id":1,"description":"pen","quantity":%d,"price":5}]}`,
		customerID, 5*quantity, quantity)
}

func TestBootstrap_MemoryStack_EndToEnd(t *testing.T) {
	cfg := loadMemoryConfig(t, "products:\n  - id: 1\n    quantity: 10\n")

	a, cleanup, err := app.Bootstrap(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	defer cleanup()

	if a.KafkaConsumer != nil || a.MetricsServer != nil {
		t.Fatalf("kafka and metrics listener must be disabled: %+v", a)
	}

	cases := []struct {
		name       string
		body       string
		wantReject bool
	}{
		{"in stock", order(3, 2), false},
		{"out of stock", order(3, 11), true},
		{"blocked customer", order(13, 1), true},
	}
	for _, tc := range cases {
		code, v := postOrder(t, a.HTTPServer.Handler, tc.body)
		if code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.name, code)
		}
		if v.Reject != tc.wantReject {
			t.Fatalf("%s: reject=%v, want %v (%+v)", tc.name, v.Reject, tc.wantReject, v.Results)
		}
		if len(v.Results) != 5 {
			t.Fatalf("%s: want 5 results (all builtin validators), got %d", tc.name, len(v.Results))
		}
	}

	code, _ := postOrder(t, a.HTTPServer.Handler, "{broken")
	if code != http.StatusBadRequest {
		t.Fatalf("broken order: want 400, got %d", code)
	}
}

func TestBootstrap_BadSeedFails(t *testing.T) {
	cfg := loadMemoryConfig(t, "products:\n  - id: 1\n    quantity: -3\n")

	if _, _, err := app.Bootstrap(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for invalid seed")
	}
}
