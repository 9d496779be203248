package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/kafka/mocks"
)

func rejectedOrder() *domain.Order {
	return &domain.Order{
		OrderID:    77,
		CustomerID: 5,
		Reject:     true,
		ValidatorResults: []domain.ValidatorResult{
			domain.OK(1),
			domain.Fail(3, domain.CodeOutOfStock, "product_id=%d: requested %d, available %d", 9, 4, 1),
		},
	}
}

func TestHandleRejection_PublishesVerdict(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)

	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msgs ...kafka.Message) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("write must run with a deadline")
			}
			if len(msgs) != 1 {
				t.Fatalf("want 1 message, got %d", len(msgs))
			}
			if string(msgs[0].Key) != "77" {
				t.Fatalf("key: want 77, got %q", msgs[0].Key)
			}
			var v domain.Verdict
			if err := json.Unmarshal(msgs[0].Value, &v); err != nil {
				t.Fatalf("unmarshal verdict: %v", err)
			}
			if !v.Reject || v.OrderID != 77 || len(v.Results) != 2 || v.Results[1].Code != domain.CodeOutOfStock {
				t.Fatalf("unexpected verdict: %+v", v)
			}
			return nil
		})

	p := &RejectionPublisher{writer: w, timeout: time.Second}
	if err := p.HandleRejection(context.Background(), rejectedOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleRejection_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	boom := errors.New("leader not available")
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(boom)

	p := &RejectionPublisher{writer: w, timeout: time.Second}
	err := p.HandleRejection(context.Background(), rejectedOrder())
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped write error, got %v", err)
	}
}

func TestHandleRejection_NilOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)

	p := &RejectionPublisher{writer: w, timeout: time.Second}
	if err := p.HandleRejection(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil order")
	}
}

func TestRejectionPublisher_CloseOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().Close().Return(nil).Times(1)

	p := &RejectionPublisher{writer: w, timeout: time.Second}
	_ = p.Close()
	_ = p.Close()
}

func TestNewRejectionPublisher_DefaultTimeout(t *testing.T) {
	p := NewRejectionPublisher(&PublisherConfig{Brokers: []string{"k:9092"}, Topic: "orders.rejected"})
	if p.timeout != 5*time.Second {
		t.Fatalf("want default 5s timeout, got %v", p.timeout)
	}
	kw, ok := p.writer.(*kafka.Writer)
	if !ok || kw.Topic != "orders.rejected" {
		t.Fatalf("unexpected writer: %#v", p.writer)
	}
}
