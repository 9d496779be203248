package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/order_guard/internal/ports/mocks"
)

func TestAvailable_HitMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockStockReader(ctrl)
	// второй запрос обслуживается из кэша
	src.EXPECT().Available(gomock.Any(), int64(1)).Return(5, nil).Times(1)

	c := NewStockCache(src, 2, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := c.Available(ctx, 1)
		if err != nil || got != 5 {
			t.Fatalf("call %d: got (%d, %v), want (5, nil)", i, got, err)
		}
	}
}

func TestTTL_Expiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockStockReader(ctrl)
	gomock.InOrder(
		src.EXPECT().Available(gomock.Any(), int64(1)).Return(5, nil),
		src.EXPECT().Available(gomock.Any(), int64(1)).Return(3, nil),
	)

	c := NewStockCache(src, 2, 100*time.Millisecond)
	ctx := context.Background()

	if got, _ := c.Available(ctx, 1); got != 5 {
		t.Fatalf("want 5 on first read, got %d", got)
	}
	time.Sleep(150 * time.Millisecond)
	if got, _ := c.Available(ctx, 1); got != 3 {
		t.Fatalf("want fresh 3 after TTL expires, got %d", got)
	}
}

func TestLRUEviction(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockStockReader(ctrl)
	src.EXPECT().Available(gomock.Any(), int64(1)).Return(1, nil).Times(1)
	src.EXPECT().Available(gomock.Any(), int64(2)).Return(2, nil).Times(2) // вытеснен и прочитан заново
	src.EXPECT().Available(gomock.Any(), int64(3)).Return(3, nil).Times(1)

	c := NewStockCache(src, 2, 0) // 0 = без TTL
	ctx := context.Background()

	_, _ = c.Available(ctx, 1)
	_, _ = c.Available(ctx, 2)
	// 1 становится «свежим»
	_, _ = c.Available(ctx, 1)
	// 3 вытеснит 2 (самый старый)
	_, _ = c.Available(ctx, 3)

	if _, ok := c.index[2]; ok {
		t.Fatalf("expected 2 to be evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 1 & 3 to stay in cache, got len=%d", c.Len())
	}
	_, _ = c.Available(ctx, 2)
}

func TestErrorsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockStockReader(ctrl)
	gomock.InOrder(
		src.EXPECT().Available(gomock.Any(), int64(1)).Return(0, errors.New("down")),
		src.EXPECT().Available(gomock.Any(), int64(1)).Return(4, nil),
	)

	c := NewStockCache(src, 2, time.Minute)
	ctx := context.Background()

	if _, err := c.Available(ctx, 1); err == nil {
		t.Fatalf("expected error from source")
	}
	if got, err := c.Available(ctx, 1); err != nil || got != 4 {
		t.Fatalf("want (4, nil) after failed read, got (%d, %v)", got, err)
	}
}

func TestInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockStockReader(ctrl)
	src.EXPECT().Available(gomock.Any(), int64(1)).Return(1, nil).Times(2)

	c := NewStockCache(src, 2, 0)
	ctx := context.Background()

	_, _ = c.Available(ctx, 1)
	c.Invalidate(1)
	c.Invalidate(42) // отсутствующий ключ не ошибка
	_, _ = c.Available(ctx, 1)
}
