package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Gunvolt24/order_guard/internal/ports"
)

// DefaultKey: hash с остатками, поле = product_id, значение = количество.
const DefaultKey = "order_guard:stock"

// Проверка, что StockStore удовлетворяет интерфейсам остатков.
var (
	_ ports.StockReader = (*StockStore)(nil)
	_ ports.StockWriter = (*StockStore)(nil)
)

// StockStore: остатки товаров в hash Redis.
type StockStore struct {
	client goredis.Cmdable
	key    string
}

// NewStockStore: пустой key заменяется на DefaultKey.
func NewStockStore(client goredis.Cmdable, key string) *StockStore {
	if key == "" {
		key = DefaultKey
	}
	return &StockStore{client: client, key: key}
}

// Available: остаток товара; отсутствующее поле означает 0.
func (s *StockStore) Available(ctx context.Context, productID int64) (int, error) {
	raw, err := s.client.HGet(ctx, s.key, field(productID)).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("hget stock: %w", err)
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("stock value for product_id=%d: %w", productID, err)
	}
	return max(qty, 0), nil
}

// SetStock записывает остатки одним HSET; отрицательные значения приводятся к 0.
func (s *StockStore) SetStock(ctx context.Context, levels map[int64]int) error {
	if len(levels) == 0 {
		return nil
	}
	values := make([]any, 0, 2*len(levels))
	for id, qty := range levels {
		values = append(values, field(id), max(qty, 0))
	}
	if err := s.client.HSet(ctx, s.key, values...).Err(); err != nil {
		return fmt.Errorf("hset stock: %w", err)
	}
	return nil
}

func field(productID int64) string { return strconv.FormatInt(productID, 10) }
