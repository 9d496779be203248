package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/order_guard/internal/ports"
	"github.com/Gunvolt24/order_guard/pkg/metrics"
)

// Проверка, что StockCache удовлетворяет интерфейсу StockReader.
var _ ports.StockReader = (*StockCache)(nil)

type entry struct {
	productID int64
	available int
	expiresAt time.Time
}

// StockCache: LRU-кэш с TTL поверх источника остатков.
// Ошибки источника не кэшируются.
type StockCache struct {
	next     ports.StockReader
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[int64]*list.Element

	mu sync.Mutex
}

// NewStockCache: capacity <= 0 приводится к 1, ttl <= 0 означает без истечения.
func NewStockCache(next ports.StockReader, capacity int, ttl time.Duration) *StockCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &StockCache{
		next:     next,
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[int64]*list.Element),
	}
}

// Available: из кэша при попадании, иначе из источника с записью в кэш.
func (c *StockCache) Available(ctx context.Context, productID int64) (int, error) {
	if qty, ok := c.get(productID, time.Now()); ok {
		return qty, nil
	}

	qty, err := c.next.Available(ctx, productID)
	if err != nil {
		return 0, err
	}
	c.set(productID, qty, time.Now())
	return qty, nil
}

// Invalidate сбрасывает запись товара (после изменения остатка).
func (c *StockCache) Invalidate(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[productID]; ok {
		c.removeElement(elem)
		metrics.StockCacheSize.Set(float64(c.ll.Len()))
	}
}

// Len: текущее число записей.
func (c *StockCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *StockCache) get(productID int64, now time.Time) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[productID]
	if !ok {
		metrics.StockCacheOps.WithLabelValues("miss").Inc()
		return 0, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.StockCacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.StockCacheSize.Set(float64(c.ll.Len()))
		return 0, false
	}
	c.ll.MoveToFront(elem)

	metrics.StockCacheOps.WithLabelValues("hit").Inc()
	return ent.available, true
}

func (c *StockCache) set(productID int64, qty int, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[productID]; ok {
		ent := elem.Value.(*entry)
		ent.available = qty
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		productID: productID,
		available: qty,
		expiresAt: c.expiryFrom(now),
	})
	c.index[productID] = elem

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.StockCacheSize.Set(float64(c.ll.Len()))
}
