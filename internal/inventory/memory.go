package inventory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/order_guard/internal/ports"
)

var (
	_ ports.StockReader = (*MemoryStock)(nil)
	_ ports.StockWriter = (*MemoryStock)(nil)
)

// MemoryStock: остатки в памяти процесса (CLI, тесты, режим без БД).
type MemoryStock struct {
	mu     sync.RWMutex
	levels map[int64]int
}

func NewMemoryStock(levels map[int64]int) *MemoryStock {
	m := &MemoryStock{levels: make(map[int64]int, len(levels))}
	for id, qty := range levels {
		m.levels[id] = qty
	}
	return m
}

func (m *MemoryStock) Available(_ context.Context, productID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.levels[productID], nil
}

// Set задаёт остаток товара; отрицательное значение приводится к нулю.
func (m *MemoryStock) Set(productID int64, qty int) {
	if qty < 0 {
		qty = 0
	}
	m.mu.Lock()
	m.levels[productID] = qty
	m.mu.Unlock()
}

// SetStock задаёт остатки пачкой.
func (m *MemoryStock) SetStock(_ context.Context, levels map[int64]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, qty := range levels {
		m.levels[id] = max(qty, 0)
	}
	return nil
}
