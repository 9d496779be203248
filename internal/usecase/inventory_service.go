package usecase

import (
	"context"

	"github.com/Gunvolt24/order_guard/internal/ports"
)

// invalidator: кэш остатков, который нужно сбросить после записи.
type invalidator interface {
	Invalidate(productID int64)
}

// InventoryService загружает остатки в хранилище.
type InventoryService struct {
	writer ports.StockWriter
	cache  invalidator
	log    ports.Logger
}

// NewInventoryService: cache может быть nil.
func NewInventoryService(writer ports.StockWriter, cache invalidator, log ports.Logger) *InventoryService {
	return &InventoryService{writer: writer, cache: cache, log: log}
}

// Seed записывает остатки и сбрасывает закэшированные значения этих товаров.
// Пустой набор пропускается.
func (s *InventoryService) Seed(ctx context.Context, levels map[int64]int) error {
	if len(levels) == 0 {
		s.log.Infof(ctx, "stock seed skipped: no products")
		return nil
	}
	if err := s.writer.SetStock(ctx, levels); err != nil {
		s.log.Errorf(ctx, "stock seed failed products=%d err=%v", len(levels), err)
		return err
	}
	if s.cache != nil {
		for id := range levels {
			s.cache.Invalidate(id)
		}
	}
	s.log.Infof(ctx, "stock seeded products=%d", len(levels))
	return nil
}
