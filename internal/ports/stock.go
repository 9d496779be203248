package ports

import "context"

// StockReader: источник остатков товара.
// Для неизвестного товара возвращает (0, nil): товара нет на складе.
type StockReader interface {
	Available(ctx context.Context, productID int64) (int, error)
}

// StockWriter: загрузка остатков (сид при старте, админские операции).
type StockWriter interface {
	SetStock(ctx context.Context, levels map[int64]int) error
}
