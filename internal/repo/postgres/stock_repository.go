package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/order_guard/internal/ports"
)

// Проверка, что StockRepository удовлетворяет интерфейсам остатков.
var (
	_ ports.StockReader = (*StockRepository)(nil)
	_ ports.StockWriter = (*StockRepository)(nil)
)

// StockRepository: остатки товаров в таблице products_stock.
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository - конструктор StockRepository.
func NewStockRepository(pool *pgxpool.Pool) *StockRepository { return &StockRepository{pool: pool} }

// Available: остаток товара; отсутствующая строка означает 0.
func (r *StockRepository) Available(ctx context.Context, productID int64) (int, error) {
	var qty int
	err := r.pool.QueryRow(ctx,
		`SELECT available FROM products_stock WHERE product_id = $1`, productID,
	).Scan(&qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("select stock: %w", err)
	}
	return qty, nil
}

// SetStock: upsert остатков одной транзакцией; отрицательные значения приводятся к 0.
func (r *StockRepository) SetStock(ctx context.Context, levels map[int64]int) (err error) {
	if len(levels) == 0 {
		return nil
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { err = withRollback(err, transaction.Rollback(ctx)) }()

	batch := &pgx.Batch{}
	for id, qty := range levels {
		batch.Queue(`
			INSERT INTO products_stock (product_id, available, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (product_id) DO UPDATE SET
				available  = EXCLUDED.available,
				updated_at = EXCLUDED.updated_at
		`, id, max(qty, 0))
	}
	if err = transaction.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}

	return transaction.Commit(ctx)
}

// withRollback добавляет к err ошибку отката. ErrTxClosed после Commit не считается ошибкой.
func withRollback(err, rbErr error) error {
	if rbErr == nil || errors.Is(rbErr, pgx.ErrTxClosed) {
		return err
	}
	return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
}
