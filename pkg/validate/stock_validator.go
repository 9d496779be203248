package validate

import (
	"context"
	"fmt"
	"math"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/ports"
)

var _ ports.Validator = (*StockValidator)(nil)

// StockValidator сверяет суммарное количество по каждому товару с остатком на складе.
// Ошибка источника остатков возвращается как сбой валидатора, а не как OutOfStock.
type StockValidator struct {
	id    int
	stock ports.StockReader
}

func NewStockValidator(id int, stock ports.StockReader) *StockValidator {
	return &StockValidator{id: id, stock: stock}
}

func (v *StockValidator) ID() int { return v.id }

func (v *StockValidator) Validate(ctx context.Context, order *domain.Order) (domain.ValidatorResult, error) {
	// одна и та же позиция может встречаться в заказе несколько раз
	wanted := make(map[int64]int, len(order.OrderedProducts))
	ids := make([]int64, 0, len(order.OrderedProducts))
	for i := range order.OrderedProducts {
		p := &order.OrderedProducts[i]
		// неположительное количество не должно гасить другие строки того же товара
		if p.Quantity <= 0 {
			return domain.Fail(v.id, domain.CodeInvalidQuantity,
				"product_id=%d: quantity %d must be positive", p.ProductID, p.Quantity), nil
		}
		if _, seen := wanted[p.ProductID]; !seen {
			ids = append(ids, p.ProductID)
		}
		// сумма, не помещающаяся в int, заведомо больше любого остатка
		if wanted[p.ProductID] > math.MaxInt-p.Quantity {
			return domain.Fail(v.id, domain.CodeOutOfStock,
				"product_id=%d: requested quantity overflows", p.ProductID), nil
		}
		wanted[p.ProductID] += p.Quantity
	}

	for _, productID := range ids {
		available, err := v.stock.Available(ctx, productID)
		if err != nil {
			return domain.ValidatorResult{}, fmt.Errorf("stock lookup product_id=%d: %w", productID, err)
		}
		if need := wanted[productID]; need > available {
			return domain.Fail(v.id, domain.CodeOutOfStock,
				"product_id=%d: requested %d, available %d", productID, need, available), nil
		}
	}
	return domain.OK(v.id), nil
}
