package validate

import (
	"context"
	"math"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/ports"
)

// Идентификаторы встроенных валидаторов.
const (
	QuantityValidatorID = 1
	ChargeValidatorID   = 2
	StockValidatorID    = 3
	FieldsValidatorID   = 4
	CustomerValidatorID = 5
)

// Проверка, что валидаторы удовлетворяют интерфейсу ports.Validator.
var (
	_ ports.Validator = (*QuantityValidator)(nil)
	_ ports.Validator = (*ChargeValidator)(nil)
	_ ports.Validator = (*CustomerValidator)(nil)
)

// QuantityValidator: количество каждой позиции в диапазоне [1, max]; max <= 0 снимает верхнюю границу.
type QuantityValidator struct {
	id  int
	max int
}

func NewQuantityValidator(id, maxQuantity int) *QuantityValidator {
	return &QuantityValidator{id: id, max: maxQuantity}
}

func (v *QuantityValidator) ID() int { return v.id }

func (v *QuantityValidator) Validate(_ context.Context, order *domain.Order) (domain.ValidatorResult, error) {
	if len(order.OrderedProducts) == 0 {
		return domain.Fail(v.id, domain.CodeInvalidQuantity, "order has no products"), nil
	}
	for i := range order.OrderedProducts {
		p := &order.OrderedProducts[i]
		if p.Quantity <= 0 {
			return domain.Fail(v.id, domain.CodeInvalidQuantity,
				"products[%d] product_id=%d: quantity %d must be positive", i, p.ProductID, p.Quantity), nil
		}
		if v.max > 0 && p.Quantity > v.max {
			return domain.Fail(v.id, domain.CodeInvalidQuantity,
				"products[%d] product_id=%d: quantity %d exceeds limit %d", i, p.ProductID, p.Quantity, v.max), nil
		}
	}
	return domain.OK(v.id), nil
}

// ChargeValidator: TotalCharge неотрицателен и совпадает с суммой позиций с точностью tolerance.
type ChargeValidator struct {
	id        int
	tolerance float64
}

func NewChargeValidator(id int, tolerance float64) *ChargeValidator {
	if tolerance < 0 {
		tolerance = 0
	}
	return &ChargeValidator{id: id, tolerance: tolerance}
}

func (v *ChargeValidator) ID() int { return v.id }

func (v *ChargeValidator) Validate(_ context.Context, order *domain.Order) (domain.ValidatorResult, error) {
	if order.TotalCharge < 0 || math.IsNaN(order.TotalCharge) || math.IsInf(order.TotalCharge, 0) {
		return domain.Fail(v.id, domain.CodeInvalidCharge, "total_charge %v is not a valid amount", order.TotalCharge), nil
	}
	for i := range order.OrderedProducts {
		if price := order.OrderedProducts[i].Price; price < 0 {
			return domain.Fail(v.id, domain.CodeInvalidCharge, "products[%d]: negative price %v", i, price), nil
		}
	}
	expected := order.ProductsTotal()
	if math.Abs(order.TotalCharge-expected) > v.tolerance {
		return domain.Fail(v.id, domain.CodeInvalidCharge,
			"total_charge %.2f does not match products total %.2f", order.TotalCharge, expected), nil
	}
	return domain.OK(v.id), nil
}

// CustomerValidator: у заказа есть покупатель и он не в стоп-листе.
type CustomerValidator struct {
	id      int
	blocked map[int64]struct{}
}

func NewCustomerValidator(id int, blocked ...int64) *CustomerValidator {
	set := make(map[int64]struct{}, len(blocked))
	for _, c := range blocked {
		set[c] = struct{}{}
	}
	return &CustomerValidator{id: id, blocked: set}
}

func (v *CustomerValidator) ID() int { return v.id }

func (v *CustomerValidator) Validate(_ context.Context, order *domain.Order) (domain.ValidatorResult, error) {
	if order.CustomerID <= 0 {
		return domain.Fail(v.id, domain.CodeInvalidCustomer, "customer_id is required"), nil
	}
	if _, ok := v.blocked[order.CustomerID]; ok {
		return domain.Fail(v.id, domain.CodeInvalidCustomer, "customer_id=%d is blocked", order.CustomerID), nil
	}
	return domain.OK(v.id), nil
}
