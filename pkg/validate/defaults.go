package validate

import (
	"github.com/Gunvolt24/order_guard/internal/ports"
)

// Rules: параметры встроенного набора валидаторов.
type Rules struct {
	MaxQuantity      int
	ChargeTolerance  float64
	BlockedCustomers []int64
}

// DefaultValidators собирает встроенный набор; без источника остатков StockValidator не включается.
func DefaultValidators(rules Rules, stock ports.StockReader) []ports.Validator {
	out := []ports.Validator{
		NewFieldsValidator(FieldsValidatorID),
		NewQuantityValidator(QuantityValidatorID, rules.MaxQuantity),
		NewChargeValidator(ChargeValidatorID, rules.ChargeTolerance),
		NewCustomerValidator(CustomerValidatorID, rules.BlockedCustomers...),
	}
	if stock != nil {
		out = append(out, NewStockValidator(StockValidatorID, stock))
	}
	return out
}
