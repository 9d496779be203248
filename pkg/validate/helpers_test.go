package validate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/validation"
	"github.com/Gunvolt24/order_guard/pkg/validate"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func validOrder() *domain.Order {
	return &domain.Order{
		OrderID:     1001,
		CustomerID:  42,
		OrderDate:   time.Date(2025, 11, 26, 6, 22, 19, 0, time.UTC),
		TotalCharge: 35,
		OrderedProducts: []domain.Product{
			{ProductID: 1, Description: "notebook", Quantity: 2, Price: 10},
			{ProductID: 2, Description: "pencil", Quantity: 3, Price: 5},
		},
	}
}

// newPipeline: конвейер без склада (Fields, Quantity, Charge, Customer).
func newPipeline() *validation.Pipeline {
	reg := validation.NewRegistry(validate.DefaultValidators(validate.Rules{MaxQuantity: 10, ChargeTolerance: 0.01}, nil)...)
	return validation.NewPipeline(reg, nopLogger{})
}

func orderJSON(mutate func(o *domain.Order)) string {
	o := validOrder()
	if mutate != nil {
		mutate(o)
	}
	raw, _ := json.Marshal(o)
	return string(raw)
}

func oneLineJSON(s string) string {
	var b bytes.Buffer
	_ = json.Compact(&b, []byte(s))
	return b.String()
}
