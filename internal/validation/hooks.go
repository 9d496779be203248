package validation

import (
	"context"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/ports"
)

var (
	_ ports.RejectionHandler = RejectionFunc(nil)
	_ ports.RejectionHandler = (*LogRejection)(nil)
)

// RejectionFunc: адаптер функции к ports.RejectionHandler.
type RejectionFunc func(ctx context.Context, order *domain.Order) error

func (f RejectionFunc) HandleRejection(ctx context.Context, order *domain.Order) error {
	return f(ctx, order)
}

// LogRejection пишет отклонённый заказ в лог вместе с первой причиной.
type LogRejection struct {
	Log ports.Logger
}

func (h *LogRejection) HandleRejection(ctx context.Context, order *domain.Order) error {
	for _, r := range order.ValidatorResults {
		if !r.Code.IsOK() {
			h.Log.Warnf(ctx, "order rejected order_id=%d customer_id=%d validator_id=%d code=%s msg=%q",
				order.OrderID, order.CustomerID, r.ValidatorID, r.Code, r.Message)
			return nil
		}
	}
	return nil
}
