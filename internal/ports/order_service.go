package ports

import (
	"context"

	"github.com/Gunvolt24/order_guard/internal/domain"
)

// OrderValidationService: проверка заказа из сырого JSON (HTTP, Kafka).
type OrderValidationService interface {
	ValidateOrder(ctx context.Context, raw []byte) (domain.Verdict, error)
}
