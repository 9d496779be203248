package ports

import (
	"context"

	"github.com/Gunvolt24/order_guard/internal/domain"
)

// RejectionHandler: точка расширения, вызывается когда заказ отклонён.
// Конкретная реакция (уведомление, компенсация, аудит) на стороне вызывающего кода.
type RejectionHandler interface {
	HandleRejection(ctx context.Context, order *domain.Order) error
}
