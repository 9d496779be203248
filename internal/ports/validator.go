package ports

import (
	"context"

	"github.com/Gunvolt24/order_guard/internal/domain"
)

// Validator: одно бизнес-правило над заказом.
// Требования к реализации:
//   - ID() постоянен на всё время жизни валидатора;
//   - Validate не изменяет заказ и возвращает ровно один результат с ValidatorID == ID();
//   - ошибка означает сбой самого валидатора (недоступно хранилище и т.п.), а не отказ по правилу.
type Validator interface {
	ID() int
	Validate(ctx context.Context, order *domain.Order) (domain.ValidatorResult, error)
}

// OrderProcessor: прогон валидаторов и правило отклонения за один вызов (validation.Pipeline).
type OrderProcessor interface {
	Process(ctx context.Context, order *domain.Order) (bool, error)
}
