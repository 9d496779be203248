package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/ports"
	"github.com/Gunvolt24/order_guard/pkg/validate"
)

// Проверка, что OrderService удовлетворяет интерфейсу OrderValidationService.
var _ ports.OrderValidationService = (*OrderService)(nil)

// OrderService: прикладная логика проверки заказов (без знаний о транспорте).
type OrderService struct {
	processor ports.OrderProcessor
	log       ports.Logger
}

// NewOrderService - DI-конструктор.
func NewOrderService(processor ports.OrderProcessor, log ports.Logger) *OrderService {
	return &OrderService{processor: processor, log: log}
}

// ValidateOrder разбирает заказ из JSON и прогоняет его через конвейер.
// Ошибка validate.ErrInvalidOrder означает неразборчивый вход; прочие ошибки означают
// сбой валидатора, решение по заказу не принято.
func (s *OrderService) ValidateOrder(ctx context.Context, raw []byte) (domain.Verdict, error) {
	start := time.Now()
	verdict, err := validate.ProcessOrder(ctx, s.processor, raw)
	if err != nil {
		s.log.Warnf(ctx, "order not decided: %v", err)
		return domain.Verdict{}, err
	}
	s.log.Infof(ctx, "order decided order_id=%d reject=%t results=%d took=%s",
		verdict.OrderID, verdict.Reject, len(verdict.Results), time.Since(start))
	return verdict, nil
}

// HandleMessage: то же для сообщения из Kafka; вердикт уходит через rejection-хуки.
func (s *OrderService) HandleMessage(ctx context.Context, raw []byte) error {
	_, err := s.ValidateOrder(ctx, raw)
	return err
}
