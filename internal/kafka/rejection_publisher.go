package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/ports"
)

// Проверка, что RejectionPublisher удовлетворяет интерфейсу RejectionHandler.
var _ ports.RejectionHandler = (*RejectionPublisher)(nil)

// writer: то, что RejectionPublisher использует из kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublisherConfig: топик для отклонённых заказов.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// RejectionPublisher отправляет вердикт отклонённого заказа в топик.
// Ключ сообщения = order_id, поэтому вердикты одного заказа попадают в одну партицию.
type RejectionPublisher struct {
	writer    writer
	timeout   time.Duration
	closeOnce sync.Once
}

// NewRejectionPublisher: WriteTimeout <= 0 заменяется на 5s.
func NewRejectionPublisher(cfg *PublisherConfig) *RejectionPublisher {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RejectionPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: timeout,
		},
		timeout: timeout,
	}
}

// HandleRejection публикует вердикт заказа; nil-заказ считается ошибкой вызывающего.
func (p *RejectionPublisher) HandleRejection(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("rejection publisher: nil order")
	}
	value, err := json.Marshal(order.Verdict())
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(order.OrderID, 10)),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctxTimeout, msg); err != nil {
		return fmt.Errorf("publish rejection order_id=%d: %w", order.OrderID, err)
	}
	return nil
}

// Close закрывает writer; повторные вызовы ничего не делают.
func (p *RejectionPublisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
