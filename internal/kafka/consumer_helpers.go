package kafka

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/order_guard/internal/validation"
	"github.com/Gunvolt24/order_guard/pkg/metrics"
	"github.com/Gunvolt24/order_guard/pkg/validate"
)

// deliver обрабатывает одно сообщение, повторяя временные сбои, пока заказ не будет
// решён или не окажется мусором. Сломанный валидатор (паника, чужой ValidatorID) на том же
// заказе сломается снова: после brokenAttempts попыток сообщение пропускается.
// Ошибка возвращается только при отмене ctx.
func (c *Consumer) deliver(ctx context.Context, topic string, msg *kafka.Message) error {
	retry := c.newBackoff()
	for attempt := 1; ; attempt++ {
		err := c.handleMessage(ctx, topic, msg, attempt)
		if err == nil {
			return nil
		}
		if errors.Is(err, validation.ErrValidatorBroken) && attempt >= c.brokenAttempts {
			metrics.KafkaMessagesDropped.WithLabelValues(topic).Inc()
			c.log.Errorf(ctx, "dropping offset=%d after %d attempts: %v", msg.Offset, attempt, err)
			return nil
		}
		if !sleepCtx(ctx, retry.Delay()) {
			c.log.Warnf(ctx, "stopped while retrying offset=%d attempts=%d (left uncommitted)", msg.Offset, attempt)
			return ctx.Err()
		}
	}
}

// handleMessage: nil, если оффсет можно коммитить; иначе ошибка обработки для повтора.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message, attempt int) error {
	procCtx, cancel := context.WithTimeout(ctx, c.processTimeout)
	defer cancel()

	err := c.handler.HandleMessage(procCtx, msg.Value)
	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return nil
	case errors.Is(err, validate.ErrInvalidOrder):
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid message offset=%d: %v (skipped)", msg.Offset, err)
		return nil
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "process failed offset=%d attempt=%d: %v (will retry)", msg.Offset, attempt, err)
		return err
	}
}

func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}

func (c *Consumer) newBackoff() *backoff {
	return &backoff{initial: c.retryInitial, max: c.retryMax, next: c.retryInitial, rnd: c.jitterRand}
}

// backoff: удваивающаяся задержка от initial до max с equal jitter.
// Не потокобезопасен: живёт внутри одной горутины Run.
type backoff struct {
	initial time.Duration
	max     time.Duration
	next    time.Duration
	rnd     *rand.Rand
}

// Delay возвращает текущую задержку с jitter и удваивает следующую.
func (b *backoff) Delay() time.Duration {
	d := jitterEqual(b.rnd, b.next)
	b.next = min(b.next*2, b.max)
	return d
}

func (b *backoff) Reset() { b.next = b.initial }

// jitterEqual: половина задержки фиксирована, остальное случайно из [0, d/2].
func jitterEqual(rnd *rand.Rand, d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(rnd.Int63n(int64(d-half)+1))
}

// sleepCtx: false, если ctx отменён раньше, чем прошло d.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
