package kafka

import (
	"cmp"
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/order_guard/internal/ports"
	"github.com/Gunvolt24/order_guard/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет интерфейсу MessageConsumer.
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader: то, что Consumer использует из kafka.Reader.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageHandler разбирает заказ из сообщения и прогоняет его через валидаторы.
// validate.ErrInvalidOrder означает мусор во входе, остальные ошибки считаются временными.
type messageHandler interface {
	HandleMessage(ctx context.Context, raw []byte) error
}

// Consumer читает заказы из топика и передаёт их в messageHandler (at-least-once).
type Consumer struct {
	reader         reader
	handler        messageHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	brokenAttempts int
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// Умолчания для незаданных параметров ConsumerConfig.
const (
	defaultProcessTimeout = 5 * time.Second
	defaultRetryInitial   = time.Second
	defaultRetryMax       = 30 * time.Second
	defaultBrokenAttempts = 3
)

// NewConsumer создаёт kafka.Reader с ручным коммитом; нулевые таймауты заменяются умолчаниями.
func NewConsumer(cfg *ConsumerConfig, handler messageHandler, log ports.Logger) *Consumer {
	return &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		handler:        handler,
		log:            log,
		processTimeout: orDefault(cfg.ProcessTimeout, defaultProcessTimeout),
		retryInitial:   orDefault(cfg.RetryInitial, defaultRetryInitial),
		retryMax:       orDefault(cfg.RetryMax, defaultRetryMax),
		brokenAttempts: cmp.Or(max(cfg.BrokenAttempts, 0), defaultBrokenAttempts),
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run читает сообщения до отмены контекста и коммитит каждое после того, как оно
// решено (принято или отклонено) либо признано неразборчивым. Сбой валидатора или
// хранилища повторяется на том же сообщении с backoff; при остановке во время
// повторов оффсет остаётся незакоммиченным и сообщение придёт снова.
// Исключение: сломанный валидатор, после BrokenAttempts попыток сообщение коммитится.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	fetchRetry := c.newBackoff()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			delay := fetchRetry.Delay()
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, delay)
			if !sleepCtx(ctx, delay) {
				return ctx.Err()
			}
			continue
		}
		fetchRetry.Reset()
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if err := c.deliver(ctx, rc.Topic, &msg); err != nil {
			return err
		}
		c.commitSafely(ctx, &msg)
	}
}

// Close закрывает reader; повторные вызовы ничего не делают.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
