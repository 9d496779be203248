//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/inventory"
	ikafka "github.com/Gunvolt24/order_guard/internal/kafka"
	"github.com/Gunvolt24/order_guard/internal/ports"
	"github.com/Gunvolt24/order_guard/internal/testutil"
	"github.com/Gunvolt24/order_guard/internal/usecase"
	"github.com/Gunvolt24/order_guard/internal/validation"
	"github.com/Gunvolt24/order_guard/pkg/logger"
	"github.com/Gunvolt24/order_guard/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// Мусор пропускается, принятый заказ в топик отклонений не попадает, отклонённый попадает.
func TestKafka_RejectedOrderPublished_TC(t *testing.T) {
	ctx, cancel, logg, kf := newStack(t)
	defer cancel()

	in, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-in-" + safe(t))
	out, _ := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-rejected-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], in))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], out))

	stock := inventory.NewMemoryStock(map[int64]int{1: 10, 2: 1})
	consumer, publisher := newConsumer(kf, in, out, group, stock, logg)
	defer publisher.Close()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = consumer.Run(runCtx) }()

	// даём консьюмеру присоединиться к группе
	time.Sleep(1500 * time.Millisecond)

	writeMsg(t, ctx, kf.Brokers, in, []byte("not-a-json"))
	writeMsg(t, ctx, kf.Brokers, in, orderJSON(t, 100, 1, 2))
	writeMsg(t, ctx, kf.Brokers, in, orderJSON(t, 200, 2, 3)) // на складе 1

	got := readVerdict(t, ctx, kf.Brokers, out)
	require.Equal(t, int64(200), got.OrderID)
	require.True(t, got.Reject)
	require.Contains(t, codes(got.Results), domain.CodeOutOfStock)
}

// At-least-once: пока хранилище остатков недоступно, оффсет не коммитится;
// после рестарта с рабочим хранилищем сообщение читается повторно.
func TestKafka_Redelivery_AfterValidatorFailure_TC(t *testing.T) {
	ctx, cancel, logg, kf := newStack(t)
	defer cancel()

	in, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-redelivery-" + safe(t))
	out, _ := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-redelivery-out-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], in))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], out))

	writeMsg(t, ctx, kf.Brokers, in, orderJSON(t, 300, 1, 5))

	// Фаза 1: хранилище всегда падает
	failing, pub1 := newConsumer(kf, in, out, group, downStock{}, logg)
	runCtx1, cancelRun1 := context.WithCancel(ctx)
	go func() { _ = failing.Run(runCtx1) }()
	time.Sleep(3 * time.Second)
	cancelRun1()
	_ = failing.Close()
	_ = pub1.Close()

	// Фаза 2: та же группа, остатков не хватает => заказ отклоняется и публикуется
	ok, pub2 := newConsumer(kf, in, out, group, inventory.NewMemoryStock(map[int64]int{1: 1}), logg)
	defer pub2.Close()
	runCtx2, cancelRun2 := context.WithCancel(ctx)
	defer cancelRun2()
	go func() { _ = ok.Run(runCtx2) }()

	got := readVerdict(t, ctx, kf.Brokers, out)
	require.Equal(t, int64(300), got.OrderID)
	require.True(t, got.Reject)
}

// -----------------функции-помощники-----------------

func newStack(t *testing.T) (context.Context, context.CancelFunc, ports.Logger, *testutil.KafkaEnv) {
	t.Helper()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "orders-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	return ctx, cancel, logg, kf
}

func newConsumer(
	kf *testutil.KafkaEnv,
	in, out, group string,
	stock ports.StockReader,
	logg ports.Logger,
) (*ikafka.Consumer, *ikafka.RejectionPublisher) {
	publisher := ikafka.NewRejectionPublisher(&ikafka.PublisherConfig{Brokers: kf.Brokers, Topic: out})

	registry := validation.NewRegistry(validate.DefaultValidators(validate.Rules{MaxQuantity: 100, ChargeTolerance: 0.01}, stock)...)
	pipeline := validation.NewPipeline(registry, logg, publisher)
	svc := usecase.NewOrderService(pipeline, logg)

	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        kf.Brokers,
		Topic:          in,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 3 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       time.Second,
	}, svc, logg)
	return consumer, publisher
}

func orderJSON(t *testing.T, orderID, productID int64, qty int) []byte {
	t.Helper()
	o := domain.Order{
		OrderID:     orderID,
		CustomerID:  7,
		OrderDate:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TotalCharge: 2.5 * float64(qty),
		OrderedProducts: []domain.Product{
			{ProductID: productID, Description: "widget", Quantity: qty, Price: 2.5},
		},
	}
	raw, err := json.Marshal(o)
	require.NoError(t, err)
	return raw
}

func writeMsg(t *testing.T, ctx context.Context, brokers []string, topic string, payload []byte) {
	t.Helper()
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()
	require.NoError(t, w.WriteMessages(ctx, kafka.Message{Value: payload}))
}

func readVerdict(t *testing.T, ctx context.Context, brokers []string, topic string) domain.Verdict {
	t.Helper()
	r := kafka.NewReader(kafka.ReaderConfig{Brokers: brokers, Topic: topic, StartOffset: kafka.FirstOffset})
	defer r.Close()

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := r.ReadMessage(readCtx)
	require.NoError(t, err)

	var v domain.Verdict
	require.NoError(t, json.Unmarshal(msg.Value, &v))
	return v
}

func codes(results []domain.ValidatorResult) []domain.ValidatorCode {
	out := make([]domain.ValidatorCode, 0, len(results))
	for _, r := range results {
		out = append(out, r.Code)
	}
	return out
}

// downStock: хранилище остатков, которое всегда недоступно.
type downStock struct{}

func (downStock) Available(context.Context, int64) (int, error) {
	return 0, errors.New("stock storage unavailable")
}
