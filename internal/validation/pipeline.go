package validation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/ports"
	"github.com/Gunvolt24/order_guard/pkg/ctxmeta"
	"github.com/Gunvolt24/order_guard/pkg/metrics"
)

var tracer = otel.Tracer("github.com/Gunvolt24/order_guard/internal/validation")

// ErrNilOrder: конвейер получил nil вместо заказа.
var ErrNilOrder = errors.New("order is nil")

// Pipeline прогоняет все зарегистрированные валидаторы по заказу и применяет правило отклонения.
// Создаётся только через NewPipeline.
type Pipeline struct {
	registry *Registry
	log      ports.Logger

	hooksMu sync.RWMutex
	hooks   []ports.RejectionHandler
}

// NewPipeline: DI-конструктор. hooks вызываются при каждом отклонении заказа.
// Без логгера сообщения о сбоях валидаторов отбрасываются.
func NewPipeline(registry *Registry, log ports.Logger, hooks ...ports.RejectionHandler) *Pipeline {
	if registry == nil {
		registry = NewRegistry()
	}
	if log == nil {
		log = discardLogger{}
	}
	p := &Pipeline{registry: registry, log: log}
	for _, h := range hooks {
		p.OnReject(h)
	}
	return p
}

// Registry: реестр, с которым работает конвейер.
func (p *Pipeline) Registry() *Registry { return p.registry }

// OnReject добавляет обработчик отклонения.
func (p *Pipeline) OnReject(h ports.RejectionHandler) {
	if h == nil {
		return
	}
	p.hooksMu.Lock()
	p.hooks = append(p.hooks, h)
	p.hooksMu.Unlock()
}

// ApplyValidators вызывает каждый зарегистрированный валидатор ровно один раз и дописывает
// результаты в order.ValidatorResults. Результаты накапливаются между вызовами: для сброса
// есть отдельная ResetResults.
//
// Без зарегистрированных валидаторов дописывается один синтетический OK-результат (ValidatorID = 0).
// Сбой валидатора (ошибка, паника, чужой ValidatorID) не прерывает прогон: результат такого
// валидатора не записывается, а ошибки собираются в errors.Join из *ValidatorError.
func (p *Pipeline) ApplyValidators(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if order.ValidatorResults == nil {
		order.ValidatorResults = make([]domain.ValidatorResult, 0, p.registry.Len())
	}

	validators := p.registry.Snapshot()
	if len(validators) == 0 {
		order.ValidatorResults = append(order.ValidatorResults, domain.ValidatorResult{Code: domain.CodeOK})
		return nil
	}

	var errs []error
	for _, v := range validators {
		if err := p.runOne(ctx, v, order); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// runOne вызывает один валидатор в своём спане и дописывает его результат.
func (p *Pipeline) runOne(ctx context.Context, v ports.Validator, order *domain.Order) error {
	id := v.ID()
	label := strconv.Itoa(id)

	ctx, span := tracer.Start(ctx, "validator", trace.WithAttributes(attribute.Int("validator.id", id)))
	defer span.End()

	result, err := invoke(ctx, v, order)
	if err == nil && result.ValidatorID != id {
		err = fmt.Errorf("%w: result stamped with validator_id=%d", ErrValidatorBroken, result.ValidatorID)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validator failed")
		metrics.ValidatorFailures.WithLabelValues(label).Inc()
		p.log.Warnf(ctx, "validator failed order_id=%d validator_id=%d err=%v", order.OrderID, id, err)
		return &ValidatorError{ValidatorID: id, Err: err}
	}

	span.SetAttributes(attribute.String("validator.code", result.Code.String()))
	metrics.ValidatorResults.WithLabelValues(label, result.Code.String()).Inc()
	order.ValidatorResults = append(order.ValidatorResults, result)
	return nil
}

// RejectOrder сбрасывает Reject и выставляет его в true на первом не-OK результате.
// Пустой набор результатов даёт false. При отклонении вызываются все обработчики OnReject;
// их ошибки логируются и на решение не влияют.
func (p *Pipeline) RejectOrder(ctx context.Context, order *domain.Order) bool {
	if order == nil {
		return false
	}

	order.Reject = false
	for _, result := range order.ValidatorResults {
		if !result.Code.IsOK() {
			order.Reject = true
			break
		}
	}

	if !order.Reject {
		metrics.OrdersDecided.WithLabelValues("accepted").Inc()
		return false
	}

	metrics.OrdersDecided.WithLabelValues("rejected").Inc()
	p.notifyRejected(ctx, order)
	return true
}

// Process: ApplyValidators и затем RejectOrder. При сбое валидаторов решение не принимается.
func (p *Pipeline) Process(ctx context.Context, order *domain.Order) (bool, error) {
	if order == nil {
		return false, ErrNilOrder
	}
	ctx = ctxmeta.WithOrderID(ctx, order.OrderID)
	ctx, span := tracer.Start(ctx, "validation.Process", trace.WithAttributes(attribute.Int64("order.id", order.OrderID)))
	defer span.End()

	if err := p.ApplyValidators(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order not decided")
		return false, err
	}
	rejected := p.RejectOrder(ctx, order)
	span.SetAttributes(attribute.Bool("order.reject", rejected))
	return rejected, nil
}

// ResetResults очищает накопленные результаты и флаг Reject.
func ResetResults(order *domain.Order) {
	if order == nil {
		return
	}
	order.ValidatorResults = nil
	order.Reject = false
}

func (p *Pipeline) notifyRejected(ctx context.Context, order *domain.Order) {
	p.hooksMu.RLock()
	hooks := append([]ports.RejectionHandler(nil), p.hooks...)
	p.hooksMu.RUnlock()

	for _, h := range hooks {
		if err := h.HandleRejection(ctx, order); err != nil {
			metrics.RejectionHooksFailed.Inc()
			p.log.Warnf(ctx, "rejection handler failed order_id=%d err=%v", order.OrderID, err)
		}
	}
}

// invoke вызывает валидатор, превращая панику в ошибку.
func invoke(ctx context.Context, v ports.Validator, order *domain.Order) (result domain.ValidatorResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrValidatorBroken, r)
		}
	}()
	return v.Validate(ctx, order)
}

type discardLogger struct{}

func (discardLogger) Infof(context.Context, string, ...any)  {}
func (discardLogger) Warnf(context.Context, string, ...any)  {}
func (discardLogger) Errorf(context.Context, string, ...any) {}
