package validation_test

import (
	"context"
	"time"

	"github.com/Gunvolt24/order_guard/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// stubValidator всегда возвращает заранее заданный код и считает вызовы.
type stubValidator struct {
	id    int
	code  domain.ValidatorCode
	calls int
}

func (s *stubValidator) ID() int { return s.id }

func (s *stubValidator) Validate(_ context.Context, _ *domain.Order) (domain.ValidatorResult, error) {
	s.calls++
	if s.code.IsOK() {
		return domain.OK(s.id), nil
	}
	return domain.Fail(s.id, s.code, "stub %d says %s", s.id, s.code), nil
}

func okValidator(id int) *stubValidator { return &stubValidator{id: id, code: domain.CodeOK} }

func newOrder() *domain.Order {
	return &domain.Order{
		OrderID:     1,
		CustomerID:  7,
		OrderDate:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		TotalCharge: 20,
		OrderedProducts: []domain.Product{
			{ProductID: 100, Description: "pen", Quantity: 2, Price: 10},
		},
	}
}
