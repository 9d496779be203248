package validate

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/ports"
)

var _ ports.Validator = (*FieldsValidator)(nil)

// FieldsValidator проверяет теги `validate` структуры заказа (go-playground/validator).
type FieldsValidator struct {
	id       int
	validate *validator.Validate
}

func NewFieldsValidator(id int) *FieldsValidator {
	return &FieldsValidator{id: id, validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *FieldsValidator) ID() int { return v.id }

func (v *FieldsValidator) Validate(ctx context.Context, order *domain.Order) (domain.ValidatorResult, error) {
	err := v.validate.StructCtx(ctx, order)
	if err == nil {
		return domain.OK(v.id), nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: ошибка вызова, а не данных
		return domain.ValidatorResult{}, err
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Namespace()+": "+fe.Tag())
	}
	return domain.Fail(v.id, domain.CodeInvalidFields, "invalid fields: %s", strings.Join(parts, ", ")), nil
}
