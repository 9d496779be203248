package validation

import (
	"errors"
	"fmt"
)

// ErrValidatorFailed: базовая ошибка сбоя валидатора (ошибка, паника, чужой ValidatorID).
var ErrValidatorFailed = errors.New("validator execution failed")

// ErrValidatorBroken: сбой, который повторится на том же заказе (паника, чужой ValidatorID).
// Всегда лежит внутри ValidatorError.Err, поэтому совпадает и с ErrValidatorFailed.
var ErrValidatorBroken = errors.New("validator is broken")

// ValidatorError: сбой конкретного валидатора во время прогона.
// Результат такого валидатора в заказ не записывается, остальные валидаторы отрабатывают.
type ValidatorError struct {
	ValidatorID int
	Err         error
}

func (e *ValidatorError) Error() string {
	return fmt.Sprintf("%v: validator_id=%d: %v", ErrValidatorFailed, e.ValidatorID, e.Err)
}

// Unwrap отдаёт и ErrValidatorFailed, и исходную причину.
func (e *ValidatorError) Unwrap() []error {
	return []error{ErrValidatorFailed, e.Err}
}

// FailedValidatorIDs: id всех сбойных валидаторов из ошибки ApplyValidators,
// в том числе когда join обёрнут через %w.
func FailedValidatorIDs(err error) []int {
	switch e := err.(type) {
	case nil:
		return nil
	case *ValidatorError:
		return []int{e.ValidatorID}
	case interface{ Unwrap() []error }:
		var ids []int
		for _, inner := range e.Unwrap() {
			ids = append(ids, FailedValidatorIDs(inner)...)
		}
		return ids
	default:
		return FailedValidatorIDs(errors.Unwrap(err))
	}
}
