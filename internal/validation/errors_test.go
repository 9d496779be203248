package validation_test

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/Gunvolt24/order_guard/internal/validation"
)

func TestFailedValidatorIDs(t *testing.T) {
	cause := errors.New("boom")
	joined := errors.Join(
		&validation.ValidatorError{ValidatorID: 3, Err: cause},
		&validation.ValidatorError{ValidatorID: 7, Err: cause},
	)

	tests := []struct {
		name string
		err  error
		want []int
	}{
		{"nil", nil, nil},
		{"plain", errors.New("x"), nil},
		{"single", &validation.ValidatorError{ValidatorID: 2, Err: cause}, []int{2}},
		{"joined", joined, []int{3, 7}},
		{"wrapped joined", fmt.Errorf("process: %w", joined), []int{3, 7}},
		{"double wrapped joined", fmt.Errorf("kafka: %w", fmt.Errorf("process: %w", joined)), []int{3, 7}},
		{"wrapped single", fmt.Errorf("process: %w", &validation.ValidatorError{ValidatorID: 5, Err: cause}), []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validation.FailedValidatorIDs(tt.err); !slices.Equal(got, tt.want) {
				t.Fatalf("FailedValidatorIDs = %v, want %v", got, tt.want)
			}
		})
	}

	if !errors.Is(joined, validation.ErrValidatorFailed) || !errors.Is(joined, cause) {
		t.Fatalf("joined error must match both the sentinel and the cause")
	}
}
