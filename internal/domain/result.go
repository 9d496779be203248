package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValidatorCode: код результата валидатора. OK единственное "проходное" значение,
// остальные коды означают причину отклонения.
type ValidatorCode int

const (
	CodeOK              ValidatorCode = 1
	CodeInvalidQuantity ValidatorCode = 2
	CodeInvalidCharge   ValidatorCode = 3
	CodeOutOfStock      ValidatorCode = 4
	CodeInvalidFields   ValidatorCode = 5
	CodeInvalidCustomer ValidatorCode = 6
)

var codeNames = map[ValidatorCode]string{
	CodeOK:              "OK",
	CodeInvalidQuantity: "InvalidQuantity",
	CodeInvalidCharge:   "InvalidCharge",
	CodeOutOfStock:      "OutOfStock",
	CodeInvalidFields:   "InvalidFields",
	CodeInvalidCustomer: "InvalidCustomer",
}

// IsOK: true только для CodeOK.
func (c ValidatorCode) IsOK() bool { return c == CodeOK }

func (c ValidatorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "ValidatorCode(" + strconv.Itoa(int(c)) + ")"
}

// ParseValidatorCode: разбор кода по имени ("OutOfStock") или по числу ("4").
func ParseValidatorCode(s string) (ValidatorCode, error) {
	for code, name := range codeNames {
		if name == s {
			return code, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown validator code %q", s)
	}
	code := ValidatorCode(n)
	if _, ok := codeNames[code]; !ok {
		return 0, fmt.Errorf("unknown validator code %d", n)
	}
	return code, nil
}

// MarshalJSON пишет код его именем.
func (c ValidatorCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON принимает и имя, и число.
func (c *ValidatorCode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		code, err := ParseValidatorCode(name)
		if err != nil {
			return err
		}
		*c = code
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("validator code must be a string or a number: %w", err)
	}
	code, err := ParseValidatorCode(strconv.Itoa(n))
	if err != nil {
		return err
	}
	*c = code
	return nil
}

// ValidatorResult: результат одного вызова валидатора. Значение неизменяемое.
// ValidatorID = 0 у синтетического OK-результата (валидаторы не зарегистрированы).
type ValidatorResult struct {
	ValidatorID int           `json:"validator_id"`
	Code        ValidatorCode `json:"code"`
	Message     string        `json:"message,omitempty"`
}

// OK: конструктор проходного результата.
func OK(validatorID int) ValidatorResult {
	return ValidatorResult{ValidatorID: validatorID, Code: CodeOK}
}

// Fail: конструктор результата с причиной отклонения.
func Fail(validatorID int, code ValidatorCode, format string, args ...any) ValidatorResult {
	return ValidatorResult{ValidatorID: validatorID, Code: code, Message: fmt.Sprintf(format, args...)}
}
