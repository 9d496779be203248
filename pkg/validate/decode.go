package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/order_guard/internal/domain"
)

// ErrInvalidOrder: базовая (sentinel) ошибка разбора входного заказа.
var ErrInvalidOrder = errors.New("invalid order payload")

// DecodeOrder: строгий разбор заказа из JSON.
// Неизвестные поля и данные после объекта считаются ошибкой; результаты валидаторов
// во входных данных допустимы (накопление между прогонами).
func DecodeOrder(raw []byte) (*domain.Order, error) {
	var order domain.Order
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrInvalidOrder, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidOrder)
	}
	return &order, nil
}
