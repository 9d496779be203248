package validation

import (
	"slices"
	"sync"

	"github.com/Gunvolt24/order_guard/internal/ports"
)

// Registry: набор активных валидаторов, ключ идентификатор валидатора.
// Порядок обхода не определён (map); правило отклонения от порядка не зависит.
// Безопасен для общего использования несколькими воркерами: прогон идёт по снимку,
// поэтому Register/Unregister во время прогона на него не влияют.
// Нулевое значение готово к работе.
type Registry struct {
	mu         sync.RWMutex
	validators map[int]ports.Validator
}

// NewRegistry: конструктор; validators регистрируются по очереди через Register.
func NewRegistry(validators ...ports.Validator) *Registry {
	r := &Registry{validators: make(map[int]ports.Validator, len(validators))}
	for _, v := range validators {
		r.Register(v)
	}
	return r
}

// Register добавляет валидатор, только если его идентификатор ещё не занят.
// Побеждает первая регистрация, дубликат молча игнорируется. Возвращает true, если валидатор добавлен.
func (r *Registry) Register(v ports.Validator) bool {
	if v == nil {
		return false
	}
	id := v.ID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.validators[id]; exists {
		return false
	}
	if r.validators == nil {
		r.validators = make(map[int]ports.Validator)
	}
	r.validators[id] = v
	return true
}

// Unregister удаляет валидатор по идентификатору; отсутствие записи не ошибка.
func (r *Registry) Unregister(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.validators[id]; !exists {
		return false
	}
	delete(r.validators, id)
	return true
}

// Has сообщает, зарегистрирован ли валидатор с таким идентификатором.
func (r *Registry) Has(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.validators[id]
	return ok
}

// Len: число зарегистрированных валидаторов.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.validators)
}

// IDs: отсортированные идентификаторы (для диагностики и HTTP).
func (r *Registry) IDs() []int {
	r.mu.RLock()
	ids := make([]int, 0, len(r.validators))
	for id := range r.validators {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// Snapshot: копия текущего набора в порядке обхода map.
func (r *Registry) Snapshot() []ports.Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ports.Validator, 0, len(r.validators))
	for _, v := range r.validators {
		out = append(out, v)
	}
	return out
}
