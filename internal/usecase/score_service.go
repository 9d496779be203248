package usecase

import (
	"github.com/Gunvolt24/order_guard/internal/scores"
)

// ScoreService: итоговые оценки студентов по top-K лучшим тестам.
type ScoreService struct {
	calc *scores.Calculator
}

func NewScoreService(top int) *ScoreService {
	return &ScoreService{calc: scores.NewCalculator(top)}
}

// Top: число учитываемых лучших оценок.
func (s *ScoreService) Top() int { return s.calc.Top }

// FinalScores проверяет записи и возвращает итоги по возрастанию student_id.
// top > 0 переопределяет K для одного вызова.
func (s *ScoreService) FinalScores(records []scores.Record, top int) ([]scores.FinalScore, error) {
	for _, r := range records {
		if err := scores.Validate(r); err != nil {
			return nil, err
		}
	}
	calc := s.calc
	if top > 0 {
		calc = &scores.Calculator{Top: top}
	}
	return calc.SortedFinalScores(records), nil
}
