// Package scores считает итоговую оценку студента как среднее K лучших результатов тестов.
//
// Стоимость: O(X) на группировку X записей и O(N * K * log(K)) на сортировку
// оценок N студентов по K тестов.
package scores

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

// DefaultTop: сколько лучших результатов усредняется по умолчанию.
const DefaultTop = 5

// ErrInvalidRecord: запись без студента или с нечисловой оценкой.
var ErrInvalidRecord = errors.New("invalid score record")

// Record: одна строка входного потока.
type Record struct {
	StudentID string  `json:"student_id"`
	TestID    string  `json:"test_id"`
	TestScore float64 `json:"test_score"`
}

// FinalScore: итог по студенту.
type FinalScore struct {
	StudentID string  `json:"student_id"`
	Score     float64 `json:"score"`
}

// ScoreQueue: оценки одного студента и число учитываемых лучших результатов.
type ScoreQueue struct {
	Top    int
	Scores []float64
}

// Average: среднее min(Top, len(Scores)) лучших оценок; 0.0 для пустого набора.
// Недостающие до Top оценки нулями не считаются.
func (q *ScoreQueue) Average() float64 {
	if len(q.Scores) == 0 || q.Top <= 0 {
		return 0.0
	}

	SortAscending(q.Scores)

	lim := min(q.Top, len(q.Scores))
	var sum float64
	for i := 0; i < lim; i++ {
		sum += q.Scores[len(q.Scores)-1-i]
	}
	return sum / float64(lim)
}

// SortAscending: устойчивая сортировка по неубыванию на месте.
func SortAscending(values []float64) {
	slices.SortStableFunc(values, cmp.Compare[float64])
}

// Calculator собирает оценки по студентам и считает итог.
type Calculator struct {
	Top int
}

// NewCalculator: top <= 0 заменяется на DefaultTop.
func NewCalculator(top int) *Calculator {
	if top <= 0 {
		top = DefaultTop
	}
	return &Calculator{Top: top}
}

// Validate проверяет запись перед подсчётом.
func Validate(r Record) error {
	if r.StudentID == "" {
		return fmt.Errorf("%w: student_id is required", ErrInvalidRecord)
	}
	if math.IsNaN(r.TestScore) || math.IsInf(r.TestScore, 0) {
		return fmt.Errorf("%w: student_id=%s test_id=%s: score %v", ErrInvalidRecord, r.StudentID, r.TestID, r.TestScore)
	}
	return nil
}

// BuildScoreBook группирует оценки по студенту; за один проход по записям.
func (c *Calculator) BuildScoreBook(records []Record) map[string]*ScoreQueue {
	book := make(map[string]*ScoreQueue)
	for _, r := range records {
		q, ok := book[r.StudentID]
		if !ok {
			q = &ScoreQueue{Top: c.Top}
			book[r.StudentID] = q
		}
		q.Scores = append(q.Scores, r.TestScore)
	}
	return book
}

// FinalScores: итог по каждому студенту; порядок не определён.
func (c *Calculator) FinalScores(records []Record) []FinalScore {
	book := c.BuildScoreBook(records)
	out := make([]FinalScore, 0, len(book))
	for studentID, q := range book {
		out = append(out, FinalScore{StudentID: studentID, Score: q.Average()})
	}
	return out
}

// SortedFinalScores: то же, что FinalScores, но по возрастанию StudentID.
func (c *Calculator) SortedFinalScores(records []Record) []FinalScore {
	out := c.FinalScores(records)
	slices.SortFunc(out, func(a, b FinalScore) int { return cmp.Compare(a.StudentID, b.StudentID) })
	return out
}
