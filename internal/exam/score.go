package exam

import "github.com/examgate/examgate/internal/model"

// Score totals the points of every question whose recorded answer exactly
// equals its correct-answer label. Unanswered and wrong answers contribute
// nothing; question order does not matter.
func Score(questions []model.ExamQuestion, answers map[int64]string) int {
	total := 0
	for _, q := range questions {
		if a, ok := answers[q.ID]; ok && a == q.CorrectAnswer {
			total += q.Score
		}
	}
	return total
}
