// file: internals/features/school/assessments/service/scoring.go
package service

import (
	"math"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/assessments/model"
)

/* =========================================================
   SCORING ENGINE
   Pure and deterministic: same (questions, answers) in, same
   marks out. No I/O here — persistence happens in the attempt
   and score services.
========================================================= */

// GradeAnswers sums the marks of every auto-gradable question whose
// submitted answer equals the key exactly (case-sensitive).
// Descriptive questions never contribute automatically.
func GradeAnswers(questions []model.QuestionModel, answers map[uuid.UUID]string) float64 {
	var obtained float64
	for _, q := range questions {
		if !q.AutoGradable() || q.QuestionCorrectAnswer == nil {
			continue
		}
		submitted, ok := answers[q.QuestionID]
		if !ok {
			continue
		}
		if submitted == *q.QuestionCorrectAnswer {
			obtained += q.QuestionMarks
		}
	}
	return obtained
}

// Percentage rounds obtained/total to the nearest whole percent.
// A zero (or negative) total yields 0 rather than dividing by it.
func Percentage(obtained, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(obtained / total * 100))
}
