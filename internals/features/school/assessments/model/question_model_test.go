// file: internals/features/school/assessments/model/question_model_test.go
package model

import (
	"testing"

	"github.com/lib/pq"
)

func TestQuestionValidate(t *testing.T) {
	answer := "B"

	t.Run("valid mcq", func(t *testing.T) {
		q := QuestionModel{
			QuestionType:          QuestionTypeMCQ,
			QuestionMarks:         2,
			QuestionOptions:       pq.StringArray{"A", "B"},
			QuestionCorrectAnswer: &answer,
		}
		if err := q.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("mcq needs two options", func(t *testing.T) {
		q := QuestionModel{
			QuestionType:          QuestionTypeMCQ,
			QuestionMarks:         2,
			QuestionOptions:       pq.StringArray{"A"},
			QuestionCorrectAnswer: &answer,
		}
		if err := q.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("mcq answer must be an option", func(t *testing.T) {
		wrong := "Z"
		q := QuestionModel{
			QuestionType:          QuestionTypeMCQ,
			QuestionMarks:         2,
			QuestionOptions:       pq.StringArray{"A", "B"},
			QuestionCorrectAnswer: &wrong,
		}
		if err := q.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("fill in blank needs an answer", func(t *testing.T) {
		q := QuestionModel{
			QuestionType:  QuestionTypeFillInBlank,
			QuestionMarks: 1,
		}
		if err := q.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("descriptive has no key", func(t *testing.T) {
		q := QuestionModel{
			QuestionType:  QuestionTypeDescriptive,
			QuestionMarks: 5,
		}
		if err := q.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("marks must be positive", func(t *testing.T) {
		q := QuestionModel{
			QuestionType:  QuestionTypeDescriptive,
			QuestionMarks: 0,
		}
		if err := q.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
}
