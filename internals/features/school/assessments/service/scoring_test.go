// file: internals/features/school/assessments/service/scoring_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sekolahku_backend/internals/features/school/assessments/model"
)

func strPtr(s string) *string { return &s }

func mcq(id uuid.UUID, marks float64, answer string, options ...string) model.QuestionModel {
	return model.QuestionModel{
		QuestionID:            id,
		QuestionType:          model.QuestionTypeMCQ,
		QuestionMarks:         marks,
		QuestionOptions:       pq.StringArray(options),
		QuestionCorrectAnswer: strPtr(answer),
	}
}

func TestGradeAnswers(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	q3 := uuid.New()

	questions := []model.QuestionModel{
		mcq(q1, 3, "B", "A", "B", "C"),
		{
			QuestionID:            q2,
			QuestionType:          model.QuestionTypeFillInBlank,
			QuestionMarks:         2,
			QuestionCorrectAnswer: strPtr("photosynthesis"),
		},
		{
			QuestionID:    q3,
			QuestionType:  model.QuestionTypeDescriptive,
			QuestionMarks: 5,
		},
	}

	t.Run("sums marks of exact matches only", func(t *testing.T) {
		got := GradeAnswers(questions, map[uuid.UUID]string{
			q1: "B",
			q2: "photosynthesis",
			q3: "long essay text",
		})
		if got != 5 {
			t.Fatalf("obtained = %v, want 5", got)
		}
	})

	t.Run("comparison is case sensitive", func(t *testing.T) {
		got := GradeAnswers(questions, map[uuid.UUID]string{
			q1: "b",
			q2: "Photosynthesis",
		})
		if got != 0 {
			t.Fatalf("obtained = %v, want 0", got)
		}
	})

	t.Run("missing answers score nothing", func(t *testing.T) {
		got := GradeAnswers(questions, map[uuid.UUID]string{q2: "photosynthesis"})
		if got != 2 {
			t.Fatalf("obtained = %v, want 2", got)
		}
	})

	t.Run("deterministic over repeated runs", func(t *testing.T) {
		answers := map[uuid.UUID]string{q1: "B", q2: "photosynthesis"}
		first := GradeAnswers(questions, answers)
		for i := 0; i < 50; i++ {
			if got := GradeAnswers(questions, answers); got != first {
				t.Fatalf("run %d: obtained = %v, want %v", i, got, first)
			}
		}
	})

	t.Run("descriptive marks never auto-awarded", func(t *testing.T) {
		got := GradeAnswers(questions, map[uuid.UUID]string{q3: "anything"})
		if got != 0 {
			t.Fatalf("obtained = %v, want 0", got)
		}
	})
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		name     string
		obtained float64
		total    float64
		want     int
	}{
		{"five of seven rounds down", 5, 7, 71},
		{"two of three rounds up", 2, 3, 67},
		{"exact half", 50, 100, 50},
		{"full marks", 7, 7, 100},
		{"zero obtained", 0, 10, 0},
		{"zero total is not a division", 5, 0, 0},
		{"half rounds away from zero", 12.5, 100, 13},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percentage(tc.obtained, tc.total); got != tc.want {
				t.Fatalf("Percentage(%v, %v) = %d, want %d", tc.obtained, tc.total, got, tc.want)
			}
		})
	}
}
