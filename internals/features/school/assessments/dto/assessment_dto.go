// file: internals/features/school/assessments/dto/assessment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/assessments/model"
)

/* ===================== REQUESTS ===================== */

type CreateTestRequest struct {
	ClassID         uuid.UUID `json:"class_id" validate:"required"`
	TeacherID       uuid.UUID `json:"teacher_id" validate:"required"`
	Title           string    `json:"title" validate:"required,min=3,max=160"`
	Type            string    `json:"type" validate:"required,oneof=online offline"`
	TotalMarks      float64   `json:"total_marks" validate:"required,gt=0"`
	PassingMarks    float64   `json:"passing_marks" validate:"gte=0"`
	DurationMinutes int       `json:"duration_minutes" validate:"gte=0"`
	ScheduledDate   time.Time `json:"scheduled_date" validate:"required"`
	StartTime       string    `json:"start_time" validate:"required,len=5"`
	EndTime         string    `json:"end_time" validate:"required,len=5"`
}

type AddQuestionRequest struct {
	Number        int      `json:"number" validate:"required,gt=0"`
	Text          string   `json:"text" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=mcq descriptive fill_in_blank"`
	Marks         float64  `json:"marks" validate:"required,gt=0"`
	Options       []string `json:"options" validate:"omitempty,min=2,dive,required"`
	CorrectAnswer *string  `json:"correct_answer"`
}

type SubmitAttemptRequest struct {
	// question_id → submitted answer
	Answers map[uuid.UUID]string `json:"answers" validate:"required"`
}

type EvaluateAttemptRequest struct {
	StudentID     uuid.UUID `json:"student_id" validate:"required"`
	ObtainedMarks float64   `json:"obtained_marks" validate:"gte=0"`
}

type OfflineScoreRequest struct {
	StudentID     uuid.UUID `json:"student_id" validate:"required"`
	ObtainedMarks float64   `json:"obtained_marks" validate:"gte=0"`
}

type BatchScoreRequest struct {
	Entries []OfflineScoreRequest `json:"entries" validate:"required,min=1,dive"`
}

/* ===================== RESPONSES ===================== */

type AttemptResponse struct {
	AttemptID    uuid.UUID  `json:"attempt_id"`
	TestID       uuid.UUID  `json:"test_id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	ScorePercent *int       `json:"score_percent,omitempty"`
}

func NewAttemptResponse(a *model.TestAttemptModel) AttemptResponse {
	return AttemptResponse{
		AttemptID:    a.TestAttemptID,
		TestID:       a.TestAttemptTestID,
		Status:       string(a.TestAttemptStatus),
		StartedAt:    a.TestAttemptStartedAt,
		FinishedAt:   a.TestAttemptFinishedAt,
		ScorePercent: a.TestAttemptScorePercent,
	}
}

type ScoreResponse struct {
	ScoreID        uuid.UUID `json:"score_id"`
	TestID         uuid.UUID `json:"test_id"`
	StudentID      uuid.UUID `json:"student_id"`
	ObtainedMarks  float64   `json:"obtained_marks"`
	TotalMarks     float64   `json:"total_marks"`
	Percent        int       `json:"percent"`
	SubmissionDate time.Time `json:"submission_date"`
}

func NewScoreResponse(s *model.ScoreModel) ScoreResponse {
	return ScoreResponse{
		ScoreID:        s.ScoreID,
		TestID:         s.ScoreTestID,
		StudentID:      s.ScoreStudentID,
		ObtainedMarks:  s.ScoreObtainedMarks,
		TotalMarks:     s.ScoreTotalMarks,
		Percent:        s.ScorePercent,
		SubmissionDate: s.ScoreSubmissionDate,
	}
}
