// file: internals/features/school/assessments/model/score_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   SCORE
   Durable grading record for 1 student × 1 test, decoupled from
   the attempt so it survives attempt soft-deletion. System of
   record for leaderboards and analytics.
========================================================= */

type ScoreModel struct {
	ScoreID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:score_id" json:"score_id"`

	ScoreOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:score_organization_id" json:"score_organization_id"`

	ScoreTestID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_scores_test_student;column:score_test_id" json:"score_test_id"`
	ScoreStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_scores_test_student;column:score_student_id" json:"score_student_id"`
	ScoreClassID   uuid.UUID `gorm:"type:uuid;not null;index;column:score_class_id" json:"score_class_id"`

	ScoreObtainedMarks float64 `gorm:"type:numeric(7,2);not null;column:score_obtained_marks" json:"score_obtained_marks"`
	ScoreTotalMarks    float64 `gorm:"type:numeric(7,2);not null;column:score_total_marks" json:"score_total_marks"`

	// rounded percentage 0–100
	ScorePercent int `gorm:"not null;column:score_percent" json:"score_percent"`

	ScoreSubmissionDate time.Time `gorm:"type:timestamptz;not null;column:score_submission_date" json:"score_submission_date"`

	ScoreIsActive bool `gorm:"not null;default:true;column:score_is_active" json:"score_is_active"`

	ScoreCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:score_created_at" json:"score_created_at"`
	ScoreUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:score_updated_at" json:"score_updated_at"`
}

func (ScoreModel) TableName() string    { return "scores" }
func (ScoreModel) TenantColumn() string { return "score_organization_id" }
func (ScoreModel) ActiveColumn() string { return "score_is_active" }
