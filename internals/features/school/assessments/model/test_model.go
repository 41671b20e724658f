// file: internals/features/school/assessments/model/test_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type TestType string

const (
	TestTypeOnline  TestType = "online"
	TestTypeOffline TestType = "offline"
)

/* =========================================================
   TEST
   Belongs to one class, one teacher, one organization.
   Online tests carry Questions (answer key lives there);
   offline tests are graded manually via the score entry flow.
========================================================= */

type TestModel struct {
	TestID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:test_id" json:"test_id"`

	TestOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:test_organization_id" json:"test_organization_id"`
	TestClassID        uuid.UUID `gorm:"type:uuid;not null;index;column:test_class_id" json:"test_class_id"`
	TestTeacherID      uuid.UUID `gorm:"type:uuid;not null;column:test_teacher_id" json:"test_teacher_id"`

	TestTitle string   `gorm:"type:varchar(160);not null;column:test_title" json:"test_title"`
	TestType  TestType `gorm:"type:varchar(10);not null;column:test_type" json:"test_type"`

	TestTotalMarks   float64 `gorm:"type:numeric(7,2);not null;column:test_total_marks" json:"test_total_marks"`
	TestPassingMarks float64 `gorm:"type:numeric(7,2);not null;column:test_passing_marks" json:"test_passing_marks"`

	// Scheduled window; duration caps how long one attempt may run.
	TestDurationMinutes int       `gorm:"not null;column:test_duration_minutes" json:"test_duration_minutes"`
	TestScheduledDate   time.Time `gorm:"type:date;not null;column:test_scheduled_date" json:"test_scheduled_date"`
	TestStartTime       string    `gorm:"type:varchar(5);not null;column:test_start_time" json:"test_start_time"` // "HH:MM"
	TestEndTime         string    `gorm:"type:varchar(5);not null;column:test_end_time" json:"test_end_time"`     // "HH:MM"

	TestIsActive bool `gorm:"not null;default:true;column:test_is_active" json:"test_is_active"`

	TestCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:test_created_at" json:"test_created_at"`
	TestUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:test_updated_at" json:"test_updated_at"`
}

func (TestModel) TableName() string    { return "tests" }
func (TestModel) TenantColumn() string { return "test_organization_id" }
func (TestModel) ActiveColumn() string { return "test_is_active" }

// Duration returns the attempt time limit.
func (m *TestModel) Duration() time.Duration {
	return time.Duration(m.TestDurationMinutes) * time.Minute
}
