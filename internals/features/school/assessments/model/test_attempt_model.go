// file: internals/features/school/assessments/model/test_attempt_model.go
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/helpers/errs"
)

/* =========================================================
   TEST ATTEMPT
   1 row = 1 student × 1 test (unique index enforces it).
   State machine: in_progress → completed → evaluated,
   with expired as an independent dead end. Absence of a row
   means "not started".
========================================================= */

type TestAttemptStatus string

const (
	TestAttemptInProgress TestAttemptStatus = "in_progress"
	TestAttemptCompleted  TestAttemptStatus = "completed"
	TestAttemptEvaluated  TestAttemptStatus = "evaluated"
	TestAttemptExpired    TestAttemptStatus = "expired"
)

type TestAttemptModel struct {
	TestAttemptID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:test_attempt_id" json:"test_attempt_id"`

	TestAttemptOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:test_attempt_organization_id" json:"test_attempt_organization_id"`

	TestAttemptTestID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_test_attempts_test_student;column:test_attempt_test_id" json:"test_attempt_test_id"`
	TestAttemptStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_test_attempts_test_student;column:test_attempt_student_id" json:"test_attempt_student_id"`

	TestAttemptStatus TestAttemptStatus `gorm:"type:varchar(16);not null;default:'in_progress';column:test_attempt_status" json:"test_attempt_status"`

	TestAttemptStartedAt  time.Time  `gorm:"type:timestamptz;not null;column:test_attempt_started_at" json:"test_attempt_started_at"`
	TestAttemptFinishedAt *time.Time `gorm:"type:timestamptz;column:test_attempt_finished_at" json:"test_attempt_finished_at,omitempty"`

	// map question_id → submitted answer, JSONB
	TestAttemptAnswers datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'::jsonb;column:test_attempt_answers" json:"test_attempt_answers"`

	// rounded percentage 0–100, set on submit
	TestAttemptScorePercent *int `gorm:"column:test_attempt_score_percent" json:"test_attempt_score_percent,omitempty"`

	TestAttemptIsActive bool `gorm:"not null;default:true;column:test_attempt_is_active" json:"test_attempt_is_active"`

	TestAttemptCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:test_attempt_created_at" json:"test_attempt_created_at"`
	TestAttemptUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:test_attempt_updated_at" json:"test_attempt_updated_at"`
}

func (TestAttemptModel) TableName() string    { return "test_attempts" }
func (TestAttemptModel) TenantColumn() string { return "test_attempt_organization_id" }
func (TestAttemptModel) ActiveColumn() string { return "test_attempt_is_active" }

/* =========================================================
   TRANSITION GUARDS (pure)
========================================================= */

// GuardStart is consulted when a start request finds an existing
// attempt. in_progress is an idempotent resume, not a transition.
func (s TestAttemptStatus) GuardStart() error {
	switch s {
	case TestAttemptInProgress:
		return nil
	case TestAttemptCompleted, TestAttemptEvaluated:
		return errs.New(errs.AlreadySubmitted, "test has already been submitted")
	case TestAttemptExpired:
		return errs.New(errs.AttemptExpired, "test attempt has expired")
	default:
		return errs.Newf(errs.ValidationError, "unknown attempt status %q", s)
	}
}

// GuardEvaluate allows the manual-evaluation transition only from
// completed; evaluation finalizes descriptive grading.
func (s TestAttemptStatus) GuardEvaluate() error {
	switch s {
	case TestAttemptCompleted:
		return nil
	case TestAttemptEvaluated:
		return errs.New(errs.AlreadySubmitted, "attempt has already been evaluated")
	case TestAttemptExpired:
		return errs.New(errs.AttemptExpired, "test attempt has expired")
	default:
		return errs.New(errs.ValidationError, "attempt has not been submitted yet")
	}
}

// GuardSubmit allows submission only from in_progress.
func (s TestAttemptStatus) GuardSubmit() error {
	if s == TestAttemptInProgress {
		return nil
	}
	return errs.New(errs.NoActiveAttempt, "no active attempt for this test")
}

// Deadline is the instant the attempt expires.
func (m *TestAttemptModel) Deadline(limit time.Duration) time.Time {
	return m.TestAttemptStartedAt.Add(limit)
}

// ExpiredAt reports whether the attempt ran out of time at now.
func (m *TestAttemptModel) ExpiredAt(now time.Time, limit time.Duration) bool {
	return m.TestAttemptStatus == TestAttemptInProgress && now.After(m.Deadline(limit))
}

// SetAnswers serializes the submitted answer map. Map keys are
// unique by construction, which is the payload-level invariant.
func (m *TestAttemptModel) SetAnswers(answers map[uuid.UUID]string) error {
	buf, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal test_attempt_answers: %w", err)
	}
	m.TestAttemptAnswers = datatypes.JSON(buf)
	return nil
}

func (m *TestAttemptModel) Answers() (map[uuid.UUID]string, error) {
	out := map[uuid.UUID]string{}
	if len(m.TestAttemptAnswers) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(m.TestAttemptAnswers, &out); err != nil {
		return nil, fmt.Errorf("invalid test_attempt_answers json: %w", err)
	}
	return out, nil
}
