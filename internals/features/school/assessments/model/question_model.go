// file: internals/features/school/assessments/model/question_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sekolahku_backend/internals/helpers/errs"
)

type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "mcq"
	QuestionTypeDescriptive QuestionType = "descriptive"
	QuestionTypeFillInBlank QuestionType = "fill_in_blank"
)

type QuestionModel struct {
	QuestionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:question_id" json:"question_id"`

	QuestionOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:question_organization_id" json:"question_organization_id"`
	QuestionTestID         uuid.UUID `gorm:"type:uuid;not null;index;column:question_test_id" json:"question_test_id"`

	QuestionNumber int          `gorm:"not null;column:question_number" json:"question_number"`
	QuestionText   string       `gorm:"type:text;not null;column:question_text" json:"question_text"`
	QuestionType   QuestionType `gorm:"type:varchar(16);not null;column:question_type" json:"question_type"`

	QuestionMarks float64 `gorm:"type:numeric(6,2);not null;column:question_marks" json:"question_marks"`

	// MCQ only, at least two
	QuestionOptions pq.StringArray `gorm:"type:text[];column:question_options" json:"question_options,omitempty"`

	// Required for MCQ and fill-in-blank; nil for descriptive
	QuestionCorrectAnswer *string `gorm:"type:text;column:question_correct_answer" json:"question_correct_answer,omitempty"`

	QuestionIsActive bool `gorm:"not null;default:true;column:question_is_active" json:"question_is_active"`

	QuestionCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:question_created_at" json:"question_created_at"`
	QuestionUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:question_updated_at" json:"question_updated_at"`
}

func (QuestionModel) TableName() string    { return "questions" }
func (QuestionModel) TenantColumn() string { return "question_organization_id" }
func (QuestionModel) ActiveColumn() string { return "question_is_active" }

// AutoGradable reports whether the scoring engine may grade this
// question by exact answer comparison.
func (m *QuestionModel) AutoGradable() bool {
	return m.QuestionType == QuestionTypeMCQ || m.QuestionType == QuestionTypeFillInBlank
}

// Validate enforces the per-type shape rules before persisting.
func (m *QuestionModel) Validate() error {
	if m.QuestionMarks <= 0 {
		return errs.New(errs.ValidationError, "question marks must be positive")
	}
	switch m.QuestionType {
	case QuestionTypeMCQ:
		if len(m.QuestionOptions) < 2 {
			return errs.New(errs.ValidationError, "MCQ question needs at least two options")
		}
		if m.QuestionCorrectAnswer == nil {
			return errs.New(errs.ValidationError, "MCQ question needs a correct answer")
		}
		found := false
		for _, opt := range m.QuestionOptions {
			if opt == *m.QuestionCorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return errs.New(errs.ValidationError, "correct answer must be one of the options")
		}
	case QuestionTypeFillInBlank:
		if m.QuestionCorrectAnswer == nil || *m.QuestionCorrectAnswer == "" {
			return errs.New(errs.ValidationError, "fill-in-blank question needs a correct answer")
		}
	case QuestionTypeDescriptive:
		// no answer key; graded manually
	default:
		return errs.Newf(errs.ValidationError, "unknown question type %q", m.QuestionType)
	}
	return nil
}
