// file: internals/features/school/assessments/service/test_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/assessments/model"
	"sekolahku_backend/internals/features/school/tenancy"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

/* =========================================================
   TEST SERVICE
   Authoring side of assessments: tests and their questions.
========================================================= */

type TestService struct {
	DB *gorm.DB
}

func NewTestService(db *gorm.DB) *TestService {
	return &TestService{DB: db}
}

type CreateTestInput struct {
	ClassID         uuid.UUID
	TeacherID       uuid.UUID
	Title           string
	Type            model.TestType
	TotalMarks      float64
	PassingMarks    float64
	DurationMinutes int
	ScheduledDate   time.Time
	StartTime       string
	EndTime         string
}

func (s *TestService) CreateTest(ctx context.Context, p helperAuth.Principal, in CreateTestInput) (*model.TestModel, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	if in.Type != model.TestTypeOnline && in.Type != model.TestTypeOffline {
		return nil, errs.Newf(errs.ValidationError, "unknown test type %q", in.Type)
	}
	if in.TotalMarks <= 0 {
		return nil, errs.New(errs.ValidationError, "total marks must be positive")
	}
	if in.PassingMarks < 0 || in.PassingMarks > in.TotalMarks {
		return nil, errs.New(errs.ValidationError, "passing marks must be between 0 and total marks")
	}
	if in.Type == model.TestTypeOnline && in.DurationMinutes <= 0 {
		return nil, errs.New(errs.ValidationError, "online test needs a positive duration")
	}

	t := &model.TestModel{
		TestOrganizationID:  orgID,
		TestClassID:         in.ClassID,
		TestTeacherID:       in.TeacherID,
		TestTitle:           in.Title,
		TestType:            in.Type,
		TestTotalMarks:      in.TotalMarks,
		TestPassingMarks:    in.PassingMarks,
		TestDurationMinutes: in.DurationMinutes,
		TestScheduledDate:   in.ScheduledDate,
		TestStartTime:       in.StartTime,
		TestEndTime:         in.EndTime,
		TestIsActive:        true,
	}
	if err := s.DB.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestService) GetTest(ctx context.Context, p helperAuth.Principal, testID uuid.UUID) (*model.TestModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.TestModel{})
	if err != nil {
		return nil, err
	}
	var t model.TestModel
	err = scoped.Where("test_id = ?", testID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.New(errs.NotFoundInOrganization, "test not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TestService) ListTestsByClass(ctx context.Context, p helperAuth.Principal, classID uuid.UUID) ([]model.TestModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.TestModel{})
	if err != nil {
		return nil, err
	}
	var out []model.TestModel
	err = scoped.Where("test_class_id = ?", classID).
		Order("test_scheduled_date ASC, test_start_time ASC").
		Find(&out).Error
	return out, err
}

func (s *TestService) DeleteTest(ctx context.Context, p helperAuth.Principal, testID uuid.UUID) error {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TestModel{}).
			Where("test_organization_id = ? AND test_id = ? AND test_is_active = TRUE", orgID, testID).
			Update("test_is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.New(errs.NotFoundInOrganization, "test not found")
		}
		return tx.Model(&model.QuestionModel{}).
			Where("question_organization_id = ? AND question_test_id = ?", orgID, testID).
			Update("question_is_active", false).Error
	})
}

type AddQuestionInput struct {
	Number        int
	Text          string
	Type          model.QuestionType
	Marks         float64
	Options       []string
	CorrectAnswer *string
}

func (s *TestService) AddQuestion(ctx context.Context, p helperAuth.Principal, testID uuid.UUID, in AddQuestionInput) (*model.QuestionModel, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	// The question must hang off a live test in this organization.
	test, err := s.GetTest(ctx, p, testID)
	if err != nil {
		return nil, err
	}
	if test.TestType != model.TestTypeOnline {
		return nil, errs.New(errs.ValidationError, "questions belong to online tests")
	}

	q := &model.QuestionModel{
		QuestionOrganizationID: orgID,
		QuestionTestID:         testID,
		QuestionNumber:         in.Number,
		QuestionText:           in.Text,
		QuestionType:           in.Type,
		QuestionMarks:          in.Marks,
		QuestionOptions:        pq.StringArray(in.Options),
		QuestionCorrectAnswer:  in.CorrectAnswer,
		QuestionIsActive:       true,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// ListQuestions returns the test's live questions. When
// includeAnswers is false the answer key and options stay but the
// key is blanked — the student-facing paper must not leak it.
func (s *TestService) ListQuestions(ctx context.Context, p helperAuth.Principal, testID uuid.UUID, includeAnswers bool) ([]model.QuestionModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.QuestionModel{})
	if err != nil {
		return nil, err
	}
	var out []model.QuestionModel
	err = scoped.Where("question_test_id = ?", testID).
		Order("question_number ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if !includeAnswers {
		for i := range out {
			out[i].QuestionCorrectAnswer = nil
		}
	}
	return out, nil
}
