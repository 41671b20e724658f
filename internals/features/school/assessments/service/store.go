// file: internals/features/school/assessments/service/store.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/features/school/assessments/model"
)

/* =========================================================
   ASSESSMENT STORE
   Narrow persistence surface for the attempt machine and score
   services. All filters already carry the tenant key — callers
   resolve it through the tenancy guard before reaching here.
   The conditional updates are single atomic statements, never
   read-then-write.
========================================================= */

type AssessmentStore interface {
	// Reads (tenant-scoped, live rows only)
	FindTest(ctx context.Context, orgID, testID uuid.UUID) (*model.TestModel, error)
	FindQuestions(ctx context.Context, orgID, testID uuid.UUID) ([]model.QuestionModel, error)
	FindAttempt(ctx context.Context, orgID, testID, studentID uuid.UUID) (*model.TestAttemptModel, error)
	FindScore(ctx context.Context, orgID, testID, studentID uuid.UUID) (*model.ScoreModel, error)
	FindClassScores(ctx context.Context, orgID, classID uuid.UUID, from, to time.Time) ([]model.ScoreModel, error)
	FindOrganizationScores(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]model.ScoreModel, error)
	FindStudentScores(ctx context.Context, orgID, studentID uuid.UUID, from, to time.Time) ([]model.ScoreModel, error)

	// Writes
	InsertAttempt(ctx context.Context, attempt *model.TestAttemptModel) error
	ExpireAttempt(ctx context.Context, attemptID uuid.UUID) (bool, error)
	CompleteAndScore(ctx context.Context, attemptID uuid.UUID, answers datatypes.JSON, finishedAt time.Time, percent int, score *model.ScoreModel) (bool, error)
	EvaluateAndScore(ctx context.Context, attemptID uuid.UUID, percent int, score *model.ScoreModel) (bool, error)
	UpsertScore(ctx context.Context, score *model.ScoreModel) error
	DeactivateScoreAndAttempt(ctx context.Context, orgID, scoreID uuid.UUID) error
}

// ErrDuplicateAttempt signals the unique (test, student) index fired.
var ErrDuplicateAttempt = errors.New("attempt already exists for this student and test")

/* =========================================================
   GORM IMPLEMENTATION
========================================================= */

type GormAssessmentStore struct {
	DB *gorm.DB
}

func NewGormAssessmentStore(db *gorm.DB) *GormAssessmentStore {
	return &GormAssessmentStore{DB: db}
}

func (s *GormAssessmentStore) FindTest(ctx context.Context, orgID, testID uuid.UUID) (*model.TestModel, error) {
	var t model.TestModel
	err := s.DB.WithContext(ctx).
		Where("test_organization_id = ? AND test_id = ? AND test_is_active = TRUE", orgID, testID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GormAssessmentStore) FindQuestions(ctx context.Context, orgID, testID uuid.UUID) ([]model.QuestionModel, error) {
	var out []model.QuestionModel
	err := s.DB.WithContext(ctx).
		Where("question_organization_id = ? AND question_test_id = ? AND question_is_active = TRUE", orgID, testID).
		Order("question_number ASC").
		Find(&out).Error
	return out, err
}

func (s *GormAssessmentStore) FindAttempt(ctx context.Context, orgID, testID, studentID uuid.UUID) (*model.TestAttemptModel, error) {
	var a model.TestAttemptModel
	err := s.DB.WithContext(ctx).
		Where("test_attempt_organization_id = ? AND test_attempt_test_id = ? AND test_attempt_student_id = ?",
			orgID, testID, studentID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *GormAssessmentStore) FindScore(ctx context.Context, orgID, testID, studentID uuid.UUID) (*model.ScoreModel, error) {
	var sc model.ScoreModel
	err := s.DB.WithContext(ctx).
		Where("score_organization_id = ? AND score_test_id = ? AND score_student_id = ? AND score_is_active = TRUE",
			orgID, testID, studentID).
		First(&sc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *GormAssessmentStore) FindClassScores(ctx context.Context, orgID, classID uuid.UUID, from, to time.Time) ([]model.ScoreModel, error) {
	var out []model.ScoreModel
	err := s.DB.WithContext(ctx).
		Where("score_organization_id = ? AND score_class_id = ? AND score_is_active = TRUE", orgID, classID).
		Where("score_submission_date >= ? AND score_submission_date <= ?", from, to).
		Order("score_submission_date ASC, score_created_at ASC").
		Find(&out).Error
	return out, err
}

func (s *GormAssessmentStore) FindOrganizationScores(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]model.ScoreModel, error) {
	var out []model.ScoreModel
	err := s.DB.WithContext(ctx).
		Where("score_organization_id = ? AND score_is_active = TRUE", orgID).
		Where("score_submission_date >= ? AND score_submission_date <= ?", from, to).
		Order("score_submission_date ASC, score_created_at ASC").
		Find(&out).Error
	return out, err
}

func (s *GormAssessmentStore) FindStudentScores(ctx context.Context, orgID, studentID uuid.UUID, from, to time.Time) ([]model.ScoreModel, error) {
	var out []model.ScoreModel
	err := s.DB.WithContext(ctx).
		Where("score_organization_id = ? AND score_student_id = ? AND score_is_active = TRUE", orgID, studentID).
		Where("score_submission_date >= ? AND score_submission_date <= ?", from, to).
		Order("score_submission_date ASC, score_created_at ASC").
		Find(&out).Error
	return out, err
}

func (s *GormAssessmentStore) InsertAttempt(ctx context.Context, attempt *model.TestAttemptModel) error {
	err := s.DB.WithContext(ctx).Create(attempt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateAttempt
	}
	return err
}

// ExpireAttempt flips in_progress → expired in one statement.
// Returns false when the attempt was no longer in progress.
func (s *GormAssessmentStore) ExpireAttempt(ctx context.Context, attemptID uuid.UUID) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.TestAttemptModel{}).
		Where("test_attempt_id = ? AND test_attempt_status = ?", attemptID, model.TestAttemptInProgress).
		Update("test_attempt_status", model.TestAttemptExpired)
	return res.RowsAffected == 1, res.Error
}

// CompleteAndScore performs the in_progress → completed transition
// and the Score upsert in one transaction. The status predicate in
// the UPDATE is what guarantees at most one surviving transition
// per (student, test) under racing submits.
func (s *GormAssessmentStore) CompleteAndScore(
	ctx context.Context,
	attemptID uuid.UUID,
	answers datatypes.JSON,
	finishedAt time.Time,
	percent int,
	score *model.ScoreModel,
) (bool, error) {
	won := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TestAttemptModel{}).
			Where("test_attempt_id = ? AND test_attempt_status = ?", attemptID, model.TestAttemptInProgress).
			Updates(map[string]interface{}{
				"test_attempt_status":        model.TestAttemptCompleted,
				"test_attempt_answers":       answers,
				"test_attempt_finished_at":   finishedAt,
				"test_attempt_score_percent": percent,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// lost the race (or no active attempt); nothing else to do
			return nil
		}
		won = true
		return upsertScoreTx(tx, score)
	})
	return won, err
}

// EvaluateAndScore takes completed → evaluated with the final
// (manually reviewed) percentage and refreshes the Score in the
// same transaction.
func (s *GormAssessmentStore) EvaluateAndScore(
	ctx context.Context,
	attemptID uuid.UUID,
	percent int,
	score *model.ScoreModel,
) (bool, error) {
	won := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TestAttemptModel{}).
			Where("test_attempt_id = ? AND test_attempt_status = ?", attemptID, model.TestAttemptCompleted).
			Updates(map[string]interface{}{
				"test_attempt_status":        model.TestAttemptEvaluated,
				"test_attempt_score_percent": percent,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		won = true
		return upsertScoreTx(tx, score)
	})
	return won, err
}

func (s *GormAssessmentStore) UpsertScore(ctx context.Context, score *model.ScoreModel) error {
	return upsertScoreTx(s.DB.WithContext(ctx), score)
}

// upsertScoreTx is the single atomic insert-or-update keyed by the
// (test, student) uniqueness constraint.
func upsertScoreTx(tx *gorm.DB, score *model.ScoreModel) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "score_test_id"}, {Name: "score_student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score_obtained_marks",
			"score_total_marks",
			"score_percent",
			"score_submission_date",
			"score_is_active",
		}),
	}).Create(score).Error
}

// DeactivateScoreAndAttempt soft-deletes a score and its paired
// attempt together; a failure leaves both untouched.
func (s *GormAssessmentStore) DeactivateScoreAndAttempt(ctx context.Context, orgID, scoreID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sc model.ScoreModel
		if err := tx.
			Where("score_organization_id = ? AND score_id = ? AND score_is_active = TRUE", orgID, scoreID).
			First(&sc).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.ScoreModel{}).
			Where("score_id = ?", sc.ScoreID).
			Update("score_is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.TestAttemptModel{}).
			Where("test_attempt_organization_id = ? AND test_attempt_test_id = ? AND test_attempt_student_id = ?",
				orgID, sc.ScoreTestID, sc.ScoreStudentID).
			Update("test_attempt_is_active", false).Error
	})
}
