// file: internals/features/school/assessments/service/score_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/assessments/model"
	"sekolahku_backend/internals/features/school/tenancy"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

/* =========================================================
   SCORE SERVICE
   Manual (offline) score entry plus score lifecycle. Uses the
   same rounding rule as the online grading path.
========================================================= */

type ScoreService struct {
	Store AssessmentStore

	Now func() time.Time
}

func NewScoreService(store AssessmentStore) *ScoreService {
	return &ScoreService{Store: store, Now: time.Now}
}

func (s *ScoreService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type OfflineScoreInput struct {
	TestID        uuid.UUID
	StudentID     uuid.UUID
	ObtainedMarks float64
}

// RecordOfflineScore enters one manually graded result. A second
// entry for a (student, test) pair that already has an active
// Score is rejected with DuplicateEntry.
func (s *ScoreService) RecordOfflineScore(ctx context.Context, p helperAuth.Principal, in OfflineScoreInput) (*model.ScoreModel, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}

	test, err := s.Store.FindTest(ctx, orgID, in.TestID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, errs.New(errs.NotFoundInOrganization, "test not found")
	}
	if test.TestType != model.TestTypeOffline {
		return nil, errs.New(errs.ValidationError, "manual score entry is for offline tests")
	}
	if in.ObtainedMarks < 0 || in.ObtainedMarks > test.TestTotalMarks {
		return nil, errs.Newf(errs.ValidationError, "obtained marks must be between 0 and %.2f", test.TestTotalMarks)
	}

	existing, err := s.Store.FindScore(ctx, orgID, in.TestID, in.StudentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.New(errs.DuplicateEntry, "a score already exists for this student and test")
	}

	score := &model.ScoreModel{
		ScoreOrganizationID: orgID,
		ScoreTestID:         in.TestID,
		ScoreStudentID:      in.StudentID,
		ScoreClassID:        test.TestClassID,
		ScoreObtainedMarks:  in.ObtainedMarks,
		ScoreTotalMarks:     test.TestTotalMarks,
		ScorePercent:        Percentage(in.ObtainedMarks, test.TestTotalMarks),
		ScoreSubmissionDate: s.now(),
		ScoreIsActive:       true,
	}
	if err := s.Store.UpsertScore(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}

// RecordOfflineScoreBatch records each eligible row and silently
// omits rows that already hold an active Score — the batch never
// fails as a whole because of duplicates.
func (s *ScoreService) RecordOfflineScoreBatch(ctx context.Context, p helperAuth.Principal, testID uuid.UUID, rows []OfflineScoreInput) ([]model.ScoreModel, error) {
	recorded := make([]model.ScoreModel, 0, len(rows))
	for _, row := range rows {
		row.TestID = testID
		score, err := s.RecordOfflineScore(ctx, p, row)
		if err != nil {
			if errs.IsKind(err, errs.DuplicateEntry) {
				log.Printf("[ScoreService] batch entry skipped (duplicate). test_id=%s student_id=%s", testID, row.StudentID)
				continue
			}
			return nil, err
		}
		recorded = append(recorded, *score)
	}
	return recorded, nil
}

// DeleteScore soft-deletes a Score together with its paired
// attempt, all-or-nothing.
func (s *ScoreService) DeleteScore(ctx context.Context, p helperAuth.Principal, scoreID uuid.UUID) error {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return err
	}
	return s.Store.DeactivateScoreAndAttempt(ctx, orgID, scoreID)
}
