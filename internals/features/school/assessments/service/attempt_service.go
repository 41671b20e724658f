// file: internals/features/school/assessments/service/attempt_service.go
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

// EnrollmentChecker is the read-only collaborator owned by the
// classes feature.
type EnrollmentChecker interface {
	IsStudentEnrolled(ctx context.Context, orgID, classID, studentID uuid.UUID) (bool, error)
}

/* =========================================================
   ATTEMPT SERVICE
   Drives the start/resume/submit lifecycle of one student taking
   one online test. All reads and writes are pinned to the
   principal's organization before touching the store.

   Expiry is enforced lazily here: when a start or submit finds an
   in-progress attempt past started_at + duration, the attempt is
   flipped to expired by a conditional update and the caller gets
   AttemptExpired. There is no background timer.
========================================================= */

type AttemptService struct {
	Store      AssessmentStore
	Enrollment EnrollmentChecker

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewAttemptService(store AssessmentStore, enrollment EnrollmentChecker) *AttemptService {
	return &AttemptService{
		Store:      store,
		Enrollment: enrollment,
		Now:        time.Now,
	}
}

func (s *AttemptService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// loadTest fetches the test inside the principal's organization.
// Absence and cross-tenant ownership are indistinguishable to the
// caller by design.
func (s *AttemptService) loadTest(ctx context.Context, p helperAuth.Principal, testID uuid.UUID) (*model.TestModel, uuid.UUID, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, uuid.Nil, err
	}
	test, err := s.Store.FindTest(ctx, orgID, testID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if test == nil {
		return nil, uuid.Nil, errs.New(errs.NotFoundInOrganization, "test not found")
	}
	return test, orgID, nil
}

// Start creates the attempt on first call and resumes it on
// repeat calls while it is still in progress.
func (s *AttemptService) Start(ctx context.Context, p helperAuth.Principal, testID uuid.UUID) (*model.TestAttemptModel, error) {
	test, orgID, err := s.loadTest(ctx, p, testID)
	if err != nil {
		return nil, err
	}
	if test.TestType != model.TestTypeOnline {
		return nil, errs.New(errs.ValidationError, "only online tests can be taken here")
	}

	studentID := p.RoleID
	enrolled, err := s.Enrollment.IsStudentEnrolled(ctx, orgID, test.TestClassID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, errs.New(errs.Forbidden, "student is not enrolled in this class")
	}

	existing, err := s.Store.FindAttempt(ctx, orgID, testID, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.resumeExisting(ctx, existing, test)
	}

	attempt := &model.TestAttemptModel{
		TestAttemptOrganizationID: orgID,
		TestAttemptTestID:         testID,
		TestAttemptStudentID:      studentID,
		TestAttemptStatus:         model.TestAttemptInProgress,
		TestAttemptStartedAt:      s.now(),
		TestAttemptIsActive:       true,
	}
	if err := attempt.SetAnswers(map[uuid.UUID]string{}); err != nil {
		return nil, err
	}

	err = s.Store.InsertAttempt(ctx, attempt)
	if err == ErrDuplicateAttempt {
		// Raced another start for the same (student, test); the
		// unique index kept one row. Branch on the survivor.
		survivor, ferr := s.Store.FindAttempt(ctx, orgID, testID, studentID)
		if ferr != nil {
			return nil, ferr
		}
		if survivor == nil {
			return nil, errs.New(errs.NoActiveAttempt, "attempt vanished during start")
		}
		return s.resumeExisting(ctx, survivor, test)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[AttemptService] attempt started. attempt_id=%s test_id=%s student_id=%s",
		attempt.TestAttemptID, testID, studentID)
	return attempt, nil
}

func (s *AttemptService) resumeExisting(ctx context.Context, attempt *model.TestAttemptModel, test *model.TestModel) (*model.TestAttemptModel, error) {
	if attempt.ExpiredAt(s.now(), test.Duration()) {
		if _, err := s.Store.ExpireAttempt(ctx, attempt.TestAttemptID); err != nil {
			return nil, err
		}
		return nil, errs.New(errs.AttemptExpired, "test attempt has expired")
	}
	if err := attempt.TestAttemptStatus.GuardStart(); err != nil {
		return nil, err
	}
	// idempotent resume of the in-progress attempt
	return attempt, nil
}

// Evaluate finalizes a completed attempt after a teacher has
// reviewed the descriptive answers, replacing the auto-graded
// percentage with the full manually reviewed marks.
func (s *AttemptService) Evaluate(ctx context.Context, p helperAuth.Principal, testID, studentID uuid.UUID, obtainedMarks float64) (*model.TestAttemptModel, error) {
	test, orgID, err := s.loadTest(ctx, p, testID)
	if err != nil {
		return nil, err
	}
	if obtainedMarks < 0 || obtainedMarks > test.TestTotalMarks {
		return nil, errs.Newf(errs.ValidationError, "obtained marks must be between 0 and %.2f", test.TestTotalMarks)
	}

	attempt, err := s.Store.FindAttempt(ctx, orgID, testID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, errs.New(errs.NoActiveAttempt, "no attempt for this test")
	}
	if err := attempt.TestAttemptStatus.GuardEvaluate(); err != nil {
		return nil, err
	}

	percent := Percentage(obtainedMarks, test.TestTotalMarks)
	score := &model.ScoreModel{
		ScoreOrganizationID: orgID,
		ScoreTestID:         testID,
		ScoreStudentID:      studentID,
		ScoreClassID:        test.TestClassID,
		ScoreObtainedMarks:  obtainedMarks,
		ScoreTotalMarks:     test.TestTotalMarks,
		ScorePercent:        percent,
		ScoreSubmissionDate: s.now(),
		ScoreIsActive:       true,
	}
	won, err := s.Store.EvaluateAndScore(ctx, attempt.TestAttemptID, percent, score)
	if err != nil {
		return nil, err
	}
	if !won {
		// Raced another evaluation; the first one stands.
		return nil, errs.New(errs.AlreadySubmitted, "attempt has already been evaluated")
	}

	attempt.TestAttemptStatus = model.TestAttemptEvaluated
	attempt.TestAttemptScorePercent = &percent

	log.Printf("[AttemptService] attempt evaluated. attempt_id=%s test_id=%s student_id=%s percent=%d",
		attempt.TestAttemptID, testID, studentID, percent)
	return attempt, nil
}

// Submit grades the answers and takes the single surviving
// in_progress → completed transition, upserting the Score in the
// same transaction.
func (s *AttemptService) Submit(ctx context.Context, p helperAuth.Principal, testID uuid.UUID, answers map[uuid.UUID]string) (*model.TestAttemptModel, error) {
	test, orgID, err := s.loadTest(ctx, p, testID)
	if err != nil {
		return nil, err
	}

	studentID := p.RoleID
	attempt, err := s.Store.FindAttempt(ctx, orgID, testID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, errs.New(errs.NoActiveAttempt, "no active attempt for this test")
	}
	if attempt.ExpiredAt(s.now(), test.Duration()) {
		if _, err := s.Store.ExpireAttempt(ctx, attempt.TestAttemptID); err != nil {
			return nil, err
		}
		return nil, errs.New(errs.AttemptExpired, "test attempt has expired")
	}
	if err := attempt.TestAttemptStatus.GuardSubmit(); err != nil {
		return nil, err
	}

	questions, err := s.Store.FindQuestions(ctx, orgID, testID)
	if err != nil {
		return nil, err
	}

	obtained := GradeAnswers(questions, answers)
	percent := Percentage(obtained, test.TestTotalMarks)
	finishedAt := s.now()

	if err := attempt.SetAnswers(answers); err != nil {
		return nil, err
	}

	score := &model.ScoreModel{
		ScoreOrganizationID: orgID,
		ScoreTestID:         testID,
		ScoreStudentID:      studentID,
		ScoreClassID:        test.TestClassID,
		ScoreObtainedMarks:  obtained,
		ScoreTotalMarks:     test.TestTotalMarks,
		ScorePercent:        percent,
		ScoreSubmissionDate: finishedAt,
		ScoreIsActive:       true,
	}

	won, err := s.Store.CompleteAndScore(ctx, attempt.TestAttemptID, attempt.TestAttemptAnswers, finishedAt, percent, score)
	if err != nil {
		return nil, err
	}
	if !won {
		// Another submit got the conditional update first.
		return nil, errs.New(errs.NoActiveAttempt, "no active attempt for this test")
	}

	attempt.TestAttemptStatus = model.TestAttemptCompleted
	attempt.TestAttemptFinishedAt = &finishedAt
	attempt.TestAttemptScorePercent = &percent

	log.Printf("[AttemptService] attempt submitted. attempt_id=%s test_id=%s student_id=%s percent=%d",
		attempt.TestAttemptID, testID, studentID, percent)
	return attempt, nil
}
