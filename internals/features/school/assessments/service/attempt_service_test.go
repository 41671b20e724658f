// file: internals/features/school/assessments/service/attempt_service_test.go
package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/assessments/model"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

/* =========================================================
   IN-MEMORY FAKES
========================================================= */

type fakeStore struct {
	mu        sync.Mutex
	tests     map[uuid.UUID]model.TestModel
	questions map[uuid.UUID][]model.QuestionModel
	attempts  map[uuid.UUID]*model.TestAttemptModel
	scores    map[string]*model.ScoreModel // test|student
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tests:     map[uuid.UUID]model.TestModel{},
		questions: map[uuid.UUID][]model.QuestionModel{},
		attempts:  map[uuid.UUID]*model.TestAttemptModel{},
		scores:    map[string]*model.ScoreModel{},
	}
}

func scoreKey(testID, studentID uuid.UUID) string {
	return testID.String() + "|" + studentID.String()
}

func (f *fakeStore) FindTest(_ context.Context, orgID, testID uuid.UUID) (*model.TestModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tests[testID]
	if !ok || t.TestOrganizationID != orgID || !t.TestIsActive {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (f *fakeStore) FindQuestions(_ context.Context, orgID, testID uuid.UUID) ([]model.QuestionModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.QuestionModel
	for _, q := range f.questions[testID] {
		if q.QuestionOrganizationID == orgID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) FindAttempt(_ context.Context, orgID, testID, studentID uuid.UUID) (*model.TestAttemptModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.attempts {
		if a.TestAttemptOrganizationID == orgID &&
			a.TestAttemptTestID == testID &&
			a.TestAttemptStudentID == studentID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindScore(_ context.Context, orgID, testID, studentID uuid.UUID) (*model.ScoreModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sc, ok := f.scores[scoreKey(testID, studentID)]
	if !ok || sc.ScoreOrganizationID != orgID || !sc.ScoreIsActive {
		return nil, nil
	}
	cp := *sc
	return &cp, nil
}

func (f *fakeStore) findScoresWhere(orgID uuid.UUID, keep func(*model.ScoreModel) bool) []model.ScoreModel {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ScoreModel
	for _, sc := range f.scores {
		if sc.ScoreOrganizationID == orgID && sc.ScoreIsActive && keep(sc) {
			out = append(out, *sc)
		}
	}
	return out
}

func (f *fakeStore) FindClassScores(_ context.Context, orgID, classID uuid.UUID, from, to time.Time) ([]model.ScoreModel, error) {
	return f.findScoresWhere(orgID, func(sc *model.ScoreModel) bool {
		return sc.ScoreClassID == classID && !sc.ScoreSubmissionDate.Before(from) && !sc.ScoreSubmissionDate.After(to)
	}), nil
}

func (f *fakeStore) FindOrganizationScores(_ context.Context, orgID uuid.UUID, from, to time.Time) ([]model.ScoreModel, error) {
	return f.findScoresWhere(orgID, func(sc *model.ScoreModel) bool {
		return !sc.ScoreSubmissionDate.Before(from) && !sc.ScoreSubmissionDate.After(to)
	}), nil
}

func (f *fakeStore) FindStudentScores(_ context.Context, orgID, studentID uuid.UUID, from, to time.Time) ([]model.ScoreModel, error) {
	return f.findScoresWhere(orgID, func(sc *model.ScoreModel) bool {
		return sc.ScoreStudentID == studentID && !sc.ScoreSubmissionDate.Before(from) && !sc.ScoreSubmissionDate.After(to)
	}), nil
}

func (f *fakeStore) InsertAttempt(_ context.Context, attempt *model.TestAttemptModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.attempts {
		if a.TestAttemptTestID == attempt.TestAttemptTestID &&
			a.TestAttemptStudentID == attempt.TestAttemptStudentID {
			return ErrDuplicateAttempt
		}
	}
	attempt.TestAttemptID = uuid.New()
	cp := *attempt
	f.attempts[attempt.TestAttemptID] = &cp
	return nil
}

func (f *fakeStore) ExpireAttempt(_ context.Context, attemptID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[attemptID]
	if !ok || a.TestAttemptStatus != model.TestAttemptInProgress {
		return false, nil
	}
	a.TestAttemptStatus = model.TestAttemptExpired
	return true, nil
}

func (f *fakeStore) CompleteAndScore(_ context.Context, attemptID uuid.UUID, answers datatypes.JSON, finishedAt time.Time, percent int, score *model.ScoreModel) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[attemptID]
	if !ok || a.TestAttemptStatus != model.TestAttemptInProgress {
		return false, nil
	}
	a.TestAttemptStatus = model.TestAttemptCompleted
	a.TestAttemptAnswers = answers
	a.TestAttemptFinishedAt = &finishedAt
	a.TestAttemptScorePercent = &percent
	cp := *score
	cp.ScoreID = uuid.New()
	f.scores[scoreKey(score.ScoreTestID, score.ScoreStudentID)] = &cp
	return true, nil
}

func (f *fakeStore) EvaluateAndScore(_ context.Context, attemptID uuid.UUID, percent int, score *model.ScoreModel) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[attemptID]
	if !ok || a.TestAttemptStatus != model.TestAttemptCompleted {
		return false, nil
	}
	a.TestAttemptStatus = model.TestAttemptEvaluated
	a.TestAttemptScorePercent = &percent
	cp := *score
	cp.ScoreID = uuid.New()
	f.scores[scoreKey(score.ScoreTestID, score.ScoreStudentID)] = &cp
	return true, nil
}

func (f *fakeStore) UpsertScore(_ context.Context, score *model.ScoreModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *score
	if cp.ScoreID == uuid.Nil {
		cp.ScoreID = uuid.New()
	}
	score.ScoreID = cp.ScoreID
	f.scores[scoreKey(score.ScoreTestID, score.ScoreStudentID)] = &cp
	return nil
}

func (f *fakeStore) DeactivateScoreAndAttempt(_ context.Context, orgID, scoreID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sc := range f.scores {
		if sc.ScoreID == scoreID && sc.ScoreOrganizationID == orgID {
			sc.ScoreIsActive = false
			for _, a := range f.attempts {
				if a.TestAttemptTestID == sc.ScoreTestID && a.TestAttemptStudentID == sc.ScoreStudentID {
					a.TestAttemptIsActive = false
				}
			}
			return nil
		}
	}
	return errs.New(errs.NotFoundInOrganization, "score not found")
}

type fakeEnrollment struct {
	enrolled map[string]bool
}

func (f *fakeEnrollment) IsStudentEnrolled(_ context.Context, _, classID, studentID uuid.UUID) (bool, error) {
	return f.enrolled[classID.String()+"|"+studentID.String()], nil
}

/* =========================================================
   FIXTURE
========================================================= */

type attemptFixture struct {
	store     *fakeStore
	svc       *AttemptService
	clock     *time.Time
	orgID     uuid.UUID
	classID   uuid.UUID
	testID    uuid.UUID
	studentID uuid.UUID
	student   helperAuth.Principal
	questions map[string]uuid.UUID // label → question id
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()

	fx := &attemptFixture{
		store:     newFakeStore(),
		orgID:     uuid.New(),
		classID:   uuid.New(),
		testID:    uuid.New(),
		studentID: uuid.New(),
		questions: map[string]uuid.UUID{},
	}

	fx.store.tests[fx.testID] = model.TestModel{
		TestID:              fx.testID,
		TestOrganizationID:  fx.orgID,
		TestClassID:         fx.classID,
		TestType:            model.TestTypeOnline,
		TestTotalMarks:      7,
		TestDurationMinutes: 30,
		TestIsActive:        true,
	}

	q1 := uuid.New()
	q2 := uuid.New()
	fx.questions["mcq"] = q1
	fx.questions["blank"] = q2
	fx.store.questions[fx.testID] = []model.QuestionModel{
		{
			QuestionID:             q1,
			QuestionOrganizationID: fx.orgID,
			QuestionTestID:         fx.testID,
			QuestionType:           model.QuestionTypeMCQ,
			QuestionMarks:          3,
			QuestionCorrectAnswer:  strPtr("B"),
		},
		{
			QuestionID:             q2,
			QuestionOrganizationID: fx.orgID,
			QuestionTestID:         fx.testID,
			QuestionType:           model.QuestionTypeFillInBlank,
			QuestionMarks:          2,
			QuestionCorrectAnswer:  strPtr("mitochondria"),
		},
	}

	enrollment := &fakeEnrollment{enrolled: map[string]bool{
		fx.classID.String() + "|" + fx.studentID.String(): true,
	}}

	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	fx.clock = &now

	fx.svc = NewAttemptService(fx.store, enrollment)
	fx.svc.Now = func() time.Time { return *fx.clock }

	fx.student = helperAuth.Principal{
		UserID:         uuid.New(),
		Role:           constants.RoleStudent,
		RoleID:         fx.studentID,
		OrganizationID: fx.orgID,
	}
	return fx
}

func (fx *attemptFixture) advance(d time.Duration) {
	*fx.clock = fx.clock.Add(d)
}

/* =========================================================
   TESTS
========================================================= */

func TestAttemptStartIsIdempotent(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	first, err := fx.svc.Start(ctx, fx.student, fx.testID)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if first.TestAttemptStatus != model.TestAttemptInProgress {
		t.Fatalf("status = %s, want in_progress", first.TestAttemptStatus)
	}

	second, err := fx.svc.Start(ctx, fx.student, fx.testID)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.TestAttemptID != first.TestAttemptID {
		t.Fatalf("resume created a new attempt: %s vs %s", second.TestAttemptID, first.TestAttemptID)
	}
}

func TestAttemptSubmitGradesAndCompletes(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.Start(ctx, fx.student, fx.testID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// 5 of 7 marks correct → 71%
	attempt, err := fx.svc.Submit(ctx, fx.student, fx.testID, map[uuid.UUID]string{
		fx.questions["mcq"]:   "B",
		fx.questions["blank"]: "mitochondria",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.TestAttemptStatus != model.TestAttemptCompleted {
		t.Fatalf("status = %s, want completed", attempt.TestAttemptStatus)
	}
	if attempt.TestAttemptScorePercent == nil || *attempt.TestAttemptScorePercent != 71 {
		t.Fatalf("percent = %v, want 71", attempt.TestAttemptScorePercent)
	}

	sc, err := fx.store.FindScore(ctx, fx.orgID, fx.testID, fx.studentID)
	if err != nil || sc == nil {
		t.Fatalf("score not persisted: %v", err)
	}
	if sc.ScorePercent != 71 || sc.ScoreObtainedMarks != 5 {
		t.Fatalf("score = %d%% / %v marks, want 71%% / 5", sc.ScorePercent, sc.ScoreObtainedMarks)
	}
}

func TestAttemptStartAfterSubmitIsRejected(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.Start(ctx, fx.student, fx.testID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := fx.svc.Submit(ctx, fx.student, fx.testID, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err := fx.svc.Start(ctx, fx.student, fx.testID)
	if !errs.IsKind(err, errs.AlreadySubmitted) {
		t.Fatalf("err = %v, want AlreadySubmitted", err)
	}
}

func TestAttemptSubmitTwiceIsRejected(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.Start(ctx, fx.student, fx.testID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := fx.svc.Submit(ctx, fx.student, fx.testID, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err := fx.svc.Submit(ctx, fx.student, fx.testID, nil)
	if !errs.IsKind(err, errs.NoActiveAttempt) {
		t.Fatalf("err = %v, want NoActiveAttempt", err)
	}
}

func TestAttemptSubmitWithoutStart(t *testing.T) {
	fx := newAttemptFixture(t)

	_, err := fx.svc.Submit(context.Background(), fx.student, fx.testID, nil)
	if !errs.IsKind(err, errs.NoActiveAttempt) {
		t.Fatalf("err = %v, want NoActiveAttempt", err)
	}
}

func TestAttemptExpiryIsADeadEnd(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	started, err := fx.svc.Start(ctx, fx.student, fx.testID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	fx.advance(31 * time.Minute)

	_, err = fx.svc.Submit(ctx, fx.student, fx.testID, map[uuid.UUID]string{
		fx.questions["mcq"]: "B",
	})
	if !errs.IsKind(err, errs.AttemptExpired) {
		t.Fatalf("submit err = %v, want AttemptExpired", err)
	}

	stored := fx.store.attempts[started.TestAttemptID]
	if stored.TestAttemptStatus != model.TestAttemptExpired {
		t.Fatalf("stored status = %s, want expired", stored.TestAttemptStatus)
	}

	// expired never resumes and never grades
	if _, err := fx.svc.Start(ctx, fx.student, fx.testID); !errs.IsKind(err, errs.AttemptExpired) {
		t.Fatalf("restart err = %v, want AttemptExpired", err)
	}
	if sc, _ := fx.store.FindScore(ctx, fx.orgID, fx.testID, fx.studentID); sc != nil {
		t.Fatalf("expired attempt produced a score: %+v", sc)
	}
}

func TestAttemptExactDeadlineStillSubmits(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.Start(ctx, fx.student, fx.testID); err != nil {
		t.Fatalf("start: %v", err)
	}
	fx.advance(30 * time.Minute) // exactly at the deadline, not past it

	if _, err := fx.svc.Submit(ctx, fx.student, fx.testID, nil); err != nil {
		t.Fatalf("submit at deadline: %v", err)
	}
}

func TestAttemptCrossTenantLooksAbsent(t *testing.T) {
	fx := newAttemptFixture(t)

	outsider := helperAuth.Principal{
		UserID:         uuid.New(),
		Role:           constants.RoleStudent,
		RoleID:         uuid.New(),
		OrganizationID: uuid.New(), // different organization
	}
	_, err := fx.svc.Start(context.Background(), outsider, fx.testID)
	if !errs.IsKind(err, errs.NotFoundInOrganization) {
		t.Fatalf("err = %v, want NotFoundInOrganization", err)
	}
}

func TestAttemptRequiresEnrollment(t *testing.T) {
	fx := newAttemptFixture(t)

	stranger := helperAuth.Principal{
		UserID:         uuid.New(),
		Role:           constants.RoleStudent,
		RoleID:         uuid.New(), // not on the roster
		OrganizationID: fx.orgID,
	}
	_, err := fx.svc.Start(context.Background(), stranger, fx.testID)
	if !errs.IsKind(err, errs.Forbidden) {
		t.Fatalf("err = %v, want Forbidden", err)
	}
}

func TestAttemptRejectsOfflineTest(t *testing.T) {
	fx := newAttemptFixture(t)

	offline := fx.store.tests[fx.testID]
	offline.TestType = model.TestTypeOffline
	fx.store.tests[fx.testID] = offline

	_, err := fx.svc.Start(context.Background(), fx.student, fx.testID)
	if !errs.IsKind(err, errs.ValidationError) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestAttemptConcurrentSubmitsKeepOneScore(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.Start(ctx, fx.student, fx.testID); err != nil {
		t.Fatalf("start: %v", err)
	}

	answers := map[uuid.UUID]string{fx.questions["mcq"]: "B"}
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.svc.Submit(ctx, fx.student, fx.testID, answers)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errs.IsKind(err, errs.NoActiveAttempt):
			losses++
		default:
			t.Fatalf("unexpected submit error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("wins=%d losses=%d, want exactly one of each", wins, losses)
	}

	fx.store.mu.Lock()
	defer fx.store.mu.Unlock()
	if len(fx.store.scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(fx.store.scores))
	}
}

func TestAttemptEvaluateFinalizesGrading(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	teacher := helperAuth.Principal{
		UserID:         uuid.New(),
		Role:           constants.RoleTeacher,
		RoleID:         uuid.New(),
		OrganizationID: fx.orgID,
	}

	// evaluation needs a submitted attempt first
	_, err := fx.svc.Evaluate(ctx, teacher, fx.testID, fx.studentID, 6)
	if !errs.IsKind(err, errs.NoActiveAttempt) {
		t.Fatalf("err = %v, want NoActiveAttempt", err)
	}

	if _, err := fx.svc.Start(ctx, fx.student, fx.testID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// not from in_progress either
	_, err = fx.svc.Evaluate(ctx, teacher, fx.testID, fx.studentID, 6)
	if !errs.IsKind(err, errs.ValidationError) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	if _, err := fx.svc.Submit(ctx, fx.student, fx.testID, map[uuid.UUID]string{
		fx.questions["mcq"]: "B",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	attempt, err := fx.svc.Evaluate(ctx, teacher, fx.testID, fx.studentID, 6)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if attempt.TestAttemptStatus != model.TestAttemptEvaluated {
		t.Fatalf("status = %s, want evaluated", attempt.TestAttemptStatus)
	}
	if *attempt.TestAttemptScorePercent != 86 { // round(6/7*100)
		t.Fatalf("percent = %d, want 86", *attempt.TestAttemptScorePercent)
	}

	// second evaluation is rejected
	if _, err := fx.svc.Evaluate(ctx, teacher, fx.testID, fx.studentID, 7); !errs.IsKind(err, errs.AlreadySubmitted) {
		t.Fatalf("err = %v, want AlreadySubmitted", err)
	}

	// score reflects the reviewed marks
	sc, _ := fx.store.FindScore(ctx, fx.orgID, fx.testID, fx.studentID)
	if sc == nil || sc.ScorePercent != 86 || sc.ScoreObtainedMarks != 6 {
		t.Fatalf("score = %+v, want 86%% / 6 marks", sc)
	}

	// evaluated attempts never restart
	if _, err := fx.svc.Start(ctx, fx.student, fx.testID); !errs.IsKind(err, errs.AlreadySubmitted) {
		t.Fatalf("restart err = %v, want AlreadySubmitted", err)
	}
}

func TestAttemptDuplicateInsertResumesSurvivor(t *testing.T) {
	fx := newAttemptFixture(t)
	ctx := context.Background()

	first, err := fx.svc.Start(ctx, fx.student, fx.testID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Force the insert path to race: direct insert returns the
	// duplicate sentinel and Start must fall back to the survivor.
	err = fx.store.InsertAttempt(ctx, &model.TestAttemptModel{
		TestAttemptOrganizationID: fx.orgID,
		TestAttemptTestID:         fx.testID,
		TestAttemptStudentID:      fx.studentID,
	})
	if err != ErrDuplicateAttempt {
		t.Fatalf("insert err = %v, want ErrDuplicateAttempt", err)
	}

	again, err := fx.svc.Start(ctx, fx.student, fx.testID)
	if err != nil {
		t.Fatalf("start after race: %v", err)
	}
	if again.TestAttemptID != first.TestAttemptID {
		t.Fatalf("survivor mismatch: %s vs %s", again.TestAttemptID, first.TestAttemptID)
	}
}
