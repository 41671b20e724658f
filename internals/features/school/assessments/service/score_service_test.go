// file: internals/features/school/assessments/service/score_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/assessments/model"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

func newScoreFixture(t *testing.T) (*fakeStore, *ScoreService, helperAuth.Principal, uuid.UUID) {
	t.Helper()

	store := newFakeStore()
	orgID := uuid.New()
	testID := uuid.New()
	store.tests[testID] = model.TestModel{
		TestID:             testID,
		TestOrganizationID: orgID,
		TestClassID:        uuid.New(),
		TestType:           model.TestTypeOffline,
		TestTotalMarks:     50,
		TestIsActive:       true,
	}

	svc := NewScoreService(store)
	svc.Now = func() time.Time { return time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC) }

	admin := helperAuth.Principal{
		UserID:         uuid.New(),
		Role:           constants.RoleAdmin,
		OrganizationID: orgID,
	}
	admin.RoleID = admin.OrganizationID
	return store, svc, admin, testID
}

func TestRecordOfflineScore(t *testing.T) {
	_, svc, admin, testID := newScoreFixture(t)
	ctx := context.Background()
	studentID := uuid.New()

	sc, err := svc.RecordOfflineScore(ctx, admin, OfflineScoreInput{
		TestID:        testID,
		StudentID:     studentID,
		ObtainedMarks: 35,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if sc.ScorePercent != 70 {
		t.Fatalf("percent = %d, want 70", sc.ScorePercent)
	}

	// second entry for the same pair is a duplicate
	_, err = svc.RecordOfflineScore(ctx, admin, OfflineScoreInput{
		TestID:        testID,
		StudentID:     studentID,
		ObtainedMarks: 40,
	})
	if !errs.IsKind(err, errs.DuplicateEntry) {
		t.Fatalf("err = %v, want DuplicateEntry", err)
	}
}

func TestRecordOfflineScoreBounds(t *testing.T) {
	_, svc, admin, testID := newScoreFixture(t)
	ctx := context.Background()

	_, err := svc.RecordOfflineScore(ctx, admin, OfflineScoreInput{
		TestID:        testID,
		StudentID:     uuid.New(),
		ObtainedMarks: 51, // above total
	})
	if !errs.IsKind(err, errs.ValidationError) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestRecordOfflineScoreRejectsOnlineTest(t *testing.T) {
	store, svc, admin, testID := newScoreFixture(t)

	online := store.tests[testID]
	online.TestType = model.TestTypeOnline
	store.tests[testID] = online

	_, err := svc.RecordOfflineScore(context.Background(), admin, OfflineScoreInput{
		TestID:        testID,
		StudentID:     uuid.New(),
		ObtainedMarks: 10,
	})
	if !errs.IsKind(err, errs.ValidationError) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestRecordOfflineScoreBatchSkipsDuplicates(t *testing.T) {
	_, svc, admin, testID := newScoreFixture(t)
	ctx := context.Background()

	s1 := uuid.New()
	s2 := uuid.New()

	if _, err := svc.RecordOfflineScore(ctx, admin, OfflineScoreInput{
		TestID: testID, StudentID: s1, ObtainedMarks: 20,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	recorded, err := svc.RecordOfflineScoreBatch(ctx, admin, testID, []OfflineScoreInput{
		{StudentID: s1, ObtainedMarks: 30}, // duplicate, skipped
		{StudentID: s2, ObtainedMarks: 45},
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(recorded) != 1 || recorded[0].ScoreStudentID != s2 {
		t.Fatalf("recorded = %+v, want only student %s", recorded, s2)
	}
}

func TestDeleteScoreCascades(t *testing.T) {
	store, svc, admin, testID := newScoreFixture(t)
	ctx := context.Background()
	studentID := uuid.New()

	sc, err := svc.RecordOfflineScore(ctx, admin, OfflineScoreInput{
		TestID: testID, StudentID: studentID, ObtainedMarks: 25,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.DeleteScore(ctx, admin, sc.ScoreID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := store.FindScore(ctx, admin.OrganizationID, testID, studentID); got != nil {
		t.Fatalf("score still active after delete: %+v", got)
	}
}
