// file: internals/features/school/assessments/service/analytics_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/assessments/model"
)

func score(studentID uuid.UUID, percent int) model.ScoreModel {
	return model.ScoreModel{
		ScoreID:        uuid.New(),
		ScoreStudentID: studentID,
		ScorePercent:   percent,
	}
}

func TestBuildLeaderboard(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()

	entries := BuildLeaderboard([]model.ScoreModel{
		score(s1, 80),
		score(s2, 95),
		score(s1, 90),
	})

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].StudentID != s2 || entries[0].Average != 95 || entries[0].Rank != 1 {
		t.Fatalf("first entry = %+v, want student %s avg 95 rank 1", entries[0], s2)
	}
	if entries[1].StudentID != s1 || entries[1].Average != 85 || entries[1].Rank != 2 {
		t.Fatalf("second entry = %+v, want student %s avg 85 rank 2", entries[1], s1)
	}
	if entries[1].Submissions != 2 {
		t.Fatalf("submissions = %d, want 2", entries[1].Submissions)
	}
}

func TestBuildLeaderboardTiesKeepOrder(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()

	entries := BuildLeaderboard([]model.ScoreModel{
		score(s1, 90),
		score(s2, 90),
	})
	if entries[0].StudentID != s1 || entries[1].StudentID != s2 {
		t.Fatalf("tied students reordered: %+v", entries)
	}
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	if entries := BuildLeaderboard(nil); len(entries) != 0 {
		t.Fatalf("got %d entries from no scores", len(entries))
	}
}

func TestGradeBuckets(t *testing.T) {
	cases := map[int]string{
		100: "A", 95: "A", 90: "A",
		89: "B", 82: "B", 80: "B",
		79: "C", 71: "C", 70: "C",
		69: "D", 65: "D", 60: "D",
		59: "F", 40: "F", 0: "F",
	}
	for percent, want := range cases {
		if got := GradeBucket(percent); got != want {
			t.Errorf("GradeBucket(%d) = %q, want %q", percent, got, want)
		}
	}
}

func TestBuildGradeDistribution(t *testing.T) {
	var scores []model.ScoreModel
	for _, p := range []int{95, 82, 71, 65, 40} {
		scores = append(scores, score(uuid.New(), p))
	}
	dist := BuildGradeDistribution(scores)
	for grade, want := range map[string]int{"A": 1, "B": 1, "C": 1, "D": 1, "F": 1} {
		if dist[grade] != want {
			t.Errorf("dist[%s] = %d, want %d", grade, dist[grade], want)
		}
	}
}

func TestClassAverage(t *testing.T) {
	scores := []model.ScoreModel{
		score(uuid.New(), 80),
		score(uuid.New(), 90),
	}
	if got := ClassAverage(scores); got != 85 {
		t.Fatalf("average = %v, want 85", got)
	}
	if got := ClassAverage(nil); got != 0 {
		t.Fatalf("empty average = %v, want 0", got)
	}
}

func TestAcademicYearWindow(t *testing.T) {
	cases := []struct {
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			now:       time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			wantStart: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			now:       time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 5, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			// June 1 itself starts the new year
			now:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 5, 31, 23, 59, 59, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		start, end := AcademicYearWindow(tc.now)
		if !start.Equal(tc.wantStart) || !end.Equal(tc.wantEnd) {
			t.Errorf("AcademicYearWindow(%s) = (%s, %s), want (%s, %s)",
				tc.now, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}
