// file: internals/features/school/assessments/service/analytics_service.go
package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/assessments/model"
	"sekolahku_backend/internals/features/school/tenancy"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* =========================================================
   LEADERBOARD & ANALYTICS
   All aggregation is computed over active Scores fetched through
   the tenant guard — the leaderboard is scoped exactly like every
   other read.
========================================================= */

type LeaderboardEntry struct {
	StudentID   uuid.UUID `json:"student_id"`
	Average     float64   `json:"average"`
	Submissions int       `json:"submissions"`
	Rank        int       `json:"rank"`
}

type TimeSeriesPoint struct {
	Percent        int       `json:"percent"`
	SubmissionDate time.Time `json:"submission_date"`
}

/* ---------- pure aggregation ---------- */

// BuildLeaderboard groups scores by student (first-appearance
// order), averages each student's percentages and ranks by
// descending average. Equal averages keep their original relative
// order — the sort is stable and no further tie-break applies.
func BuildLeaderboard(scores []model.ScoreModel) []LeaderboardEntry {
	order := make([]uuid.UUID, 0)
	sums := map[uuid.UUID]float64{}
	counts := map[uuid.UUID]int{}

	for _, sc := range scores {
		if _, seen := sums[sc.ScoreStudentID]; !seen {
			order = append(order, sc.ScoreStudentID)
		}
		sums[sc.ScoreStudentID] += float64(sc.ScorePercent)
		counts[sc.ScoreStudentID]++
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, LeaderboardEntry{
			StudentID:   id,
			Average:     sums[id] / float64(counts[id]),
			Submissions: counts[id],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Average > entries[j].Average
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// ClassAverage is the mean percentage over all given scores.
func ClassAverage(scores []model.ScoreModel) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, sc := range scores {
		sum += float64(sc.ScorePercent)
	}
	return sum / float64(len(scores))
}

// GradeBucket maps a rounded percentage to its letter grade.
func GradeBucket(percent int) string {
	switch {
	case percent >= 90:
		return "A"
	case percent >= 80:
		return "B"
	case percent >= 70:
		return "C"
	case percent >= 60:
		return "D"
	default:
		return "F"
	}
}

// BuildGradeDistribution counts scores per letter grade.
func BuildGradeDistribution(scores []model.ScoreModel) map[string]int {
	dist := map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "F": 0}
	for _, sc := range scores {
		dist[GradeBucket(sc.ScorePercent)]++
	}
	return dist
}

// AcademicYearWindow is the default reporting period: June 1
// through May 31. If now's month is June or later the year starts
// in now's calendar year, otherwise it started the previous one.
func AcademicYearWindow(now time.Time) (time.Time, time.Time) {
	year := now.Year()
	if now.Month() < time.June {
		year--
	}
	start := time.Date(year, time.June, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(year+1, time.May, 31, 23, 59, 59, 0, now.Location())
	return start, end
}

/* ---------- service ---------- */

type AnalyticsService struct {
	Store AssessmentStore

	Now func() time.Time
}

func NewAnalyticsService(store AssessmentStore) *AnalyticsService {
	return &AnalyticsService{Store: store, Now: time.Now}
}

func (s *AnalyticsService) window(from, to *time.Time) (time.Time, time.Time) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	defFrom, defTo := AcademicYearWindow(now)
	if from != nil {
		defFrom = *from
	}
	if to != nil {
		defTo = *to
	}
	return defFrom, defTo
}

func (s *AnalyticsService) ClassLeaderboard(ctx context.Context, p helperAuth.Principal, classID uuid.UUID, from, to *time.Time) ([]LeaderboardEntry, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	f, t := s.window(from, to)
	scores, err := s.Store.FindClassScores(ctx, orgID, classID, f, t)
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(scores), nil
}

func (s *AnalyticsService) ClassAverage(ctx context.Context, p helperAuth.Principal, classID uuid.UUID, from, to *time.Time) (float64, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return 0, err
	}
	f, t := s.window(from, to)
	scores, err := s.Store.FindClassScores(ctx, orgID, classID, f, t)
	if err != nil {
		return 0, err
	}
	// round to 2 decimals for presentation stability
	return math.Round(ClassAverage(scores)*100) / 100, nil
}

func (s *AnalyticsService) GradeDistribution(ctx context.Context, p helperAuth.Principal, from, to *time.Time) (map[string]int, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	f, t := s.window(from, to)
	scores, err := s.Store.FindOrganizationScores(ctx, orgID, f, t)
	if err != nil {
		return nil, err
	}
	return BuildGradeDistribution(scores), nil
}

// StudentTimeSeries returns the student's scores ordered by
// submission date ascending, for trend charts.
func (s *AnalyticsService) StudentTimeSeries(ctx context.Context, p helperAuth.Principal, studentID uuid.UUID, from, to *time.Time) ([]TimeSeriesPoint, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	f, t := s.window(from, to)
	scores, err := s.Store.FindStudentScores(ctx, orgID, studentID, f, t)
	if err != nil {
		return nil, err
	}
	points := make([]TimeSeriesPoint, 0, len(scores))
	for _, sc := range scores {
		points = append(points, TimeSeriesPoint{
			Percent:        sc.ScorePercent,
			SubmissionDate: sc.ScoreSubmissionDate,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].SubmissionDate.Before(points[j].SubmissionDate)
	})
	return points, nil
}
