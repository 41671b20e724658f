// file: internals/features/school/schedules/service/schedule_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/schedules/model"
)

func slot(teacherID uuid.UUID, day int, start, end, room string) model.ScheduleModel {
	return model.ScheduleModel{
		ScheduleID:        uuid.New(),
		ScheduleTeacherID: teacherID,
		ScheduleDayOfWeek: day,
		ScheduleStartTime: start,
		ScheduleEndTime:   end,
		ScheduleRoom:      room,
	}
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"back to back", "09:00", "10:00", "10:00", "11:00", false},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := model.Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestFindConflictsChecksSidesIndependently(t *testing.T) {
	t1 := uuid.New()
	t2 := uuid.New()

	monday := 1
	existing := []model.ScheduleModel{
		slot(t1, monday, "09:00", "10:00", "101"),
	}

	t.Run("same room different teacher is a room conflict only", func(t *testing.T) {
		cand := slot(t2, monday, "09:30", "10:30", "101")
		conflicts := FindConflicts(existing, &cand)
		if len(conflicts) != 1 || conflicts[0].Side != ConflictRoom {
			t.Fatalf("conflicts = %+v, want one room conflict", conflicts)
		}
	})

	t.Run("same teacher different room is a teacher conflict only", func(t *testing.T) {
		cand := slot(t1, monday, "09:30", "10:30", "202")
		conflicts := FindConflicts(existing, &cand)
		if len(conflicts) != 1 || conflicts[0].Side != ConflictTeacher {
			t.Fatalf("conflicts = %+v, want one teacher conflict", conflicts)
		}
	})

	t.Run("same teacher and room conflicts on both sides", func(t *testing.T) {
		cand := slot(t1, monday, "09:30", "10:30", "101")
		conflicts := FindConflicts(existing, &cand)
		if len(conflicts) != 2 {
			t.Fatalf("conflicts = %+v, want both sides", conflicts)
		}
	})

	t.Run("different day never conflicts", func(t *testing.T) {
		cand := slot(t1, monday+1, "09:00", "10:00", "101")
		if conflicts := FindConflicts(existing, &cand); len(conflicts) != 0 {
			t.Fatalf("conflicts = %+v, want none", conflicts)
		}
	})

	t.Run("back to back never conflicts", func(t *testing.T) {
		cand := slot(t1, monday, "10:00", "11:00", "101")
		if conflicts := FindConflicts(existing, &cand); len(conflicts) != 0 {
			t.Fatalf("conflicts = %+v, want none", conflicts)
		}
	})

	t.Run("a slot never conflicts with itself on update", func(t *testing.T) {
		cand := existing[0]
		if conflicts := FindConflicts(existing, &cand); len(conflicts) != 0 {
			t.Fatalf("conflicts = %+v, want none", conflicts)
		}
	})
}

func TestScheduleValidate(t *testing.T) {
	base := func() model.ScheduleModel {
		return slot(uuid.New(), 1, "09:00", "10:00", "101")
	}

	t.Run("valid slot passes", func(t *testing.T) {
		s := base()
		if err := s.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	t.Run("day out of range", func(t *testing.T) {
		s := base()
		s.ScheduleDayOfWeek = 7
		if err := s.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("bad time format", func(t *testing.T) {
		s := base()
		s.ScheduleStartTime = "9:00"
		if err := s.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("end before start", func(t *testing.T) {
		s := base()
		s.ScheduleEndTime = "08:00"
		if err := s.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("room required", func(t *testing.T) {
		s := base()
		s.ScheduleRoom = ""
		if err := s.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
}
