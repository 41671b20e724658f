// file: internals/features/school/schedules/service/schedule_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/schedules/model"
	"sekolahku_backend/internals/features/school/tenancy"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

/* =========================================================
   SCHEDULE SERVICE
   Weekly slot CRUD with conflict detection. Teacher and room
   double-booking are independent checks; a slot can fail one,
   the other, or both, and the error names each side that failed.
========================================================= */

// ConflictSide names which resource a clash was found on.
type ConflictSide string

const (
	ConflictTeacher ConflictSide = "teacher"
	ConflictRoom    ConflictSide = "room"
)

type Conflict struct {
	Side     ConflictSide        `json:"side"`
	Existing model.ScheduleModel `json:"existing"`
}

type ScheduleService struct {
	DB *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{DB: db}
}

// FindConflicts scans the candidate's day for active slots that
// overlap it on the same teacher or the same room, excluding the
// candidate's own row (so updates don't conflict with themselves).
func FindConflicts(existing []model.ScheduleModel, candidate *model.ScheduleModel) []Conflict {
	var out []Conflict
	for _, sl := range existing {
		if sl.ScheduleID == candidate.ScheduleID {
			continue
		}
		if sl.ScheduleDayOfWeek != candidate.ScheduleDayOfWeek {
			continue
		}
		if !model.Overlaps(sl.ScheduleStartTime, sl.ScheduleEndTime, candidate.ScheduleStartTime, candidate.ScheduleEndTime) {
			continue
		}
		if sl.ScheduleTeacherID == candidate.ScheduleTeacherID {
			out = append(out, Conflict{Side: ConflictTeacher, Existing: sl})
		}
		if sl.ScheduleRoom == candidate.ScheduleRoom {
			out = append(out, Conflict{Side: ConflictRoom, Existing: sl})
		}
	}
	return out
}

func conflictError(conflicts []Conflict) error {
	seen := map[ConflictSide]bool{}
	var sides []string
	for _, c := range conflicts {
		if !seen[c.Side] {
			seen[c.Side] = true
			sides = append(sides, string(c.Side))
		}
	}
	return errs.Newf(errs.ScheduleConflict, "schedule conflicts with an existing slot (%s)", strings.Join(sides, ", "))
}

// daySlots loads every active slot in the organization on the
// candidate's weekday that involves its teacher or its room.
func (s *ScheduleService) daySlots(ctx context.Context, p helperAuth.Principal, candidate *model.ScheduleModel) ([]model.ScheduleModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.ScheduleModel{})
	if err != nil {
		return nil, err
	}
	var out []model.ScheduleModel
	err = scoped.
		Where("schedule_day_of_week = ?", candidate.ScheduleDayOfWeek).
		Where("schedule_teacher_id = ? OR schedule_room = ?", candidate.ScheduleTeacherID, candidate.ScheduleRoom).
		Find(&out).Error
	return out, err
}

type ScheduleInput struct {
	ClassID   uuid.UUID
	TeacherID uuid.UUID
	DayOfWeek int
	StartTime string
	EndTime   string
	Room      string
}

func (s *ScheduleService) Create(ctx context.Context, p helperAuth.Principal, in ScheduleInput) (*model.ScheduleModel, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	slot := &model.ScheduleModel{
		ScheduleOrganizationID: orgID,
		ScheduleClassID:        in.ClassID,
		ScheduleTeacherID:      in.TeacherID,
		ScheduleDayOfWeek:      in.DayOfWeek,
		ScheduleStartTime:      in.StartTime,
		ScheduleEndTime:        in.EndTime,
		ScheduleRoom:           in.Room,
		ScheduleIsActive:       true,
	}
	if err := slot.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.daySlots(ctx, p, slot)
	if err != nil {
		return nil, err
	}
	if conflicts := FindConflicts(existing, slot); len(conflicts) > 0 {
		return nil, conflictError(conflicts)
	}

	if err := s.DB.WithContext(ctx).Create(slot).Error; err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *ScheduleService) Update(ctx context.Context, p helperAuth.Principal, scheduleID uuid.UUID, in ScheduleInput) (*model.ScheduleModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.ScheduleModel{})
	if err != nil {
		return nil, err
	}
	var slot model.ScheduleModel
	err = scoped.Where("schedule_id = ?", scheduleID).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.New(errs.NotFoundInOrganization, "schedule not found")
	}
	if err != nil {
		return nil, err
	}

	slot.ScheduleClassID = in.ClassID
	slot.ScheduleTeacherID = in.TeacherID
	slot.ScheduleDayOfWeek = in.DayOfWeek
	slot.ScheduleStartTime = in.StartTime
	slot.ScheduleEndTime = in.EndTime
	slot.ScheduleRoom = in.Room
	if err := slot.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.daySlots(ctx, p, &slot)
	if err != nil {
		return nil, err
	}
	if conflicts := FindConflicts(existing, &slot); len(conflicts) > 0 {
		return nil, conflictError(conflicts)
	}

	if err := s.DB.WithContext(ctx).Save(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *ScheduleService) Delete(ctx context.Context, p helperAuth.Principal, scheduleID uuid.UUID) error {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.ScheduleModel{})
	if err != nil {
		return err
	}
	res := scoped.Model(&model.ScheduleModel{}).
		Where("schedule_id = ?", scheduleID).
		Update("schedule_is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.New(errs.NotFoundInOrganization, "schedule not found")
	}
	return nil
}

func (s *ScheduleService) ListByClass(ctx context.Context, p helperAuth.Principal, classID uuid.UUID) ([]model.ScheduleModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.ScheduleModel{})
	if err != nil {
		return nil, err
	}
	var out []model.ScheduleModel
	err = scoped.Where("schedule_class_id = ?", classID).
		Order("schedule_day_of_week ASC, schedule_start_time ASC").
		Find(&out).Error
	return out, err
}

func (s *ScheduleService) ListByTeacher(ctx context.Context, p helperAuth.Principal, teacherID uuid.UUID) ([]model.ScheduleModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.ScheduleModel{})
	if err != nil {
		return nil, err
	}
	var out []model.ScheduleModel
	err = scoped.Where("schedule_teacher_id = ?", teacherID).
		Order("schedule_day_of_week ASC, schedule_start_time ASC").
		Find(&out).Error
	return out, err
}
