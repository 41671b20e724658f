// file: internals/features/school/schedules/model/schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/helpers/errs"
)

/* =========================================================
   SCHEDULE
   Weekly recurring slot. Times are "HH:MM" strings compared
   lexically (zero-padded 24h), which matches chronological order.
========================================================= */

type ScheduleModel struct {
	ScheduleID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:schedule_id" json:"schedule_id"`

	ScheduleOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:schedule_organization_id" json:"schedule_organization_id"`

	ScheduleClassID   uuid.UUID `gorm:"type:uuid;not null;column:schedule_class_id" json:"schedule_class_id"`
	ScheduleTeacherID uuid.UUID `gorm:"type:uuid;not null;index;column:schedule_teacher_id" json:"schedule_teacher_id"`

	// 0 = Sunday … 6 = Saturday (time.Weekday numbering)
	ScheduleDayOfWeek int `gorm:"not null;column:schedule_day_of_week" json:"schedule_day_of_week"`

	ScheduleStartTime string `gorm:"type:varchar(5);not null;column:schedule_start_time" json:"schedule_start_time"`
	ScheduleEndTime   string `gorm:"type:varchar(5);not null;column:schedule_end_time" json:"schedule_end_time"`

	ScheduleRoom string `gorm:"type:varchar(60);not null;index;column:schedule_room" json:"schedule_room"`

	ScheduleIsActive bool `gorm:"not null;default:true;column:schedule_is_active" json:"schedule_is_active"`

	ScheduleCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:schedule_created_at" json:"schedule_created_at"`
	ScheduleUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:schedule_updated_at" json:"schedule_updated_at"`
}

func (ScheduleModel) TableName() string    { return "schedules" }
func (ScheduleModel) TenantColumn() string { return "schedule_organization_id" }
func (ScheduleModel) ActiveColumn() string { return "schedule_is_active" }

// ValidHHMM accepts zero-padded 24-hour "HH:MM".
func ValidHHMM(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	return hh < 24 && mm < 60
}

// Validate checks the slot's shape before any conflict scan.
func (m *ScheduleModel) Validate() error {
	if m.ScheduleDayOfWeek < 0 || m.ScheduleDayOfWeek > 6 {
		return errs.New(errs.ValidationError, "day_of_week must be 0 (Sunday) through 6 (Saturday)")
	}
	if !ValidHHMM(m.ScheduleStartTime) || !ValidHHMM(m.ScheduleEndTime) {
		return errs.New(errs.ValidationError, "start_time and end_time must be HH:MM")
	}
	if m.ScheduleEndTime <= m.ScheduleStartTime {
		return errs.New(errs.ValidationError, "end_time must be after start_time")
	}
	if m.ScheduleRoom == "" {
		return errs.New(errs.ValidationError, "room is required")
	}
	return nil
}

// Overlaps is the half-open interval test used by the conflict
// detector: existing.start < candidate.end AND existing.end >
// candidate.start. Back-to-back slots do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}
