// file: internals/features/school/schedules/dto/schedule_dto.go
package dto

import "github.com/google/uuid"

type ScheduleRequest struct {
	ClassID   uuid.UUID `json:"class_id" validate:"required"`
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
	DayOfWeek int       `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime string    `json:"start_time" validate:"required,len=5"`
	EndTime   string    `json:"end_time" validate:"required,len=5"`
	Room      string    `json:"room" validate:"required,max=60"`
}
