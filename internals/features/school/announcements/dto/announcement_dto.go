// file: internals/features/school/announcements/dto/announcement_dto.go
package dto

import "time"

type AnnouncementRequest struct {
	Title        string    `json:"title" validate:"required,min=3,max=160"`
	Body         string    `json:"body" validate:"required"`
	VisibleUntil time.Time `json:"visible_until" validate:"required"`
}
