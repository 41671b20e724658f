// file: internals/features/school/announcements/model/announcement_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type AnnouncementModel struct {
	AnnouncementID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:announcement_id" json:"announcement_id"`

	AnnouncementOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:announcement_organization_id" json:"announcement_organization_id"`

	AnnouncementTitle string `gorm:"type:varchar(160);not null;column:announcement_title" json:"announcement_title"`
	AnnouncementBody  string `gorm:"type:text;not null;column:announcement_body" json:"announcement_body"`

	// Past this instant the sweeper retires the row.
	AnnouncementVisibleUntil time.Time `gorm:"type:timestamptz;not null;column:announcement_visible_until" json:"announcement_visible_until"`

	AnnouncementIsActive bool `gorm:"not null;default:true;column:announcement_is_active" json:"announcement_is_active"`

	AnnouncementCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:announcement_created_at" json:"announcement_created_at"`
	AnnouncementUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:announcement_updated_at" json:"announcement_updated_at"`
}

func (AnnouncementModel) TableName() string    { return "announcements" }
func (AnnouncementModel) TenantColumn() string { return "announcement_organization_id" }
func (AnnouncementModel) ActiveColumn() string { return "announcement_is_active" }
