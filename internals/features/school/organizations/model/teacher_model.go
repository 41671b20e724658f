// file: internals/features/school/organizations/model/teacher_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type TeacherModel struct {
	TeacherID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:teacher_id" json:"teacher_id"`

	TeacherOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:teacher_organization_id" json:"teacher_organization_id"`

	TeacherName  string `gorm:"type:varchar(120);not null;column:teacher_name" json:"teacher_name"`
	TeacherEmail string `gorm:"type:varchar(120);not null;column:teacher_email" json:"teacher_email"`

	TeacherIsActive bool `gorm:"not null;default:true;column:teacher_is_active" json:"teacher_is_active"`

	TeacherCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:teacher_created_at" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:teacher_updated_at" json:"teacher_updated_at"`
}

func (TeacherModel) TableName() string     { return "teachers" }
func (TeacherModel) TenantColumn() string  { return "teacher_organization_id" }
func (TeacherModel) ActiveColumn() string  { return "teacher_is_active" }
