// file: internals/features/school/organizations/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	StudentOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:student_organization_id" json:"student_organization_id"`

	StudentName  string `gorm:"type:varchar(120);not null;column:student_name" json:"student_name"`
	StudentEmail string `gorm:"type:varchar(120);not null;column:student_email" json:"student_email"`

	StudentIsActive bool `gorm:"not null;default:true;column:student_is_active" json:"student_is_active"`

	StudentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
}

func (StudentModel) TableName() string    { return "students" }
func (StudentModel) TenantColumn() string { return "student_organization_id" }
func (StudentModel) ActiveColumn() string { return "student_is_active" }
