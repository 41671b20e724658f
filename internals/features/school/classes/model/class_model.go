// file: internals/features/school/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ClassModel struct {
	ClassID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`

	ClassOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:class_organization_id" json:"class_organization_id"`
	ClassTeacherID      uuid.UUID `gorm:"type:uuid;not null;column:class_teacher_id" json:"class_teacher_id"`

	ClassName string `gorm:"type:varchar(120);not null;column:class_name" json:"class_name"`

	ClassIsActive bool `gorm:"not null;default:true;column:class_is_active" json:"class_is_active"`

	ClassCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:class_updated_at" json:"class_updated_at"`
}

func (ClassModel) TableName() string    { return "classes" }
func (ClassModel) TenantColumn() string { return "class_organization_id" }
func (ClassModel) ActiveColumn() string { return "class_is_active" }

/* =========================================================
   ENROLLMENT
   1 row = 1 student in 1 class. The unique index keeps a
   student from appearing twice in the same class.
========================================================= */

type ClassStudentModel struct {
	ClassStudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_student_id" json:"class_student_id"`

	ClassStudentOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:class_student_organization_id" json:"class_student_organization_id"`

	ClassStudentClassID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_class_students_class_student;column:class_student_class_id" json:"class_student_class_id"`
	ClassStudentStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_class_students_class_student;column:class_student_student_id" json:"class_student_student_id"`

	ClassStudentIsActive bool `gorm:"not null;default:true;column:class_student_is_active" json:"class_student_is_active"`

	ClassStudentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:class_student_created_at" json:"class_student_created_at"`
}

func (ClassStudentModel) TableName() string    { return "class_students" }
func (ClassStudentModel) TenantColumn() string { return "class_student_organization_id" }
func (ClassStudentModel) ActiveColumn() string { return "class_student_is_active" }
