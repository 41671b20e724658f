// file: internals/features/school/classes/dto/class_dto.go
package dto

import "github.com/google/uuid"

type CreateClassRequest struct {
	Name      string    `json:"name" validate:"required,min=2,max=120"`
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
}

type EnrollStudentRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}
