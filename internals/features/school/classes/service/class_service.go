// file: internals/features/school/classes/service/class_service.go
package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/classes/model"
	"sekolahku_backend/internals/features/school/tenancy"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

/* =========================================================
   CLASS SERVICE
   Class CRUD plus the enrollment roster. Also the home of the
   enrollment check the assessment feature depends on.
========================================================= */

type ClassService struct {
	DB *gorm.DB
}

func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{DB: db}
}

type CreateClassInput struct {
	Name      string
	TeacherID uuid.UUID
}

func (s *ClassService) CreateClass(ctx context.Context, p helperAuth.Principal, in CreateClassInput) (*model.ClassModel, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	cls := &model.ClassModel{
		ClassOrganizationID: orgID,
		ClassTeacherID:      in.TeacherID,
		ClassName:           in.Name,
		ClassIsActive:       true,
	}
	if err := s.DB.WithContext(ctx).Create(cls).Error; err != nil {
		return nil, err
	}
	log.Printf("[ClassService] class created. class_id=%s org_id=%s", cls.ClassID, orgID)
	return cls, nil
}

func (s *ClassService) GetClass(ctx context.Context, p helperAuth.Principal, classID uuid.UUID) (*model.ClassModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.ClassModel{})
	if err != nil {
		return nil, err
	}
	var cls model.ClassModel
	err = scoped.Where("class_id = ?", classID).First(&cls).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.New(errs.NotFoundInOrganization, "class not found")
	}
	if err != nil {
		return nil, err
	}
	return &cls, nil
}

func (s *ClassService) ListClasses(ctx context.Context, p helperAuth.Principal) ([]model.ClassModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.ClassModel{})
	if err != nil {
		return nil, err
	}
	var out []model.ClassModel
	err = scoped.Order("class_created_at ASC").Find(&out).Error
	return out, err
}

// EnrollStudent adds a student to a class roster. A student who is
// already on the roster is rejected with DuplicateEntry — the
// unique index backs this up under concurrent enrollments.
func (s *ClassService) EnrollStudent(ctx context.Context, p helperAuth.Principal, classID, studentID uuid.UUID) (*model.ClassStudentModel, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	// The class must exist in this organization first.
	if _, err := s.GetClass(ctx, p, classID); err != nil {
		return nil, err
	}

	row := &model.ClassStudentModel{
		ClassStudentOrganizationID: orgID,
		ClassStudentClassID:        classID,
		ClassStudentStudentID:      studentID,
		ClassStudentIsActive:       true,
	}
	err = s.DB.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errs.New(errs.DuplicateEntry, "student is already enrolled in this class")
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *ClassService) UnenrollStudent(ctx context.Context, p helperAuth.Principal, classID, studentID uuid.UUID) error {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).
		Model(&model.ClassStudentModel{}).
		Where("class_student_organization_id = ? AND class_student_class_id = ? AND class_student_student_id = ? AND class_student_is_active = TRUE",
			orgID, classID, studentID).
		Update("class_student_is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.New(errs.NotFoundInOrganization, "enrollment not found")
	}
	return nil
}

// IsStudentEnrolled is the check the assessment feature calls
// before letting a student start an attempt.
func (s *ClassService) IsStudentEnrolled(ctx context.Context, orgID, classID, studentID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&model.ClassStudentModel{}).
		Where("class_student_organization_id = ? AND class_student_class_id = ? AND class_student_student_id = ? AND class_student_is_active = TRUE",
			orgID, classID, studentID).
		Count(&n).Error
	return n > 0, err
}

func (s *ClassService) ListRoster(ctx context.Context, p helperAuth.Principal, classID uuid.UUID) ([]model.ClassStudentModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.ClassStudentModel{})
	if err != nil {
		return nil, err
	}
	var out []model.ClassStudentModel
	err = scoped.Where("class_student_class_id = ?", classID).
		Order("class_student_created_at ASC").
		Find(&out).Error
	return out, err
}
