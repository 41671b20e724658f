// file: internals/features/school/organizations/service/organization_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	announcementModel "sekolahku_backend/internals/features/school/announcements/model"
	assessmentModel "sekolahku_backend/internals/features/school/assessments/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	"sekolahku_backend/internals/features/school/organizations/model"
	scheduleModel "sekolahku_backend/internals/features/school/schedules/model"
	"sekolahku_backend/internals/features/school/tenancy"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

/* =========================================================
   ORGANIZATION SERVICE
   Tenant lifecycle: registration, login, member (teacher/student)
   provisioning, and the full-tenant cascade delete.
========================================================= */

type OrganizationService struct {
	DB *gorm.DB
}

func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{DB: db}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new organization (tenant root). The email is
// globally unique across tenants.
func (s *OrganizationService) Register(ctx context.Context, in RegisterInput) (*model.OrganizationModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	org := &model.OrganizationModel{
		OrganizationName:         in.Name,
		OrganizationEmail:        in.Email,
		OrganizationPasswordHash: string(hash),
		OrganizationIsActive:     true,
	}
	err = s.DB.WithContext(ctx).Create(org).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errs.New(errs.DuplicateEntry, "an organization with this email already exists")
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[OrganizationService] organization registered. org_id=%s", org.OrganizationID)
	return org, nil
}

// Login verifies credentials and issues the access token whose
// claims the auth middleware later copies into request locals.
func (s *OrganizationService) Login(ctx context.Context, email, password string) (string, *model.OrganizationModel, error) {
	var org model.OrganizationModel
	err := s.DB.WithContext(ctx).
		Where("organization_email = ? AND organization_is_active = TRUE", email).
		First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, errs.New(errs.Unauthenticated, "invalid email or password")
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(org.OrganizationPasswordHash), []byte(password)) != nil {
		return "", nil, errs.New(errs.Unauthenticated, "invalid email or password")
	}

	claims := jwt.MapClaims{
		"id":              org.OrganizationID.String(),
		"role":            constants.RoleAdmin,
		"role_id":         org.OrganizationID.String(),
		"organization_id": org.OrganizationID.String(),
		"exp":             time.Now().Add(24 * time.Hour).Unix(),
		"iat":             time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", nil, err
	}
	return signed, &org, nil
}

func (s *OrganizationService) CreateTeacher(ctx context.Context, p helperAuth.Principal, name, email string) (*model.TeacherModel, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	t := &model.TeacherModel{
		TeacherOrganizationID: orgID,
		TeacherName:           name,
		TeacherEmail:          email,
		TeacherIsActive:       true,
	}
	if err := s.DB.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (s *OrganizationService) CreateStudent(ctx context.Context, p helperAuth.Principal, name, email string) (*model.StudentModel, error) {
	orgID, err := tenancy.Stamp(p)
	if err != nil {
		return nil, err
	}
	st := &model.StudentModel{
		StudentOrganizationID: orgID,
		StudentName:           name,
		StudentEmail:          email,
		StudentIsActive:       true,
	}
	if err := s.DB.WithContext(ctx).Create(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}

func (s *OrganizationService) ListTeachers(ctx context.Context, p helperAuth.Principal) ([]model.TeacherModel, error) {
	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.TeacherModel{})
	if err != nil {
		return nil, err
	}
	var out []model.TeacherModel
	err = scoped.Order("teacher_created_at ASC").Find(&out).Error
	return out, err
}

// ListStudents returns one roster page plus the organization-wide
// total for pagination.
func (s *OrganizationService) ListStudents(ctx context.Context, p helperAuth.Principal, offset, limit int) ([]model.StudentModel, int64, error) {
	counter, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.StudentModel{})
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := counter.Model(&model.StudentModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	scoped, err := tenancy.ScopeAlive(s.DB.WithContext(ctx), p, model.StudentModel{})
	if err != nil {
		return nil, 0, err
	}
	var out []model.StudentModel
	err = scoped.Order("student_created_at ASC").Offset(offset).Limit(limit).Find(&out).Error
	return out, total, err
}

// DeleteOrganization retires a whole tenant: the organization row
// and every row stamped with its key, in one transaction.
// Superadmin only — this is the one operation that crosses the
// scoping guard on purpose.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, p helperAuth.Principal, orgID uuid.UUID) error {
	db, err := tenancy.CrossOrganization(s.DB.WithContext(ctx), p)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.OrganizationModel{}).
			Where("organization_id = ? AND organization_is_active = TRUE", orgID).
			Update("organization_is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.New(errs.NotFoundInOrganization, "organization not found")
		}

		steps := []struct {
			model  interface{}
			tenant string
			active string
		}{
			{&model.TeacherModel{}, "teacher_organization_id", "teacher_is_active"},
			{&model.StudentModel{}, "student_organization_id", "student_is_active"},
			{&classModel.ClassModel{}, "class_organization_id", "class_is_active"},
			{&classModel.ClassStudentModel{}, "class_student_organization_id", "class_student_is_active"},
			{&assessmentModel.TestModel{}, "test_organization_id", "test_is_active"},
			{&assessmentModel.QuestionModel{}, "question_organization_id", "question_is_active"},
			{&assessmentModel.TestAttemptModel{}, "test_attempt_organization_id", "test_attempt_is_active"},
			{&assessmentModel.ScoreModel{}, "score_organization_id", "score_is_active"},
			{&scheduleModel.ScheduleModel{}, "schedule_organization_id", "schedule_is_active"},
			{&announcementModel.AnnouncementModel{}, "announcement_organization_id", "announcement_is_active"},
		}
		for _, st := range steps {
			if err := tx.Model(st.model).
				Where(st.tenant+" = ?", orgID).
				Update(st.active, false).Error; err != nil {
				return err
			}
		}
		log.Printf("[OrganizationService] organization retired with all owned rows. org_id=%s", orgID)
		return nil
	})
}
