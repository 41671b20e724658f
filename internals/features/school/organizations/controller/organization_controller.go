// file: internals/features/school/organizations/controller/organization_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/organizations/dto"
	"sekolahku_backend/internals/features/school/organizations/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type OrganizationController struct {
	Service  *service.OrganizationService
	Validate *validator.Validate
}

func NewOrganizationController(svc *service.OrganizationService) *OrganizationController {
	return &OrganizationController{Service: svc, Validate: validator.New()}
}

// POST /api/register (public)
func (ctl *OrganizationController) Register(c *fiber.Ctx) error {
	var req dto.RegisterOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	org, err := ctl.Service.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Organization registered", org)
}

// POST /api/login (public)
func (ctl *OrganizationController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	token, org, err := ctl.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": token,
		"organization": org,
	})
}

// POST /api/a/teachers
func (ctl *OrganizationController) CreateTeacher(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageOrganization) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage members"))
	}
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	t, err := ctl.Service.CreateTeacher(c.Context(), p, req.Name, req.Email)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Teacher created", t)
}

// POST /api/a/students
func (ctl *OrganizationController) CreateStudent(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageOrganization) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage members"))
	}
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	st, err := ctl.Service.CreateStudent(c.Context(), p, req.Name, req.Email)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Student created", st)
}

// GET /api/a/teachers
func (ctl *OrganizationController) ListTeachers(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ctl.Service.ListTeachers(c.Context(), p)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /api/a/students?page=&per_page=
func (ctl *OrganizationController) ListStudents(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	paging := helper.ResolvePaging(c, 25, 100)
	out, total, err := ctl.Service.ListStudents(c.Context(), p, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"students":   out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

// DELETE /api/s/organizations/:id (superadmin)
func (ctl *OrganizationController) DeleteOrganization(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid organization id")
	}
	if err := ctl.Service.DeleteOrganization(c.Context(), p, orgID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Organization deleted", nil)
}
