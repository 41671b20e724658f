// file: internals/features/school/classes/controller/class_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/classes/dto"
	"sekolahku_backend/internals/features/school/classes/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type ClassController struct {
	Service  *service.ClassService
	Validate *validator.Validate
}

func NewClassController(svc *service.ClassService) *ClassController {
	return &ClassController{Service: svc, Validate: validator.New()}
}

// POST /api/a/classes
func (ctl *ClassController) CreateClass(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageClasses) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage classes"))
	}

	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	cls, err := ctl.Service.CreateClass(c.Context(), p, service.CreateClassInput{
		Name:      req.Name,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Class created", cls)
}

// GET /api/u/classes
func (ctl *ClassController) ListClasses(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ctl.Service.ListClasses(c.Context(), p)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /api/u/classes/:id
func (ctl *ClassController) GetClass(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	cls, err := ctl.Service.GetClass(c.Context(), p, classID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", cls)
}

// POST /api/a/classes/:id/students
func (ctl *ClassController) EnrollStudent(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageClasses) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage classes"))
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var req dto.EnrollStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row, err := ctl.Service.EnrollStudent(c.Context(), p, classID, req.StudentID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Student enrolled", row)
}

// DELETE /api/a/classes/:id/students/:studentId
func (ctl *ClassController) UnenrollStudent(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageClasses) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage classes"))
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if err := ctl.Service.UnenrollStudent(c.Context(), p, classID, studentID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Student unenrolled", nil)
}

// GET /api/u/classes/:id/students
func (ctl *ClassController) ListRoster(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	roster, err := ctl.Service.ListRoster(c.Context(), p, classID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", roster)
}
