// file: internals/features/school/schedules/controller/schedule_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/schedules/dto"
	"sekolahku_backend/internals/features/school/schedules/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type ScheduleController struct {
	Service  *service.ScheduleService
	Validate *validator.Validate
}

func NewScheduleController(svc *service.ScheduleService) *ScheduleController {
	return &ScheduleController{Service: svc, Validate: validator.New()}
}

func (ctl *ScheduleController) parseInput(c *fiber.Ctx) (service.ScheduleInput, error) {
	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ScheduleInput{}, errs.New(errs.ValidationError, "invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return service.ScheduleInput{}, err
	}
	return service.ScheduleInput{
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
	}, nil
}

// POST /api/a/schedules
func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageSchedules) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage schedules"))
	}
	in, err := ctl.parseInput(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return helper.JsonValidationError(c, err)
		}
		return helper.JsonFromError(c, err)
	}
	slot, err := ctl.Service.Create(c.Context(), p, in)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Schedule created", slot)
}

// PUT /api/a/schedules/:id
func (ctl *ScheduleController) Update(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageSchedules) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage schedules"))
	}
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid schedule id")
	}
	in, err := ctl.parseInput(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return helper.JsonValidationError(c, err)
		}
		return helper.JsonFromError(c, err)
	}
	slot, err := ctl.Service.Update(c.Context(), p, scheduleID, in)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Schedule updated", slot)
}

// DELETE /api/a/schedules/:id
func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageSchedules) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage schedules"))
	}
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid schedule id")
	}
	if err := ctl.Service.Delete(c.Context(), p, scheduleID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Schedule deleted", nil)
}

// GET /api/u/classes/:id/schedules
func (ctl *ScheduleController) ListByClass(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	out, err := ctl.Service.ListByClass(c.Context(), p, classID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /api/u/teachers/:id/schedules
func (ctl *ScheduleController) ListByTeacher(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	teacherID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	out, err := ctl.Service.ListByTeacher(c.Context(), p, teacherID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}
