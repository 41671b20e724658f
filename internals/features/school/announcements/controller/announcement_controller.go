// file: internals/features/school/announcements/controller/announcement_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/announcements/dto"
	"sekolahku_backend/internals/features/school/announcements/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type AnnouncementController struct {
	Service  *service.AnnouncementService
	Validate *validator.Validate
}

func NewAnnouncementController(svc *service.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{Service: svc, Validate: validator.New()}
}

// POST /api/a/announcements
func (ctl *AnnouncementController) Create(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageAnnouncement) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage announcements"))
	}
	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	a, err := ctl.Service.Create(c.Context(), p, service.AnnouncementInput{
		Title:        req.Title,
		Body:         req.Body,
		VisibleUntil: req.VisibleUntil,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Announcement created", a)
}

// GET /api/u/announcements
func (ctl *AnnouncementController) List(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ctl.Service.List(c.Context(), p)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /api/u/announcements/:id
func (ctl *AnnouncementController) Get(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}
	a, err := ctl.Service.Get(c.Context(), p, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", a)
}

// DELETE /api/a/announcements/:id
func (ctl *AnnouncementController) Delete(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageAnnouncement) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage announcements"))
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}
	if err := ctl.Service.Delete(c.Context(), p, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Announcement deleted", nil)
}
