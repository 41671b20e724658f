// file: internals/features/school/assessments/controller/attempt_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/assessments/dto"
	"sekolahku_backend/internals/features/school/assessments/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type AttemptController struct {
	Service  *service.AttemptService
	Validate *validator.Validate
}

func NewAttemptController(svc *service.AttemptService) *AttemptController {
	return &AttemptController{Service: svc, Validate: validator.New()}
}

// POST /api/u/tests/:id/attempts
// Creates the attempt on first call, resumes on repeats.
func (ctl *AttemptController) Start(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpTakeTest) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "only students take tests"))
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid test id")
	}

	attempt, err := ctl.Service.Start(c.Context(), p, testID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Attempt in progress", dto.NewAttemptResponse(attempt))
}

// POST /api/a/tests/:id/attempts/evaluate
// Teacher finalizes the descriptive grading of a completed attempt.
func (ctl *AttemptController) Evaluate(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpEnterScores) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to evaluate attempts"))
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid test id")
	}

	var req dto.EvaluateAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	attempt, err := ctl.Service.Evaluate(c.Context(), p, testID, req.StudentID, req.ObtainedMarks)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Attempt evaluated", dto.NewAttemptResponse(attempt))
}

// POST /api/u/tests/:id/attempts/submit
func (ctl *AttemptController) Submit(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpTakeTest) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "only students take tests"))
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid test id")
	}

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	attempt, err := ctl.Service.Submit(c.Context(), p, testID, req.Answers)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Attempt submitted", dto.NewAttemptResponse(attempt))
}
