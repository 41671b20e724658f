// file: internals/features/school/assessments/controller/score_controller.go
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

type ScoreController struct {
	Service  *service.ScoreService
	Validate *validator.Validate
}

func NewScoreController(svc *service.ScoreService) *ScoreController {
	return &ScoreController{Service: svc, Validate: validator.New()}
}

// POST /api/a/tests/:id/scores
func (ctl *ScoreController) RecordOfflineScore(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpEnterScores) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to enter scores"))
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid test id")
	}

	var req dto.OfflineScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	score, err := ctl.Service.RecordOfflineScore(c.Context(), p, service.OfflineScoreInput{
		TestID:        testID,
		StudentID:     req.StudentID,
		ObtainedMarks: req.ObtainedMarks,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Score recorded", dto.NewScoreResponse(score))
}

// POST /api/a/tests/:id/scores/batch
// Duplicates inside the batch are skipped, not fatal.
func (ctl *ScoreController) RecordOfflineScoreBatch(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpEnterScores) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to enter scores"))
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid test id")
	}

	var req dto.BatchScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rows := make([]service.OfflineScoreInput, 0, len(req.Entries))
	for _, e := range req.Entries {
		rows = append(rows, service.OfflineScoreInput{
			StudentID:     e.StudentID,
			ObtainedMarks: e.ObtainedMarks,
		})
	}
	recorded, err := ctl.Service.RecordOfflineScoreBatch(c.Context(), p, testID, rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out := make([]dto.ScoreResponse, 0, len(recorded))
	for i := range recorded {
		out = append(out, dto.NewScoreResponse(&recorded[i]))
	}
	return helper.JsonCreated(c, "Scores recorded", fiber.Map{
		"recorded": out,
		"skipped":  len(req.Entries) - len(out),
	})
}

// DELETE /api/a/scores/:id
func (ctl *ScoreController) DeleteScore(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpEnterScores) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage scores"))
	}
	scoreID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid score id")
	}
	if err := ctl.Service.DeleteScore(c.Context(), p, scoreID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Score deleted", nil)
}
