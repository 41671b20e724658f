// file: internals/features/school/assessments/controller/test_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/assessments/dto"
	"sekolahku_backend/internals/features/school/assessments/model"
	"sekolahku_backend/internals/features/school/assessments/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type TestController struct {
	Service  *service.TestService
	Validate *validator.Validate
}

func NewTestController(svc *service.TestService) *TestController {
	return &TestController{Service: svc, Validate: validator.New()}
}

// POST /api/a/tests
func (ctl *TestController) CreateTest(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageTests) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage tests"))
	}

	var req dto.CreateTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	test, err := ctl.Service.CreateTest(c.Context(), p, service.CreateTestInput{
		ClassID:         req.ClassID,
		TeacherID:       req.TeacherID,
		Title:           req.Title,
		Type:            model.TestType(req.Type),
		TotalMarks:      req.TotalMarks,
		PassingMarks:    req.PassingMarks,
		DurationMinutes: req.DurationMinutes,
		ScheduledDate:   req.ScheduledDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Test created", test)
}

// GET /api/u/tests/:id
func (ctl *TestController) GetTest(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid test id")
	}
	test, err := ctl.Service.GetTest(c.Context(), p, testID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", test)
}

// GET /api/u/classes/:id/tests
func (ctl *TestController) ListTestsByClass(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	tests, err := ctl.Service.ListTestsByClass(c.Context(), p, classID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", tests)
}

// DELETE /api/a/tests/:id
func (ctl *TestController) DeleteTest(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageTests) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage tests"))
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid test id")
	}
	if err := ctl.Service.DeleteTest(c.Context(), p, testID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Test deleted", nil)
}

// POST /api/a/tests/:id/questions
func (ctl *TestController) AddQuestion(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpManageTests) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to manage tests"))
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid test id")
	}

	var req dto.AddQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	q, err := ctl.Service.AddQuestion(c.Context(), p, testID, service.AddQuestionInput{
		Number:        req.Number,
		Text:          req.Text,
		Type:          model.QuestionType(req.Type),
		Marks:         req.Marks,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Question added", q)
}

// GET /api/u/tests/:id/questions
// Staff see the answer key; students get the blanked paper.
func (ctl *TestController) ListQuestions(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid test id")
	}
	includeAnswers := p.Can(constants.OpManageTests)
	questions, err := ctl.Service.ListQuestions(c.Context(), p, testID, includeAnswers)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", questions)
}
