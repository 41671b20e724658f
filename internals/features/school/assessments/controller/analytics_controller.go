// file: internals/features/school/assessments/controller/analytics_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/assessments/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type AnalyticsController struct {
	Service *service.AnalyticsService
}

func NewAnalyticsController(svc *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Service: svc}
}

// parseWindow reads optional ?from=2025-06-01&to=2026-05-31 query
// bounds; absent bounds fall back to the current academic year.
func parseWindow(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, errs.New(errs.ValidationError, "from must be YYYY-MM-DD")
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, errs.New(errs.ValidationError, "to must be YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Second)
		to = &end
	}
	return from, to, nil
}

// GET /api/u/classes/:id/leaderboard
func (ctl *AnalyticsController) ClassLeaderboard(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpViewAnalytics) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to view analytics"))
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	from, to, err := parseWindow(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	entries, err := ctl.Service.ClassLeaderboard(c.Context(), p, classID, from, to)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", entries)
}

// GET /api/u/classes/:id/average
func (ctl *AnalyticsController) ClassAverage(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpViewAnalytics) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to view analytics"))
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	from, to, err := parseWindow(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	avg, err := ctl.Service.ClassAverage(c.Context(), p, classID, from, to)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{"average": avg})
}

// GET /api/u/analytics/grade-distribution
func (ctl *AnalyticsController) GradeDistribution(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !p.Can(constants.OpViewAnalytics) {
		return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to view analytics"))
	}
	from, to, err := parseWindow(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	dist, err := ctl.Service.GradeDistribution(c.Context(), p, from, to)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", dist)
}

// GET /api/u/students/:id/score-trend
// Students may only pull their own trend; staff may pull anyone's.
func (ctl *AnalyticsController) StudentTimeSeries(c *fiber.Ctx) error {
	p, err := helperAuth.PrincipalFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if !p.Can(constants.OpViewAnalytics) {
		if !p.Can(constants.OpViewOwnScores) || p.RoleID != studentID {
			return helper.JsonFromError(c, errs.New(errs.Forbidden, "not allowed to view this student's scores"))
		}
	}
	from, to, err := parseWindow(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	points, err := ctl.Service.StudentTimeSeries(c.Context(), p, studentID, from, to)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", points)
}
