// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/middlewares"

	announcementController "sekolahku_backend/internals/features/school/announcements/controller"
	announcementService "sekolahku_backend/internals/features/school/announcements/service"
	assessmentController "sekolahku_backend/internals/features/school/assessments/controller"
	assessmentService "sekolahku_backend/internals/features/school/assessments/service"
	classController "sekolahku_backend/internals/features/school/classes/controller"
	classService "sekolahku_backend/internals/features/school/classes/service"
	organizationController "sekolahku_backend/internals/features/school/organizations/controller"
	organizationService "sekolahku_backend/internals/features/school/organizations/service"
	scheduleController "sekolahku_backend/internals/features/school/schedules/controller"
	scheduleService "sekolahku_backend/internals/features/school/schedules/service"
)

/* =========================================================
   ROUTES
   /api        public (register, login)
   /api/u      any authenticated member
   /api/a      admin & teacher management surface
   /api/s      superadmin
========================================================= */

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// services
	store := assessmentService.NewGormAssessmentStore(db)
	classes := classService.NewClassService(db)
	tests := assessmentService.NewTestService(db)
	attempts := assessmentService.NewAttemptService(store, classes)
	scores := assessmentService.NewScoreService(store)
	analytics := assessmentService.NewAnalyticsService(store)
	schedules := scheduleService.NewScheduleService(db)
	organizations := organizationService.NewOrganizationService(db)
	announcements := announcementService.NewAnnouncementService(db)

	// controllers
	orgCtl := organizationController.NewOrganizationController(organizations)
	classCtl := classController.NewClassController(classes)
	testCtl := assessmentController.NewTestController(tests)
	attemptCtl := assessmentController.NewAttemptController(attempts)
	scoreCtl := assessmentController.NewScoreController(scores)
	analyticsCtl := assessmentController.NewAnalyticsController(analytics)
	scheduleCtl := scheduleController.NewScheduleController(schedules)
	announcementCtl := announcementController.NewAnnouncementController(announcements)

	api := app.Group("/api")

	// public
	api.Post("/register", orgCtl.Register)
	api.Post("/login", orgCtl.Login)

	// authenticated
	u := api.Group("/u", middlewares.JWTAuth())
	u.Get("/classes", classCtl.ListClasses)
	u.Get("/classes/:id", classCtl.GetClass)
	u.Get("/classes/:id/students", classCtl.ListRoster)
	u.Get("/classes/:id/tests", testCtl.ListTestsByClass)
	u.Get("/classes/:id/schedules", scheduleCtl.ListByClass)
	u.Get("/classes/:id/leaderboard", analyticsCtl.ClassLeaderboard)
	u.Get("/classes/:id/average", analyticsCtl.ClassAverage)
	u.Get("/teachers/:id/schedules", scheduleCtl.ListByTeacher)
	u.Get("/tests/:id", testCtl.GetTest)
	u.Get("/tests/:id/questions", testCtl.ListQuestions)
	u.Post("/tests/:id/attempts", attemptCtl.Start)
	u.Post("/tests/:id/attempts/submit", attemptCtl.Submit)
	u.Get("/students/:id/score-trend", analyticsCtl.StudentTimeSeries)
	u.Get("/analytics/grade-distribution", analyticsCtl.GradeDistribution)
	u.Get("/announcements", announcementCtl.List)
	u.Get("/announcements/:id", announcementCtl.Get)

	// admin & teacher management
	a := api.Group("/a", middlewares.JWTAuth())
	a.Post("/teachers", orgCtl.CreateTeacher)
	a.Get("/teachers", orgCtl.ListTeachers)
	a.Post("/students", orgCtl.CreateStudent)
	a.Get("/students", orgCtl.ListStudents)
	a.Post("/classes", classCtl.CreateClass)
	a.Post("/classes/:id/students", classCtl.EnrollStudent)
	a.Delete("/classes/:id/students/:studentId", classCtl.UnenrollStudent)
	a.Post("/tests", testCtl.CreateTest)
	a.Delete("/tests/:id", testCtl.DeleteTest)
	a.Post("/tests/:id/questions", testCtl.AddQuestion)
	a.Post("/tests/:id/attempts/evaluate", attemptCtl.Evaluate)
	a.Post("/tests/:id/scores", scoreCtl.RecordOfflineScore)
	a.Post("/tests/:id/scores/batch", scoreCtl.RecordOfflineScoreBatch)
	a.Delete("/scores/:id", scoreCtl.DeleteScore)
	a.Post("/schedules", scheduleCtl.Create)
	a.Put("/schedules/:id", scheduleCtl.Update)
	a.Delete("/schedules/:id", scheduleCtl.Delete)
	a.Post("/announcements", announcementCtl.Create)
	a.Delete("/announcements/:id", announcementCtl.Delete)

	// superadmin
	s := api.Group("/s", middlewares.JWTAuth())
	s.Delete("/organizations/:id", orgCtl.DeleteOrganization)
}
