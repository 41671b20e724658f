// file: internals/databases/migrate.go
package database

import (
	"log"

	announcementModel "sekolahku_backend/internals/features/school/announcements/model"
	assessmentModel "sekolahku_backend/internals/features/school/assessments/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	organizationModel "sekolahku_backend/internals/features/school/organizations/model"
	scheduleModel "sekolahku_backend/internals/features/school/schedules/model"
)

// AutoMigrate creates/updates every table. Gated behind
// DB_AUTO_MIGRATE so production schema changes stay deliberate.
func AutoMigrate() {
	err := DB.AutoMigrate(
		&organizationModel.OrganizationModel{},
		&organizationModel.TeacherModel{},
		&organizationModel.StudentModel{},
		&classModel.ClassModel{},
		&classModel.ClassStudentModel{},
		&assessmentModel.TestModel{},
		&assessmentModel.QuestionModel{},
		&assessmentModel.TestAttemptModel{},
		&assessmentModel.ScoreModel{},
		&scheduleModel.ScheduleModel{},
		&announcementModel.AnnouncementModel{},
	)
	if err != nil {
		log.Fatalf("❌ Auto-migration failed: %v", err)
	}
	log.Println("✅ Auto-migration complete.")
}
