package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	sessionModel "smart_eujian_backend/internals/features/exams/exam_sessions/model"
	examModel "smart_eujian_backend/internals/features/exams/exams/model"
	resultModel "smart_eujian_backend/internals/features/exams/results/model"
	authModel "smart_eujian_backend/internals/features/users/auth/model"
	userModel "smart_eujian_backend/internals/features/users/user/model"
)

// Index yang tidak bisa diekspresikan lewat tag GORM (partial index).
var rawIndexes = []string{
	// 1 sesi aktif per (exam, user); sesi yang sudah selesai tidak dihitung
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_exam_sessions_active
	   ON exam_sessions (exam_session_exam_id, exam_session_user_id)
	   WHERE exam_session_ended_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_exam_sessions_exam_created
	   ON exam_sessions (exam_session_exam_id, exam_session_created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_exam_order
	   ON questions (question_exam_id, question_order)`,
}

// Migrate membuat/menyesuaikan tabel inti. Aman dipanggil berulang.
func Migrate(db *gorm.DB) error {
	log.Println("[MIGRATE] AutoMigrate tabel inti...")
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&examModel.ExamModel{},
		&examModel.QuestionModel{},
		&sessionModel.ExamSessionModel{},
		&resultModel.ResultModel{},
		&authModel.TokenBlacklist{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	for _, stmt := range rawIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	log.Println("[MIGRATE] selesai")
	return nil
}
