package exams

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	examModel "smart_eujian_backend/internals/features/exams/exams/model"
	userModel "smart_eujian_backend/internals/features/users/user/model"
)

type QuestionSeed struct {
	QuestionText  string            `json:"question_text"`
	QuestionType  string            `json:"question_type"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Weight        int               `json:"weight"`
	Order         int               `json:"order"`
}

type ExamSeed struct {
	Title           string         `json:"title"`
	Description     *string        `json:"description"`
	Subject         *string        `json:"subject"`
	DurationMinutes int            `json:"duration_minutes"`
	TargetClass     *string        `json:"target_class"`
	CreatorEmail    string         `json:"creator_email"`
	Questions       []QuestionSeed `json:"questions"`
}

func SeedExamsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file ujian:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []ExamSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		if err := seedExam(db, data); err != nil {
			log.Printf("❌ Gagal seed ujian '%s': %v", data.Title, err)
		}
	}
}

func seedExam(db *gorm.DB, data ExamSeed) error {
	var count int64
	if err := db.Model(&examModel.ExamModel{}).Where("exam_title = ?", data.Title).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("ℹ️ Ujian '%s' sudah ada, dilewati.", data.Title)
		return nil
	}

	var creator userModel.UserModel
	if err := db.Where("LOWER(email) = ?", strings.ToLower(data.CreatorEmail)).First(&creator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("creator_email tidak ditemukan: " + data.CreatorEmail)
		}
		return err
	}

	questions, err := BuildQuestions(data.Questions, creator.ID)
	if err != nil {
		return err
	}

	exam := examModel.ExamModel{
		ExamTitle:       data.Title,
		ExamDescription: data.Description,
		ExamSubject:     data.Subject,
		ExamTargetClass: data.TargetClass,
		ExamIsActive:    true,
		ExamCreatorID:   creator.ID,
	}
	if data.DurationMinutes > 0 {
		exam.ExamDurationMinutes = data.DurationMinutes
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Create(&exam).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuestionExamID = exam.ExamID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		log.Printf("✅ Berhasil insert ujian '%s' (%d soal)", exam.ExamTitle, len(questions))
		return nil
	})
}
