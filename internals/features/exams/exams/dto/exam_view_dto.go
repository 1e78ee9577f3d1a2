// file: internals/features/exams/exams/dto/exam_view_dto.go
package dto

import (
	"log"
	"time"

	"github.com/google/uuid"

	examModel "smart_eujian_backend/internals/features/exams/exams/model"
)

// QuestionView: soal yang dikirim ke siswa. Kunci jawaban TIDAK ikut.
type QuestionView struct {
	ID      uuid.UUID         `json:"id"`
	Text    string            `json:"questionText"`
	Type    string            `json:"type"`
	Options map[string]string `json:"options,omitempty"`
	Weight  int               `json:"weight"`
	Order   int               `json:"order"`
}

// ExamView: ujian + soal untuk halaman pengerjaan.
type ExamView struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     *string        `json:"description,omitempty"`
	Subject         *string        `json:"subject,omitempty"`
	DurationMinutes int            `json:"duration"`
	StartTime       *time.Time     `json:"startTime,omitempty"`
	EndTime         *time.Time     `json:"endTime,omitempty"`
	IsActive        bool           `json:"isActive"`
	TargetClass     *string        `json:"targetClass,omitempty"`
	Questions       []QuestionView `json:"questions"`
}

func FromQuestionModel(q examModel.QuestionModel) QuestionView {
	var opts map[string]string
	// essay tidak pernah menampilkan opsi, walau kolomnya terisi
	if !q.IsEssay() {
		var err error
		if opts, err = q.OptionsMap(); err != nil {
			log.Printf("[ExamView] options rusak question_id=%s: %v", q.QuestionID, err)
		}
	}
	return QuestionView{
		ID:      q.QuestionID,
		Text:    q.QuestionText,
		Type:    string(q.QuestionType),
		Options: opts,
		Weight:  q.EffectiveWeight(),
		Order:   q.QuestionOrder,
	}
}

// FromExamModel menyalin urutan soal apa adanya (katalog sudah mengurutkan).
func FromExamModel(e *examModel.ExamModel) *ExamView {
	if e == nil {
		return nil
	}
	qs := make([]QuestionView, 0, len(e.Questions))
	for _, q := range e.Questions {
		qs = append(qs, FromQuestionModel(q))
	}
	return &ExamView{
		ID:              e.ExamID,
		Title:           e.ExamTitle,
		Description:     e.ExamDescription,
		Subject:         e.ExamSubject,
		DurationMinutes: e.ExamDurationMinutes,
		StartTime:       e.ExamStartTime,
		EndTime:         e.ExamEndTime,
		IsActive:        e.ExamIsActive,
		TargetClass:     e.ExamTargetClass,
		Questions:       qs,
	}
}
