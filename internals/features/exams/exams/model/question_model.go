// file: internals/features/exams/exams/model/question_model.go
package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeEssay          QuestionType = "ESSAY"
)

type QuestionModel struct {
	QuestionID        uuid.UUID    `gorm:"column:question_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"question_id"`
	QuestionExamID    uuid.UUID    `gorm:"column:question_exam_id;type:uuid;not null" json:"question_exam_id"`
	QuestionCreatorID *uuid.UUID   `gorm:"column:question_creator_id;type:uuid" json:"question_creator_id,omitempty"`
	QuestionText      string       `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionType      QuestionType `gorm:"column:question_type;type:varchar(20);not null;default:'MULTIPLE_CHOICE'" json:"question_type"`

	// {"A":"...","B":"..."}; NULL untuk essay
	QuestionOptions       datatypes.JSON `gorm:"column:question_options;type:jsonb" json:"question_options,omitempty"`
	QuestionCorrectAnswer *string        `gorm:"column:question_correct_answer;type:varchar(10)" json:"question_correct_answer,omitempty"`

	QuestionWeight   int  `gorm:"column:question_weight;not null;default:1" json:"question_weight"`
	QuestionOrder    int  `gorm:"column:question_order;not null;default:1" json:"question_order"`
	QuestionIsActive bool `gorm:"column:question_is_active;not null;default:true" json:"question_is_active"`

	QuestionCreatedAt time.Time `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`
}

func (QuestionModel) TableName() string { return "questions" }

// ------------------------
// Helpers
// ------------------------

func (m *QuestionModel) IsEssay() bool { return m.QuestionType == QuestionTypeEssay }
func (m *QuestionModel) IsMultipleChoice() bool {
	return m.QuestionType == QuestionTypeMultipleChoice
}

// EffectiveWeight: bobot ≤ 0 diperlakukan sebagai 1.
func (m *QuestionModel) EffectiveWeight() int {
	if m.QuestionWeight <= 0 {
		return 1
	}
	return m.QuestionWeight
}

// CorrectLabel → "" kalau kunci jawaban kosong.
func (m *QuestionModel) CorrectLabel() string {
	if m.QuestionCorrectAnswer == nil {
		return ""
	}
	return *m.QuestionCorrectAnswer
}

// OptionsMap decode kolom options; essay / kosong → nil.
func (m *QuestionModel) OptionsMap() (map[string]string, error) {
	if len(m.QuestionOptions) == 0 || string(m.QuestionOptions) == "null" {
		return nil, nil
	}
	var out map[string]string
	if err := json.Unmarshal(m.QuestionOptions, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetOptions menyimpan opsi pilihan ganda + label jawaban benar.
func (m *QuestionModel) SetOptions(opts map[string]string, correct string) error {
	b, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	m.QuestionOptions = datatypes.JSON(b)
	m.QuestionCorrectAnswer = &correct
	return nil
}

// ValidateShape → MULTIPLE_CHOICE wajib punya opsi & kunci yang ada di opsi; ESSAY tidak boleh punya keduanya.
func (m *QuestionModel) ValidateShape() error {
	if strings.TrimSpace(m.QuestionText) == "" {
		return errors.New("teks soal wajib diisi")
	}

	opts, err := m.OptionsMap()
	if err != nil {
		return errors.New("options harus berupa object {label: teks}")
	}

	switch m.QuestionType {
	case QuestionTypeEssay:
		if len(opts) != 0 || m.CorrectLabel() != "" {
			return errors.New("ESSAY: options & correctAnswer harus kosong")
		}
		return nil
	case QuestionTypeMultipleChoice:
		if len(opts) == 0 {
			return errors.New("MULTIPLE_CHOICE: options wajib diisi")
		}
		correct := m.CorrectLabel()
		if correct == "" {
			return errors.New("MULTIPLE_CHOICE: correctAnswer wajib diisi")
		}
		if _, ok := opts[correct]; !ok {
			return errors.New("MULTIPLE_CHOICE: correctAnswer tidak ada pada options")
		}
		return nil
	default:
		return errors.New("tipe soal tidak dikenal: " + string(m.QuestionType))
	}
}
