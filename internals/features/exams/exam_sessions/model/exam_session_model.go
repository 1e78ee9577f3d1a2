// file: internals/features/exams/exam_sessions/model/exam_session_model.go
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
=========================================================

	EXAM SESSIONS
	1 row = 1 pengerjaan (exam × user)
	- ended_at NULL  : masih dikerjakan
	- ended_at terisi: final, tidak bisa diubah lagi
	- answers        : JSONB, terisi saat submit

=========================================================
*/

type AnswerKind string

const (
	AnswerKindMultipleChoice AnswerKind = "MULTIPLE_CHOICE"
	AnswerKindEssay          AnswerKind = "ESSAY"
)

// Answer: satu jawaban siswa. Hanya salah satu dari ChosenOption / EssayAnswer yang terisi.
type Answer struct {
	Kind         AnswerKind `json:"kind"`
	QuestionID   uuid.UUID  `json:"questionId"`
	ChosenOption *string    `json:"chosenOption,omitempty"`
	EssayAnswer  *string    `json:"essayAnswer,omitempty"`
}

func (a Answer) Chosen() string {
	if a.ChosenOption == nil {
		return ""
	}
	return *a.ChosenOption
}

type ExamSessionModel struct {
	ExamSessionID         uuid.UUID      `gorm:"column:exam_session_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_session_id"`
	ExamSessionExamID     uuid.UUID      `gorm:"column:exam_session_exam_id;type:uuid;not null;index" json:"exam_session_exam_id"`
	ExamSessionUserID     uuid.UUID      `gorm:"column:exam_session_user_id;type:uuid;not null;index" json:"exam_session_user_id"`
	ExamSessionStartedAt  time.Time      `gorm:"column:exam_session_started_at;not null" json:"exam_session_started_at"`
	ExamSessionEndedAt    *time.Time     `gorm:"column:exam_session_ended_at" json:"exam_session_ended_at,omitempty"`
	ExamSessionAnswers    datatypes.JSON `gorm:"column:exam_session_answers;type:jsonb" json:"exam_session_answers,omitempty"`
	ExamSessionFinalScore *float64       `gorm:"column:exam_session_final_score;type:double precision" json:"exam_session_final_score,omitempty"`

	ExamSessionCreatedAt time.Time `gorm:"column:exam_session_created_at;autoCreateTime" json:"exam_session_created_at"`
	ExamSessionUpdatedAt time.Time `gorm:"column:exam_session_updated_at;autoUpdateTime" json:"exam_session_updated_at"`
}

func (ExamSessionModel) TableName() string { return "exam_sessions" }

func (m *ExamSessionModel) IsEnded() bool { return m.ExamSessionEndedAt != nil }

func (m *ExamSessionModel) SetAnswers(answers []Answer) error {
	if answers == nil {
		answers = []Answer{}
	}
	b, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	m.ExamSessionAnswers = datatypes.JSON(b)
	return nil
}

// DecodeAnswers → nil kalau sesi belum disubmit.
func (m *ExamSessionModel) DecodeAnswers() ([]Answer, error) {
	if len(m.ExamSessionAnswers) == 0 || string(m.ExamSessionAnswers) == "null" {
		return nil, nil
	}
	var out []Answer
	if err := json.Unmarshal(m.ExamSessionAnswers, &out); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return out, nil
}
