// file: internals/features/exams/exam_sessions/dto/exam_session_dto.go
package dto

import (
	"errors"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	sessionModel "smart_eujian_backend/internals/features/exams/exam_sessions/model"
	sessionRepo "smart_eujian_backend/internals/features/exams/exam_sessions/repository"
	examDTO "smart_eujian_backend/internals/features/exams/exams/dto"
)

// Validate: nama field di pesan error mengikuti tag json (examId, sessionId, ...).
var Validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

/* =========================================================
   REQUEST
========================================================= */

type StartExamSessionRequest struct {
	ExamID string `json:"examId" validate:"required,uuid"`
}

// AnswerRequest: pilihan ganda kirim chosenOption, essay kirim essayAnswer; tidak boleh keduanya.
type AnswerRequest struct {
	QuestionID   string  `json:"questionId" validate:"required,uuid"`
	ChosenOption *string `json:"chosenOption"`
	EssayAnswer  *string `json:"essayAnswer"`
}

type SubmitExamSessionRequest struct {
	SessionID string          `json:"sessionId" validate:"required,uuid"`
	Answers   []AnswerRequest `json:"answers" validate:"required,dive"`
}

func (r StartExamSessionRequest) ExamUUID() uuid.UUID {
	id, _ := uuid.Parse(strings.TrimSpace(r.ExamID))
	return id
}

func (r SubmitExamSessionRequest) SessionUUID() uuid.UUID {
	id, _ := uuid.Parse(strings.TrimSpace(r.SessionID))
	return id
}

var (
	ErrAmbiguousAnswer  = errors.New("jawaban tidak boleh berisi chosenOption dan essayAnswer sekaligus")
	ErrDuplicateAnswers = errors.New("questionId tidak boleh muncul lebih dari sekali")
)

// ToAnswers membentuk jawaban bertipe. Hanya essayAnswer → ESSAY; selain itu MULTIPLE_CHOICE.
// questionId ganda sengaja ditolak (400); versi lama menilai duplikat dua kali.
func (r SubmitExamSessionRequest) ToAnswers() ([]sessionModel.Answer, error) {
	out := make([]sessionModel.Answer, 0, len(r.Answers))
	seen := make(map[uuid.UUID]struct{}, len(r.Answers))
	for _, a := range r.Answers {
		qid, err := uuid.Parse(strings.TrimSpace(a.QuestionID))
		if err != nil {
			return nil, errors.New("questionId harus berupa UUID")
		}
		if _, dup := seen[qid]; dup {
			return nil, ErrDuplicateAnswers
		}
		seen[qid] = struct{}{}

		switch {
		case a.ChosenOption != nil && a.EssayAnswer != nil:
			return nil, ErrAmbiguousAnswer
		case a.EssayAnswer != nil:
			out = append(out, sessionModel.Answer{Kind: sessionModel.AnswerKindEssay, QuestionID: qid, EssayAnswer: a.EssayAnswer})
		default:
			out = append(out, sessionModel.Answer{Kind: sessionModel.AnswerKindMultipleChoice, QuestionID: qid, ChosenOption: a.ChosenOption})
		}
	}
	return out, nil
}

/* =========================================================
   RESPONSE
========================================================= */

type StartExamSessionResponse struct {
	SessionID uuid.UUID         `json:"sessionId"`
	Resumed   bool              `json:"resumed"`
	Exam      *examDTO.ExamView `json:"exam"`
}

type SubmitExamSessionResponse struct {
	FinalScore float64 `json:"finalScore"`
}

type SessionStudent struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ClassName *string   `json:"className,omitempty"`
}

type ExamSessionListItem struct {
	ID         uuid.UUID             `json:"id"`
	ExamID     uuid.UUID             `json:"examId"`
	UserID     uuid.UUID             `json:"userId"`
	StartedAt  time.Time             `json:"startedAt"`
	EndedAt    *time.Time            `json:"endedAt"`
	Answers    []sessionModel.Answer `json:"answers"`
	FinalScore *float64              `json:"finalScore"`
	CreatedAt  time.Time             `json:"createdAt"`
	User       SessionStudent        `json:"user"`
}

func FromSessionRow(r sessionRepo.SessionWithStudentRow) ExamSessionListItem {
	sess := sessionModel.ExamSessionModel{ExamSessionAnswers: r.ExamSessionAnswers}
	answers, err := sess.DecodeAnswers()
	if err != nil {
		// sesi dengan jawaban rusak tetap ditampilkan, hanya tanpa jawaban
		log.Printf("[ExamSessionDTO] session_id=%s: %v", r.ExamSessionID, err)
		answers = nil
	}
	return ExamSessionListItem{
		ID:         r.ExamSessionID,
		ExamID:     r.ExamSessionExamID,
		UserID:     r.ExamSessionUserID,
		StartedAt:  r.ExamSessionStartedAt,
		EndedAt:    r.ExamSessionEndedAt,
		Answers:    answers,
		FinalScore: r.ExamSessionFinalScore,
		CreatedAt:  r.ExamSessionCreatedAt,
		User: SessionStudent{
			ID:        r.ExamSessionUserID,
			Name:      r.UserName,
			Email:     r.UserEmail,
			ClassName: r.UserClassName,
		},
	}
}

func FromSessionRows(rows []sessionRepo.SessionWithStudentRow) []ExamSessionListItem {
	out := make([]ExamSessionListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromSessionRow(r))
	}
	return out
}
