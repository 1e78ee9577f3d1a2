// file: internals/features/exams/exam_sessions/service/exam_session_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	sessionModel "smart_eujian_backend/internals/features/exams/exam_sessions/model"
	examModel "smart_eujian_backend/internals/features/exams/exams/model"
	resultModel "smart_eujian_backend/internals/features/exams/results/model"
	"smart_eujian_backend/internals/helpers/pgerror"
)

/* =========================================================
   COLLABORATORS
========================================================= */

// CatalogProvider: ujian + soal (urut) per exam id. (nil, nil) = tidak ada.
type CatalogProvider interface {
	ResolveExam(ctx context.Context, examID uuid.UUID) (*examModel.ExamModel, error)
}

// SessionStore: lookup (nil, nil) = tidak ada.
type SessionStore interface {
	// FindSession → sesi terbaru untuk pasangan (exam, user)
	FindSession(ctx context.Context, examID, userID uuid.UUID) (*sessionModel.ExamSessionModel, error)
	FindSessionByID(ctx context.Context, sessionID uuid.UUID) (*sessionModel.ExamSessionModel, error)
	CreateSession(ctx context.Context, examID, userID uuid.UUID, startedAt time.Time) (*sessionModel.ExamSessionModel, error)
	SaveSession(ctx context.Context, s *sessionModel.ExamSessionModel) error
}

type ResultStore interface {
	FindResult(ctx context.Context, examID, studentID uuid.UUID) (*resultModel.ResultModel, error)
	CreateResult(ctx context.Context, examID, studentID uuid.UUID, score float64) (*resultModel.ResultModel, error)
}

// TxRunner menjalankan fn dalam satu transaksi; store yang diberikan terikat ke transaksi itu.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(sessions SessionStore, results ResultStore) error) error
}

// SessionLocker opsional: SELECT ... FOR UPDATE pada baris sesi.
type SessionLocker interface {
	LockSession(ctx context.Context, sessionID uuid.UUID) (*sessionModel.ExamSessionModel, error)
}

/* =========================================================
   SERVICE
========================================================= */

type ExamSessionService struct {
	Catalog  CatalogProvider
	Sessions SessionStore
	Results  ResultStore
	// Tx nil → tulis berurutan tanpa transaksi (lihat ErrPartiallyRecorded)
	Tx  TxRunner
	Now func() time.Time
}

func NewExamSessionService(catalog CatalogProvider, sessions SessionStore, results ResultStore, tx TxRunner) *ExamSessionService {
	return &ExamSessionService{
		Catalog:  catalog,
		Sessions: sessions,
		Results:  results,
		Tx:       tx,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ExamSessionService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

type StartResult struct {
	SessionID uuid.UUID
	Exam      *examModel.ExamModel
	Resumed   bool
}

type SubmitResult struct {
	SessionID  uuid.UUID
	FinalScore float64
}

func (s *ExamSessionService) resolveExam(ctx context.Context, examID uuid.UUID) (*examModel.ExamModel, error) {
	exam, err := s.Catalog.ResolveExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("resolve exam: %w", err)
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}
	return exam, nil
}

/* =========================================================
   START
========================================================= */

// Start memulai atau melanjutkan sesi ujian untuk user.
func (s *ExamSessionService) Start(ctx context.Context, examID, userID uuid.UUID) (*StartResult, error) {
	if examID == uuid.Nil {
		return nil, validationErr("examId wajib diisi")
	}
	if userID == uuid.Nil {
		return nil, validationErr("user tidak dikenal")
	}

	exam, err := s.resolveExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Results.FindResult(ctx, examID, userID)
	if err != nil {
		return nil, fmt.Errorf("find result: %w", err)
	}
	if existing != nil {
		return nil, ErrResultExistsOnStart
	}

	sess, err := s.Sessions.FindSession(ctx, examID, userID)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sess != nil && !sess.IsEnded() {
		log.Printf("[ExamSessionService] resume session_id=%s exam_id=%s user_id=%s", sess.ExamSessionID, examID, userID)
		return &StartResult{SessionID: sess.ExamSessionID, Exam: exam, Resumed: true}, nil
	}

	created, err := s.Sessions.CreateSession(ctx, examID, userID, s.now())
	if err != nil {
		// start bersamaan: index uq_exam_sessions_active menolak yang kalah → pakai sesi pemenang
		if pgerror.IsUniqueViolation(err) {
			winner, ferr := s.Sessions.FindSession(ctx, examID, userID)
			if ferr == nil && winner != nil && !winner.IsEnded() {
				return &StartResult{SessionID: winner.ExamSessionID, Exam: exam, Resumed: true}, nil
			}
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	log.Printf("[ExamSessionService] start session_id=%s exam_id=%s user_id=%s", created.ExamSessionID, examID, userID)
	return &StartResult{SessionID: created.ExamSessionID, Exam: exam}, nil
}

/* =========================================================
   SUBMIT
========================================================= */

// Submit menilai jawaban, menutup sesi, dan mencatat Result (sekali saja).
func (s *ExamSessionService) Submit(ctx context.Context, sessionID, userID uuid.UUID, answers []sessionModel.Answer) (*SubmitResult, error) {
	if sessionID == uuid.Nil {
		return nil, validationErr("sessionId wajib diisi")
	}
	if answers == nil {
		return nil, validationErr("answers wajib diisi")
	}

	sess, err := s.Sessions.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if sess.ExamSessionUserID != userID {
		return nil, ErrNotSessionOwner
	}

	exam, err := s.resolveExam(ctx, sess.ExamSessionExamID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Results.FindResult(ctx, exam.ExamID, userID)
	if err != nil {
		return nil, fmt.Errorf("find result: %w", err)
	}
	if existing != nil || sess.IsEnded() {
		return nil, ErrResultExistsOnSubmit
	}

	score := ScoreAnswers(exam.Questions, answers)

	if s.Tx == nil {
		if err := s.record(ctx, s.Sessions, s.Results, sess, answers, score, false); err != nil {
			return nil, err
		}
	} else {
		err := s.Tx.WithinTx(ctx, func(sessions SessionStore, results ResultStore) error {
			locked := sess
			if l, ok := sessions.(SessionLocker); ok {
				row, err := l.LockSession(ctx, sessionID)
				if err != nil {
					return fmt.Errorf("lock session: %w", err)
				}
				if row == nil {
					return ErrSessionNotFound
				}
				locked = row
			}
			// submit paralel yang kalah melihat ended_at milik pemenang
			if locked.IsEnded() {
				return ErrResultExistsOnSubmit
			}
			return s.record(ctx, sessions, results, locked, answers, score, true)
		})
		if err != nil {
			return nil, err
		}
	}

	log.Printf("[ExamSessionService] submit session_id=%s exam_id=%s user_id=%s score=%v answers=%d",
		sessionID, exam.ExamID, userID, score, len(answers))
	return &SubmitResult{SessionID: sessionID, FinalScore: score}, nil
}

// record: update sesi lalu insert result.
// Tanpa transaksi, gagal insert setelah sesi tersimpan → ErrPartiallyRecorded.
func (s *ExamSessionService) record(
	ctx context.Context,
	sessions SessionStore,
	results ResultStore,
	sess *sessionModel.ExamSessionModel,
	answers []sessionModel.Answer,
	score float64,
	inTx bool,
) error {
	if err := sess.SetAnswers(answers); err != nil {
		return err
	}
	ended := s.now()
	sess.ExamSessionEndedAt = &ended
	sess.ExamSessionFinalScore = &score

	if err := sessions.SaveSession(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if _, err := results.CreateResult(ctx, sess.ExamSessionExamID, sess.ExamSessionUserID, score); err != nil {
		if pgerror.IsUniqueViolation(err) {
			return ErrResultExistsOnSubmit
		}
		if inTx {
			return fmt.Errorf("create result: %w", err)
		}
		log.Printf("[ExamSessionService] result insert failed after session save session_id=%s: %v", sess.ExamSessionID, err)
		return fmt.Errorf("%w: create result: %w", ErrPartiallyRecorded, err)
	}
	return nil
}
