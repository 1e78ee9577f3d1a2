// file: internals/features/exams/exam_sessions/repository/exam_session_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sessionModel "smart_eujian_backend/internals/features/exams/exam_sessions/model"
	"smart_eujian_backend/internals/features/exams/exam_sessions/service"
	resultRepo "smart_eujian_backend/internals/features/exams/results/repository"
)

// GormSessionStore: SessionStore + TxRunner + SessionLocker di atas Postgres.
type GormSessionStore struct {
	DB *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{DB: db}
}

func takeSession(q *gorm.DB) (*sessionModel.ExamSessionModel, error) {
	var row sessionModel.ExamSessionModel
	err := q.Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindSession → sesi terbaru (exam, user); sesi aktif selalu yang terbaru.
func (r *GormSessionStore) FindSession(ctx context.Context, examID, userID uuid.UUID) (*sessionModel.ExamSessionModel, error) {
	return takeSession(r.DB.WithContext(ctx).
		Where("exam_session_exam_id = ? AND exam_session_user_id = ?", examID, userID).
		Order("exam_session_ended_at IS NULL DESC").
		Order("exam_session_created_at DESC"))
}

func (r *GormSessionStore) FindSessionByID(ctx context.Context, sessionID uuid.UUID) (*sessionModel.ExamSessionModel, error) {
	return takeSession(r.DB.WithContext(ctx).Where("exam_session_id = ?", sessionID))
}

func (r *GormSessionStore) CreateSession(ctx context.Context, examID, userID uuid.UUID, startedAt time.Time) (*sessionModel.ExamSessionModel, error) {
	row := &sessionModel.ExamSessionModel{
		ExamSessionExamID:    examID,
		ExamSessionUserID:    userID,
		ExamSessionStartedAt: startedAt,
	}
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// SaveSession hanya menulis kolom hasil submit.
func (r *GormSessionStore) SaveSession(ctx context.Context, s *sessionModel.ExamSessionModel) error {
	return r.DB.WithContext(ctx).
		Model(&sessionModel.ExamSessionModel{}).
		Where("exam_session_id = ?", s.ExamSessionID).
		Updates(map[string]any{
			"exam_session_answers":     s.ExamSessionAnswers,
			"exam_session_final_score": s.ExamSessionFinalScore,
			"exam_session_ended_at":    s.ExamSessionEndedAt,
			"exam_session_updated_at":  time.Now().UTC(),
		}).Error
}

// LockSession: SELECT ... FOR UPDATE; hanya bermakna di dalam WithinTx.
func (r *GormSessionStore) LockSession(ctx context.Context, sessionID uuid.UUID) (*sessionModel.ExamSessionModel, error) {
	return takeSession(r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("exam_session_id = ?", sessionID))
}

func (r *GormSessionStore) WithinTx(ctx context.Context, fn func(service.SessionStore, service.ResultStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormSessionStore(tx), resultRepo.NewGormResultStore(tx))
	})
}

/* =========================================================
   READ MODEL: sesi per ujian (guru)
========================================================= */

type SessionWithStudentRow struct {
	ExamSessionID         uuid.UUID      `gorm:"column:exam_session_id"`
	ExamSessionExamID     uuid.UUID      `gorm:"column:exam_session_exam_id"`
	ExamSessionUserID     uuid.UUID      `gorm:"column:exam_session_user_id"`
	ExamSessionStartedAt  time.Time      `gorm:"column:exam_session_started_at"`
	ExamSessionEndedAt    *time.Time     `gorm:"column:exam_session_ended_at"`
	ExamSessionAnswers    datatypes.JSON `gorm:"column:exam_session_answers"`
	ExamSessionFinalScore *float64       `gorm:"column:exam_session_final_score"`
	ExamSessionCreatedAt  time.Time      `gorm:"column:exam_session_created_at"`

	UserName      string  `gorm:"column:user_name"`
	UserEmail     string  `gorm:"column:email"`
	UserClassName *string `gorm:"column:class_name"`
}

func (r *GormSessionStore) ListByExam(ctx context.Context, examID uuid.UUID, limit, offset int) ([]SessionWithStudentRow, int64, error) {
	base := r.DB.WithContext(ctx).
		Table("exam_sessions s").
		Joins("JOIN users u ON u.id = s.exam_session_user_id").
		Where("s.exam_session_exam_id = ?", examID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]SessionWithStudentRow, 0)
	q := base.Select(`s.exam_session_id, s.exam_session_exam_id, s.exam_session_user_id,
		s.exam_session_started_at, s.exam_session_ended_at, s.exam_session_answers,
		s.exam_session_final_score, s.exam_session_created_at,
		u.user_name, u.email, u.class_name`).
		Order("s.exam_session_created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

var (
	_ service.SessionStore  = (*GormSessionStore)(nil)
	_ service.TxRunner      = (*GormSessionStore)(nil)
	_ service.SessionLocker = (*GormSessionStore)(nil)
	_ service.ResultStore   = (*resultRepo.GormResultStore)(nil)
)
