// file: internals/features/exams/results/repository/result_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	resultModel "smart_eujian_backend/internals/features/exams/results/model"
)

type GormResultStore struct {
	DB *gorm.DB
}

func NewGormResultStore(db *gorm.DB) *GormResultStore {
	return &GormResultStore{DB: db}
}

// FindResult → (nil, nil) kalau belum ada.
func (r *GormResultStore) FindResult(ctx context.Context, examID, studentID uuid.UUID) (*resultModel.ResultModel, error) {
	var row resultModel.ResultModel
	err := r.DB.WithContext(ctx).
		Where("result_exam_id = ? AND result_student_id = ?", examID, studentID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateResult: unique violation uq_results_exam_student diteruskan apa adanya.
func (r *GormResultStore) CreateResult(ctx context.Context, examID, studentID uuid.UUID, score float64) (*resultModel.ResultModel, error) {
	row := &resultModel.ResultModel{
		ResultExamID:    examID,
		ResultStudentID: studentID,
		ResultScore:     score,
	}
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

/* =========================================================
   READ MODELS (listing)
========================================================= */

// ResultRow: result + info siswa & ujian.
type ResultRow struct {
	ResultID        uuid.UUID `gorm:"column:result_id"`
	ResultExamID    uuid.UUID `gorm:"column:result_exam_id"`
	ResultStudentID uuid.UUID `gorm:"column:result_student_id"`
	ResultScore     float64   `gorm:"column:result_score"`
	ResultCreatedAt time.Time `gorm:"column:result_created_at"`

	ExamTitle   string  `gorm:"column:exam_title"`
	ExamSubject *string `gorm:"column:exam_subject"`

	StudentName      string  `gorm:"column:user_name"`
	StudentEmail     string  `gorm:"column:email"`
	StudentClassName *string `gorm:"column:class_name"`
}

type ListResultsFilter struct {
	ExamID    *uuid.UUID
	StudentID *uuid.UUID
	Limit     int
	Offset    int
}

func (r *GormResultStore) ListResults(ctx context.Context, f ListResultsFilter) ([]ResultRow, int64, error) {
	base := r.DB.WithContext(ctx).
		Table("results r").
		Joins("JOIN exams e ON e.exam_id = r.result_exam_id").
		Joins("JOIN users u ON u.id = r.result_student_id")
	if f.ExamID != nil {
		base = base.Where("r.result_exam_id = ?", *f.ExamID)
	}
	if f.StudentID != nil {
		base = base.Where("r.result_student_id = ?", *f.StudentID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]ResultRow, 0)
	q := base.Select(`r.result_id, r.result_exam_id, r.result_student_id, r.result_score, r.result_created_at,
		e.exam_title, e.exam_subject, u.user_name, u.email, u.class_name`).
		Order("r.result_created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ScoresByExam → semua skor satu ujian (untuk ringkasan).
func (r *GormResultStore) ScoresByExam(ctx context.Context, examID uuid.UUID) ([]float64, error) {
	scores := make([]float64, 0)
	err := r.DB.WithContext(ctx).
		Model(&resultModel.ResultModel{}).
		Where("result_exam_id = ?", examID).
		Pluck("result_score", &scores).Error
	return scores, err
}
