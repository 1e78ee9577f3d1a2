// file: internals/features/exams/exams/repository/catalog_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	examModel "smart_eujian_backend/internals/features/exams/exams/model"
)

// GormCatalog membaca ujian + soal langsung dari Postgres (read-only).
type GormCatalog struct {
	DB *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{DB: db}
}

// ResolveExam → (nil, nil) kalau ujian tidak ada.
func (r *GormCatalog) ResolveExam(ctx context.Context, examID uuid.UUID) (*examModel.ExamModel, error) {
	var exam examModel.ExamModel
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("question_order ASC").Order("question_created_at ASC")
		}).
		Where("exam_id = ?", examID).
		Take(&exam).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exam, nil
}
