// file: internals/features/exams/results/model/result_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ResultModel: nilai akhir; maksimal 1 row per (exam, student).
type ResultModel struct {
	ResultID        uuid.UUID `gorm:"column:result_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"result_id"`
	ResultExamID    uuid.UUID `gorm:"column:result_exam_id;type:uuid;not null;uniqueIndex:uq_results_exam_student,priority:1" json:"result_exam_id"`
	ResultStudentID uuid.UUID `gorm:"column:result_student_id;type:uuid;not null;uniqueIndex:uq_results_exam_student,priority:2;index" json:"result_student_id"`
	ResultScore     float64   `gorm:"column:result_score;type:double precision;not null;default:0" json:"result_score"`

	ResultCreatedAt time.Time `gorm:"column:result_created_at;autoCreateTime" json:"result_created_at"`
	ResultUpdatedAt time.Time `gorm:"column:result_updated_at;autoUpdateTime" json:"result_updated_at"`
}

func (ResultModel) TableName() string { return "results" }
