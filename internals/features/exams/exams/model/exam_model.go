// file: internals/features/exams/exams/model/exam_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ExamModel struct {
	ExamID              uuid.UUID  `gorm:"column:exam_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_id"`
	ExamTitle           string     `gorm:"column:exam_title;type:varchar(200);not null" json:"exam_title"`
	ExamDescription     *string    `gorm:"column:exam_description;type:text" json:"exam_description,omitempty"`
	ExamSubject         *string    `gorm:"column:exam_subject;type:varchar(100)" json:"exam_subject,omitempty"`
	ExamDurationMinutes int        `gorm:"column:exam_duration_minutes;not null;default:60" json:"exam_duration_minutes"`
	ExamStartTime       *time.Time `gorm:"column:exam_start_time" json:"exam_start_time,omitempty"`
	ExamEndTime         *time.Time `gorm:"column:exam_end_time" json:"exam_end_time,omitempty"`
	ExamIsActive        bool       `gorm:"column:exam_is_active;not null;default:true" json:"exam_is_active"`
	// NULL = untuk semua kelas
	ExamTargetClass *string   `gorm:"column:exam_target_class;type:varchar(50)" json:"exam_target_class,omitempty"`
	ExamCreatorID   uuid.UUID `gorm:"column:exam_creator_id;type:uuid;not null;index" json:"exam_creator_id"`

	ExamCreatedAt time.Time `gorm:"column:exam_created_at;autoCreateTime" json:"exam_created_at"`
	ExamUpdatedAt time.Time `gorm:"column:exam_updated_at;autoUpdateTime" json:"exam_updated_at"`

	// Urut question_order ASC lalu question_created_at ASC (lihat catalog repository)
	Questions []QuestionModel `gorm:"foreignKey:QuestionExamID;references:ExamID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (ExamModel) TableName() string { return "exams" }
