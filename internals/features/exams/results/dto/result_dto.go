// file: internals/features/exams/results/dto/result_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	resultRepo "smart_eujian_backend/internals/features/exams/results/repository"
)

type ResultExam struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Subject *string   `json:"subject,omitempty"`
}

type ResultStudent struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ClassName *string   `json:"className,omitempty"`
}

type ResultItem struct {
	ID        uuid.UUID      `json:"id"`
	ExamID    uuid.UUID      `json:"examId"`
	StudentID uuid.UUID      `json:"studentId"`
	Score     float64        `json:"score"`
	CreatedAt time.Time      `json:"createdAt"`
	Exam      ResultExam     `json:"exam"`
	Student   *ResultStudent `json:"student,omitempty"`
}

// FromResultRows; withStudent=false untuk /results/my (data diri sendiri).
func FromResultRows(rows []resultRepo.ResultRow, withStudent bool) []ResultItem {
	out := make([]ResultItem, 0, len(rows))
	for _, r := range rows {
		item := ResultItem{
			ID:        r.ResultID,
			ExamID:    r.ResultExamID,
			StudentID: r.ResultStudentID,
			Score:     r.ResultScore,
			CreatedAt: r.ResultCreatedAt,
			Exam:      ResultExam{ID: r.ResultExamID, Title: r.ExamTitle, Subject: r.ExamSubject},
		}
		if withStudent {
			item.Student = &ResultStudent{
				ID:        r.ResultStudentID,
				Name:      r.StudentName,
				Email:     r.StudentEmail,
				ClassName: r.StudentClassName,
			}
		}
		out = append(out, item)
	}
	return out
}
