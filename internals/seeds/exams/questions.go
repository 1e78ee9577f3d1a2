package exams

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	examModel "smart_eujian_backend/internals/features/exams/exams/model"
)

// BuildQuestions mengubah seed soal jadi model, soal yang bentuknya salah ditolak.
func BuildQuestions(seeds []QuestionSeed, creatorID uuid.UUID) ([]examModel.QuestionModel, error) {
	out := make([]examModel.QuestionModel, 0, len(seeds))
	for i, s := range seeds {
		qType := examModel.QuestionType(strings.ToUpper(strings.TrimSpace(s.QuestionType)))
		if qType == "" {
			qType = examModel.QuestionTypeMultipleChoice
		}

		creator := creatorID
		q := examModel.QuestionModel{
			QuestionCreatorID: &creator,
			QuestionText:      s.QuestionText,
			QuestionType:      qType,
			QuestionWeight:    s.Weight,
			QuestionOrder:     s.Order,
			QuestionIsActive:  true,
		}
		if q.QuestionWeight <= 0 {
			q.QuestionWeight = 1
		}
		if q.QuestionOrder <= 0 {
			q.QuestionOrder = i + 1
		}
		if len(s.Options) > 0 || s.CorrectAnswer != "" {
			if err := q.SetOptions(s.Options, s.CorrectAnswer); err != nil {
				return nil, fmt.Errorf("soal #%d: %w", i+1, err)
			}
		}
		if err := q.ValidateShape(); err != nil {
			return nil, fmt.Errorf("soal #%d: %w", i+1, err)
		}
		out = append(out, q)
	}
	return out, nil
}
