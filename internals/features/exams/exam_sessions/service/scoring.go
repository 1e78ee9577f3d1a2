package service

import (
	"github.com/google/uuid"

	sessionModel "smart_eujian_backend/internals/features/exams/exam_sessions/model"
	examModel "smart_eujian_backend/internals/features/exams/exams/model"
)

// ScoreAnswers menjumlahkan bobot soal pilihan ganda yang dijawab benar.
//   - questionId yang tidak dikenal dilewati
//   - essay tidak pernah dinilai otomatis
//   - pencocokan label case-sensitive, tanpa trim
//   - bobot ≤ 0 dihitung 1
func ScoreAnswers(questions []examModel.QuestionModel, answers []sessionModel.Answer) float64 {
	byID := make(map[uuid.UUID]*examModel.QuestionModel, len(questions))
	for i := range questions {
		byID[questions[i].QuestionID] = &questions[i]
	}

	total := 0
	for _, ans := range answers {
		q, ok := byID[ans.QuestionID]
		if !ok {
			continue
		}
		if !q.IsMultipleChoice() || ans.Kind != sessionModel.AnswerKindMultipleChoice {
			continue
		}
		chosen, correct := ans.Chosen(), q.CorrectLabel()
		if chosen == "" || correct == "" || chosen != correct {
			continue
		}
		total += q.EffectiveWeight()
	}
	return float64(total)
}
