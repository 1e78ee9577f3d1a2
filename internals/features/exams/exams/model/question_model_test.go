package model

import (
	"testing"

	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func TestQuestionValidateShape(t *testing.T) {
	cases := []struct {
		name    string
		q       QuestionModel
		wantErr bool
	}{
		{
			name: "valid multiple choice",
			q: QuestionModel{QuestionText: "1+1?", QuestionType: QuestionTypeMultipleChoice,
				QuestionOptions: datatypes.JSON(`{"A":"2","B":"3"}`), QuestionCorrectAnswer: strPtr("A")},
		},
		{
			name: "correct label missing from options",
			q: QuestionModel{QuestionText: "1+1?", QuestionType: QuestionTypeMultipleChoice,
				QuestionOptions: datatypes.JSON(`{"A":"2","B":"3"}`), QuestionCorrectAnswer: strPtr("C")},
			wantErr: true,
		},
		{
			name: "label is case sensitive",
			q: QuestionModel{QuestionText: "1+1?", QuestionType: QuestionTypeMultipleChoice,
				QuestionOptions: datatypes.JSON(`{"A":"2","B":"3"}`), QuestionCorrectAnswer: strPtr("a")},
			wantErr: true,
		},
		{
			name:    "multiple choice without options",
			q:       QuestionModel{QuestionText: "x", QuestionType: QuestionTypeMultipleChoice, QuestionCorrectAnswer: strPtr("A")},
			wantErr: true,
		},
		{
			name: "valid essay",
			q:    QuestionModel{QuestionText: "Jelaskan fotosintesis", QuestionType: QuestionTypeEssay},
		},
		{
			name:    "essay with answer key",
			q:       QuestionModel{QuestionText: "x", QuestionType: QuestionTypeEssay, QuestionCorrectAnswer: strPtr("A")},
			wantErr: true,
		},
		{
			name:    "unknown type",
			q:       QuestionModel{QuestionText: "x", QuestionType: "TRUE_FALSE"},
			wantErr: true,
		},
		{
			name:    "empty text",
			q:       QuestionModel{QuestionType: QuestionTypeEssay},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.ValidateShape()
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateShape() err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestEffectiveWeight(t *testing.T) {
	for _, tc := range []struct{ weight, want int }{{5, 5}, {1, 1}, {0, 1}, {-3, 1}} {
		q := QuestionModel{QuestionWeight: tc.weight}
		if got := q.EffectiveWeight(); got != tc.want {
			t.Errorf("EffectiveWeight(%d) = %d, want %d", tc.weight, got, tc.want)
		}
	}
}
