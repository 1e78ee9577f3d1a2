// file: internals/features/exams/results/service/result_summary.go
package service

import (
	"github.com/shopspring/decimal"
)

// ExamResultSummary: statistik nilai satu ujian.
type ExamResultSummary struct {
	Count   int             `json:"count"`
	Average decimal.Decimal `json:"average"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
}

// Summarize menghitung count/avg/min/max; rata-rata dibulatkan half-up 2 desimal.
// Tanpa data → semua nol.
func Summarize(scores []float64) ExamResultSummary {
	out := ExamResultSummary{Average: decimal.Zero, Min: decimal.Zero, Max: decimal.Zero}
	if len(scores) == 0 {
		return out
	}

	sum := decimal.Zero
	for i, s := range scores {
		d := decimal.NewFromFloat(s)
		sum = sum.Add(d)
		if i == 0 || d.LessThan(out.Min) {
			out.Min = d
		}
		if i == 0 || d.GreaterThan(out.Max) {
			out.Max = d
		}
	}
	out.Count = len(scores)
	out.Average = sum.Div(decimal.NewFromInt(int64(len(scores)))).Round(2)
	return out
}
