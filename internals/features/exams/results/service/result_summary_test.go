package service

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		scores        []float64
		count         int
		avg, min, max string
	}{
		{"empty", nil, 0, "0", "0", "0"},
		{"single", []float64{7}, 1, "7", "7", "7"},
		{"rounds half up", []float64{1, 2, 2}, 3, "1.67", "1", "2"},
		{"exact half", []float64{0.125, 0.125}, 2, "0.13", "0.125", "0.125"},
		{"spread", []float64{10, 0, 5, 3}, 4, "4.5", "0", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.scores)
			if got.Count != tt.count {
				t.Errorf("Count = %d, want %d", got.Count, tt.count)
			}
			if got.Average.String() != tt.avg {
				t.Errorf("Average = %s, want %s", got.Average, tt.avg)
			}
			if got.Min.String() != tt.min || got.Max.String() != tt.max {
				t.Errorf("Min/Max = %s/%s, want %s/%s", got.Min, got.Max, tt.min, tt.max)
			}
		})
	}
}
