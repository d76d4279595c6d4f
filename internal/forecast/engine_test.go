package forecast

import "testing"

func TestPredict_EmptyHistory(t *testing.T) {
	p := Predict(nil)
	if p.PredictedQty != 0 {
		t.Errorf("expected 0, got %d", p.PredictedQty)
	}
	if p.Confidence != ConfidenceLow {
		t.Errorf("expected low confidence, got %s", p.Confidence)
	}
	if p.Method != MethodAverage {
		t.Errorf("expected average method, got %s", p.Method)
	}
}

func TestPredict_SparseHistoryUsesAverage(t *testing.T) {
	cases := []struct {
		name       string
		quantities []int
		want       int
	}{
		{"single day", []int{4}, 4},
		{"two days", []int{2, 3}, 3}, // round(2.5)
		{"two equal days", []int{7, 7}, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Predict(tc.quantities)
			if p.Confidence != ConfidenceLow {
				t.Errorf("expected low confidence, got %s", p.Confidence)
			}
			if p.Method != MethodAverage {
				t.Errorf("expected average method, got %s", p.Method)
			}
			if p.PredictedQty != tc.want {
				t.Errorf("expected %d, got %d", tc.want, p.PredictedQty)
			}
			if p.FitErr != nil {
				t.Errorf("unexpected fit error: %v", p.FitErr)
			}
		})
	}
}

func TestPredict_LinearTrend(t *testing.T) {
	p := Predict([]int{2, 4, 6, 8, 10})
	if p.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence, got %s", p.Confidence)
	}
	if p.Method != MethodRegression {
		t.Errorf("expected regression method, got %s", p.Method)
	}
	// y = 2 + 2x fits exactly, predicted at x = 5
	if p.PredictedQty != 12 {
		t.Errorf("expected 12, got %d", p.PredictedQty)
	}
	if p.AvgDailySales != 6 {
		t.Errorf("expected avg 6, got %d", p.AvgDailySales)
	}
	if p.FitErr != nil {
		t.Errorf("unexpected fit error: %v", p.FitErr)
	}
}

func TestPredict_FlatTrend(t *testing.T) {
	p := Predict([]int{5, 5, 5, 5})
	if p.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence, got %s", p.Confidence)
	}
	if p.PredictedQty != 5 {
		t.Errorf("expected 5, got %d", p.PredictedQty)
	}
	if p.AvgDailySales != 5 {
		t.Errorf("expected avg 5, got %d", p.AvgDailySales)
	}
}

func TestPredict_QuadraticTrend(t *testing.T) {
	// y = (x+1)^2 fits exactly, predicted at x = 5 is 36
	p := Predict([]int{1, 4, 9, 16, 25})
	if p.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence, got %s", p.Confidence)
	}
	if p.PredictedQty != 36 {
		t.Errorf("expected 36, got %d", p.PredictedQty)
	}
}

func TestPredict_NeverNegative(t *testing.T) {
	// y = 10 - 4x extrapolates to -2 at x = 3; must clamp to 0
	p := Predict([]int{10, 6, 2})
	if p.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence, got %s", p.Confidence)
	}
	if p.PredictedQty != 0 {
		t.Errorf("expected clamped prediction 0, got %d", p.PredictedQty)
	}
}

func TestPredict_NoisyHistoryStaysNonNegative(t *testing.T) {
	histories := [][]int{
		{1, 50, 1, 50, 1, 50},
		{100, 1, 1, 1, 1},
		{3, 1, 4, 1, 5, 9, 2, 6},
	}
	for _, h := range histories {
		if p := Predict(h); p.PredictedQty < 0 {
			t.Errorf("negative prediction %d for %v", p.PredictedQty, h)
		}
	}
}
