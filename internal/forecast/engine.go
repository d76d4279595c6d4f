package forecast

import (
	"errors"
	"math"
)

// minObservations is the smallest number of sale-days the regression needs;
// below it the average fallback is used.
const minObservations = 3

type Confidence string

const (
	ConfidenceLow  Confidence = "low"
	ConfidenceHigh Confidence = "high"
)

type Method string

const (
	MethodRegression Method = "regression"
	MethodAverage    Method = "average"
)

var ErrDegenerateFit = errors.New("degenerate regression fit")

// Prediction is the next-day demand estimate for one menu item.
type Prediction struct {
	PredictedQty  int
	Confidence    Confidence
	AvgDailySales int // secondary signal, meaningful when Confidence is high
	Method        Method
	// FitErr is set when the regression failed and the average fallback was
	// used despite enough observations; it is recorded, never propagated.
	FitErr error
}

// Predict estimates next-day demand from the observed sale-day quantities.
// Sale-days are indexed sequentially (0..n-1), ignoring calendar gaps between
// them; the reporting side has always worked this way and changing it needs
// product sign-off. The prediction is evaluated one step past the last
// observed index and is never negative.
func Predict(quantities []int) Prediction {
	n := len(quantities)
	avg := roundedMean(quantities)

	if n < minObservations {
		return Prediction{
			PredictedQty:  avg,
			Confidence:    ConfidenceLow,
			AvgDailySales: avg,
			Method:        MethodAverage,
		}
	}

	coeffs, err := polyfit(quantities)
	if err != nil {
		return Prediction{
			PredictedQty:  avg,
			Confidence:    ConfidenceLow,
			AvgDailySales: avg,
			Method:        MethodAverage,
			FitErr:        err,
		}
	}

	x := float64(n)
	y := coeffs[0] + coeffs[1]*x + coeffs[2]*x*x
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return Prediction{
			PredictedQty:  avg,
			Confidence:    ConfidenceLow,
			AvgDailySales: avg,
			Method:        MethodAverage,
			FitErr:        ErrDegenerateFit,
		}
	}
	if y < 0 {
		y = 0
	}

	return Prediction{
		PredictedQty:  int(math.Round(y)),
		Confidence:    ConfidenceHigh,
		AvgDailySales: avg,
		Method:        MethodRegression,
	}
}

func roundedMean(quantities []int) int {
	if len(quantities) == 0 {
		return 0
	}
	sum := 0
	for _, q := range quantities {
		sum += q
	}
	return int(math.Round(float64(sum) / float64(len(quantities))))
}

// polyfit fits y = c0 + c1*x + c2*x^2 by ordinary least squares over
// x = 0..n-1, solving the 3x3 normal equations with Gaussian elimination and
// partial pivoting.
func polyfit(quantities []int) ([3]float64, error) {
	// power sums of x and moments of y
	var s [5]float64 // s[k] = sum x^k
	var t [3]float64 // t[k] = sum y * x^k
	for i, q := range quantities {
		x := float64(i)
		y := float64(q)
		xp := 1.0
		for k := 0; k < 5; k++ {
			s[k] += xp
			if k < 3 {
				t[k] += y * xp
			}
			xp *= x
		}
	}

	a := [3][4]float64{
		{s[0], s[1], s[2], t[0]},
		{s[1], s[2], s[3], t[1]},
		{s[2], s[3], s[4], t[2]},
	}

	const eps = 1e-12
	for col := 0; col < 3; col++ {
		pivot := col
		for row := col + 1; row < 3; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < eps {
			return [3]float64{}, ErrDegenerateFit
		}
		a[col], a[pivot] = a[pivot], a[col]

		for row := col + 1; row < 3; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < 4; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}

	var coeffs [3]float64
	for row := 2; row >= 0; row-- {
		v := a[row][3]
		for k := row + 1; k < 3; k++ {
			v -= a[row][k] * coeffs[k]
		}
		coeffs[row] = v / a[row][row]
		if math.IsNaN(coeffs[row]) || math.IsInf(coeffs[row], 0) {
			return [3]float64{}, ErrDegenerateFit
		}
	}

	return coeffs, nil
}
