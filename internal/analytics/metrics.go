package analytics

import "math"

// Metrics summarizes an equity curve.
type Metrics struct {
	TotalReturn          float64 `json:"total_return"`
	AnnualizedReturn     float64 `json:"annualized_return"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	MaxDrawdown          float64 `json:"max_drawdown"`
}

// Returns computes simple period returns. A zero previous value yields a
// zero return for that period.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			out[i-1] = 0
			continue
		}
		out[i-1] = values[i]/prev - 1
	}
	return out
}

// Performance computes equity-curve metrics. The annualized return is
// geometric over periodsPerYear, volatility is the sample standard deviation
// of period returns scaled by sqrt(periodsPerYear), and Sharpe compares the
// annualized return against riskFree. ok is false when the curve is too
// short to measure.
func Performance(equity []float64, riskFree float64, periodsPerYear int) (Metrics, bool) {
	if len(equity) < 2 || equity[0] == 0 {
		return Metrics{}, false
	}
	if periodsPerYear <= 0 {
		periodsPerYear = 252
	}

	rets := Returns(equity)
	total := equity[len(equity)-1]/equity[0] - 1
	ann := math.Pow(1+total, float64(periodsPerYear)/float64(len(rets))) - 1
	vol := SampleStd(rets) * math.Sqrt(float64(periodsPerYear))

	sharpe := 0.0
	if vol != 0 {
		sharpe = (ann - riskFree) / vol
	}

	return Metrics{
		TotalReturn:          total,
		AnnualizedReturn:     ann,
		AnnualizedVolatility: vol,
		SharpeRatio:          sharpe,
		MaxDrawdown:          MaxDrawdown(equity),
	}, true
}

// MaxDrawdown is the largest peak-to-trough decline of the series,
// expressed as a non-positive fraction.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	peak := values[0]
	worst := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak == 0 {
			continue
		}
		dd := v/peak - 1
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// SampleStd is the standard deviation with Bessel's correction.
func SampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
