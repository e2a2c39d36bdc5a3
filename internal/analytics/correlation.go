package analytics

import "math"

// CorrelationMatrix computes pairwise Pearson correlation of the return
// series, in the given ticker order. Series are truncated to the shortest
// length; a zero-variance series correlates 0 with everything but itself.
func CorrelationMatrix(tickers []string, returns map[string][]float64) [][]float64 {
	n := len(tickers)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	if n == 0 {
		return matrix
	}

	minLen := -1
	for _, t := range tickers {
		l := len(returns[t])
		if minLen < 0 || l < minLen {
			minLen = l
		}
	}
	if minLen <= 1 {
		for i := range matrix {
			matrix[i][i] = 1
		}
		return matrix
	}

	for i := 0; i < n; i++ {
		matrix[i][i] = 1
		for j := i + 1; j < n; j++ {
			c := pearson(returns[tickers[i]][:minLen], returns[tickers[j]][:minLen])
			matrix[i][j] = c
			matrix[j][i] = c
		}
	}
	return matrix
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 0
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n

	var cov, vx, vy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}
