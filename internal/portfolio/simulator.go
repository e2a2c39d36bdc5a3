package portfolio

import (
	"fmt"
	"time"

	"quantdesk/internal/analytics"
)

// Point is one portfolio-value sample.
type Point struct {
	TS    time.Time `json:"ts"`
	Value float64   `json:"value"`
}

// Simulation tracks a rebalanced portfolio through the panel.
type Simulation struct {
	Stamps          []time.Time
	Values          []float64
	AssetValues     map[string][]float64
	RealizedWeights map[string][]float64
	Returns         []float64
	RebalanceCount  int
}

// Simulate walks the panel holding whole positions between rebalance rows.
// At each rebalance row the portfolio's current value is reallocated to the
// target weights at that row's prices; between rows holdings drift with the
// market.
func Simulate(panel *Panel, weights map[string]float64, capital float64, schedule Schedule) (*Simulation, error) {
	if panel == nil || len(panel.Closes) == 0 {
		return nil, ErrNoOverlap
	}
	if capital <= 0 {
		return nil, fmt.Errorf("initial capital must be positive")
	}
	for _, t := range panel.Tickers {
		if _, ok := weights[t]; !ok {
			return nil, fmt.Errorf("missing weight for %s", t)
		}
	}

	rebIdx, err := RebalanceIndexes(panel.Stamps, schedule)
	if err != nil {
		return nil, err
	}
	rebalance := make(map[int]bool, len(rebIdx))
	for _, i := range rebIdx {
		rebalance[i] = true
	}

	rows := len(panel.Closes)
	cols := len(panel.Tickers)
	sim := &Simulation{
		Stamps:          panel.Stamps,
		Values:          make([]float64, rows),
		AssetValues:     make(map[string][]float64, cols),
		RealizedWeights: make(map[string][]float64, cols),
	}
	for _, t := range panel.Tickers {
		sim.AssetValues[t] = make([]float64, rows)
		sim.RealizedWeights[t] = make([]float64, rows)
	}

	shares := make([]float64, cols)
	value := capital
	for r := 0; r < rows; r++ {
		prices := panel.Closes[r]
		if r > 0 {
			value = dot(shares, prices)
		}
		if rebalance[r] {
			for c, t := range panel.Tickers {
				if prices[c] > 0 {
					shares[c] = value * weights[t] / prices[c]
				} else {
					shares[c] = 0
				}
			}
			sim.RebalanceCount++
			value = dot(shares, prices)
		}
		sim.Values[r] = value
		for c, t := range panel.Tickers {
			av := shares[c] * prices[c]
			sim.AssetValues[t][r] = av
			if value > 0 {
				sim.RealizedWeights[t][r] = av / value
			}
		}
	}

	sim.Returns = analytics.Returns(sim.Values)
	return sim, nil
}

func dot(shares, prices []float64) float64 {
	var v float64
	for i := range shares {
		v += shares[i] * prices[i]
	}
	return v
}
