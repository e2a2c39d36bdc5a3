package backtest

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"quantdesk/internal/analytics"
	"quantdesk/internal/marketdata"
)

// MACrossoverStrategy goes long while the short moving average is above the
// long one and short while it is below. The signal acts on the next bar.
type MACrossoverStrategy struct{}

func (s *MACrossoverStrategy) Name() string { return "ma_crossover" }

func (s *MACrossoverStrategy) DefaultParams() json.RawMessage {
	return json.RawMessage(`{"short_window":20,"long_window":50,"initial_capital":1000}`)
}

func (s *MACrossoverStrategy) Run(bars []marketdata.Bar, params Params) (*Result, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if params.InitialCapital.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: initial capital must be positive", ErrInvalidParams)
	}
	short := params.ShortWindow
	long := params.LongWindow
	if short <= 0 {
		short = 20
	}
	if long <= 0 {
		long = 50
	}
	if short >= long {
		return nil, fmt.Errorf("%w: short window (%d) must be below long window (%d)", ErrInvalidParams, short, long)
	}
	if long > len(bars) {
		return nil, fmt.Errorf("%w: not enough bars for a %d-bar window (have %d)", ErrInvalidParams, long, len(bars))
	}

	_, closes := marketdata.Closes(bars)
	shortMA := rollingMean(closes, short)
	longMA := rollingMean(closes, long)

	// Signal per bar once both windows are complete; position lags one bar
	// so the strategy only acts on information available at the close.
	signals := make([]int, len(bars))
	for i := long - 1; i < len(closes); i++ {
		switch {
		case shortMA[i] > longMA[i]:
			signals[i] = 1
		case shortMA[i] < longMA[i]:
			signals[i] = -1
		}
	}
	positions := make([]int, len(bars))
	for i := 1; i < len(positions); i++ {
		positions[i] = signals[i-1]
	}

	assetRets := analytics.Returns(closes)
	stratRets := make([]float64, len(assetRets))
	for i := range stratRets {
		stratRets[i] = float64(positions[i+1]) * assetRets[i]
	}
	equity := compound(bars, stratRets, params.InitialCapital.InexactFloat64())

	return &Result{
		Strategy:    s.Name(),
		Equity:      equity,
		Positions:   positions,
		FinalEquity: decimal.NewFromFloat(equity[len(equity)-1].Value),
	}, nil
}

// rollingMean leaves zeros until the window is complete.
func rollingMean(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	if window <= 0 || window > len(xs) {
		return out
	}
	var sum float64
	for i, x := range xs {
		sum += x
		if i >= window {
			sum -= xs[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}
