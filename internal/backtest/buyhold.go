package backtest

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"quantdesk/internal/analytics"
	"quantdesk/internal/marketdata"
)

// BuyAndHoldStrategy holds the asset for the whole window.
type BuyAndHoldStrategy struct{}

func (s *BuyAndHoldStrategy) Name() string { return "buy_and_hold" }

func (s *BuyAndHoldStrategy) DefaultParams() json.RawMessage {
	return json.RawMessage(`{"initial_capital":1000}`)
}

func (s *BuyAndHoldStrategy) Run(bars []marketdata.Bar, params Params) (*Result, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if params.InitialCapital.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: initial capital must be positive", ErrInvalidParams)
	}

	_, closes := marketdata.Closes(bars)
	rets := analytics.Returns(closes)
	equity := compound(bars, rets, params.InitialCapital.InexactFloat64())

	return &Result{
		Strategy:    s.Name(),
		Equity:      equity,
		FinalEquity: decimal.NewFromFloat(equity[len(equity)-1].Value),
	}, nil
}
