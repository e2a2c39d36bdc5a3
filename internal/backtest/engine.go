package backtest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"quantdesk/internal/analytics"
	"quantdesk/internal/marketdata"
	"quantdesk/internal/models"
	"quantdesk/internal/repository"
)

// Request is a fully validated backtest order.
type Request struct {
	Symbol   string
	Interval marketdata.Interval
	Start    time.Time
	End      time.Time
	Strategy string
	Params   Params
}

// Summary is what a finished run looks like on the wire.
type Summary struct {
	ID               string            `json:"id"`
	Symbol           string            `json:"symbol"`
	Interval         string            `json:"interval"`
	Start            time.Time         `json:"start"`
	End              time.Time         `json:"end"`
	Strategy         string            `json:"strategy"`
	Params           Params            `json:"params"`
	BarCount         int               `json:"bar_count"`
	FinalEquity      decimal.Decimal   `json:"final_equity"`
	Metrics          analytics.Metrics `json:"metrics"`
	Equity           []Point           `json:"equity"`
	NormalizedEquity []Point           `json:"normalized_equity"`
	Positions        []int             `json:"positions,omitempty"`
}

// Engine loads history, runs a strategy over it and records the run.
type Engine struct {
	Data     *marketdata.Service
	Repo     repository.Repository
	Logger   *zap.Logger
	RiskFree float64
}

func (e *Engine) Run(ctx context.Context, req Request) (*Summary, error) {
	strat, err := Lookup(req.Strategy)
	if err != nil {
		return nil, err
	}

	bars, err := e.Data.History(ctx, req.Symbol, req.Interval, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	result, err := strat.Run(bars, req.Params)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(result.Equity))
	for i, p := range result.Equity {
		values[i] = p.Value
	}
	metrics, _ := analytics.Performance(values, e.RiskFree, req.Interval.PeriodsPerYear())

	summary := &Summary{
		ID:               uuid.NewString(),
		Symbol:           bars[0].Symbol,
		Interval:         req.Interval.String(),
		Start:            req.Start,
		End:              req.End,
		Strategy:         strat.Name(),
		Params:           req.Params,
		BarCount:         len(bars),
		FinalEquity:      result.FinalEquity,
		Metrics:          metrics,
		Equity:           result.Equity,
		NormalizedEquity: normalize(result.Equity, bars),
		Positions:        result.Positions,
	}

	e.record(ctx, summary)
	return summary, nil
}

// normalize rescales the equity curve onto the price axis so both can share
// one chart: equity/equity[0] * close[0].
func normalize(equity []Point, bars []marketdata.Bar) []Point {
	if len(equity) == 0 || equity[0].Value == 0 {
		return nil
	}
	base := bars[0].Close.InexactFloat64()
	out := make([]Point, len(equity))
	for i, p := range equity {
		out[i] = Point{TS: p.TS, Value: p.Value / equity[0].Value * base}
	}
	return out
}

// record persists the run. Failures are logged, not surfaced: the result is
// already computed and history is an audit trail, not a dependency.
func (e *Engine) record(ctx context.Context, s *Summary) {
	if e.Repo == nil {
		return
	}
	paramsJSON, err := json.Marshal(s.Params)
	if err != nil {
		paramsJSON = []byte("{}")
	}
	metricsJSON, err := json.Marshal(s.Metrics)
	if err != nil {
		metricsJSON = []byte("{}")
	}
	run := &models.BacktestRun{
		ID:             s.ID,
		Symbol:         s.Symbol,
		Interval:       s.Interval,
		Strategy:       s.Strategy,
		StartDate:      s.Start,
		EndDate:        s.End,
		Params:         datatypes.JSON(paramsJSON),
		InitialCapital: s.Params.InitialCapital,
		FinalEquity:    s.FinalEquity,
		BarCount:       s.BarCount,
		Metrics:        datatypes.JSON(metricsJSON),
		Status:         "ok",
	}
	if err := e.Repo.InsertBacktestRun(ctx, run); err != nil && e.Logger != nil {
		e.Logger.Warn("backtest run persist failed", zap.String("id", s.ID), zap.Error(err))
	}
}
