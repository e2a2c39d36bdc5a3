package portfolio

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

// PortfolioKey labels the portfolio series in the normalized overlay, next
// to the per-ticker series.
const PortfolioKey = "PORTFOLIO"

// Request is a fully validated portfolio simulation order.
type Request struct {
	Tickers        []string
	Interval       marketdata.Interval
	Start          time.Time
	End            time.Time
	WeightsMode    string
	Weights        map[string]float64
	Rebalance      Schedule
	InitialCapital decimal.Decimal
}

// Correlation pairs the ticker order with the matrix rows.
type Correlation struct {
	Tickers []string    `json:"tickers"`
	Matrix  [][]float64 `json:"matrix"`
}

// Summary is what a finished simulation looks like on the wire.
type Summary struct {
	ID             string             `json:"id"`
	Tickers        []string           `json:"tickers"`
	Interval       string             `json:"interval"`
	Start          time.Time          `json:"start"`
	End            time.Time          `json:"end"`
	WeightsMode    string             `json:"weights_mode"`
	TargetWeights  map[string]float64 `json:"target_weights"`
	FinalWeights   map[string]float64 `json:"final_weights"`
	Rebalance      string             `json:"rebalance"`
	RebalanceCount int                `json:"rebalance_count"`
	RowCount       int                `json:"row_count"`
	InitialCapital decimal.Decimal    `json:"initial_capital"`
	FinalValue     decimal.Decimal    `json:"final_value"`
	Metrics        analytics.Metrics  `json:"metrics"`
	Values         []Point            `json:"values"`
	Normalized     map[string][]Point `json:"normalized"`
	AssetValues    map[string]float64 `json:"asset_values"`
	Correlation    Correlation        `json:"correlation"`
}

// Engine aligns history across tickers, simulates the rebalanced portfolio
// and records the run.
type Engine struct {
	Data   HistoryLoader
	Repo   repository.Repository
	Logger *zap.Logger
}

func (e *Engine) Run(ctx context.Context, req Request) (*Summary, error) {
	panel, err := BuildPanel(ctx, e.Data, req.Tickers, req.Interval, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	capital := req.InitialCapital.InexactFloat64()
	sim, err := Simulate(panel, req.Weights, capital, req.Rebalance)
	if err != nil {
		return nil, err
	}

	metrics, _ := analytics.Performance(sim.Values, 0, req.Interval.PeriodsPerYear())

	last := len(sim.Values) - 1
	finalWeights := make(map[string]float64, len(panel.Tickers))
	assetValues := make(map[string]float64, len(panel.Tickers))
	for _, t := range panel.Tickers {
		finalWeights[t] = sim.RealizedWeights[t][last]
		assetValues[t] = sim.AssetValues[t][last]
	}

	summary := &Summary{
		ID:             uuid.NewString(),
		Tickers:        panel.Tickers,
		Interval:       req.Interval.String(),
		Start:          req.Start,
		End:            req.End,
		WeightsMode:    req.WeightsMode,
		TargetWeights:  req.Weights,
		FinalWeights:   finalWeights,
		Rebalance:      string(req.Rebalance),
		RebalanceCount: sim.RebalanceCount,
		RowCount:       len(sim.Values),
		InitialCapital: req.InitialCapital,
		FinalValue:     decimal.NewFromFloat(sim.Values[last]),
		Metrics:        metrics,
		Values:         points(sim.Stamps, sim.Values),
		Normalized:     e.normalized(panel, sim),
		AssetValues:    assetValues,
		Correlation: Correlation{
			Tickers: panel.Tickers,
			Matrix:  analytics.CorrelationMatrix(panel.Tickers, panel.Returns()),
		},
	}

	e.record(ctx, summary)
	return summary, nil
}

// normalized rescales each asset's closes and the portfolio value to start
// at 1 so they overlay on one chart.
func (e *Engine) normalized(panel *Panel, sim *Simulation) map[string][]Point {
	out := make(map[string][]Point, len(panel.Tickers)+1)
	for _, t := range panel.Tickers {
		out[t] = points(panel.Stamps, rebase(panel.Column(t)))
	}
	out[PortfolioKey] = points(sim.Stamps, rebase(sim.Values))
	return out
}

func rebase(values []float64) []float64 {
	if len(values) == 0 || values[0] == 0 {
		return values
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / values[0]
	}
	return out
}

func points(stamps []time.Time, values []float64) []Point {
	out := make([]Point, len(values))
	for i := range values {
		out[i] = Point{TS: stamps[i], Value: values[i]}
	}
	return out
}

// record persists the run. Failures are logged, not surfaced: the result is
// already computed and history is an audit trail, not a dependency.
func (e *Engine) record(ctx context.Context, s *Summary) {
	if e.Repo == nil {
		return
	}
	tickersJSON, err := json.Marshal(s.Tickers)
	if err != nil {
		tickersJSON = []byte("[]")
	}
	weightsJSON, err := json.Marshal(s.TargetWeights)
	if err != nil {
		weightsJSON = []byte("{}")
	}
	metricsJSON, err := json.Marshal(s.Metrics)
	if err != nil {
		metricsJSON = []byte("{}")
	}
	run := &models.PortfolioRun{
		ID:             s.ID,
		Interval:       s.Interval,
		Tickers:        datatypes.JSON(tickersJSON),
		WeightsMode:    s.WeightsMode,
		Weights:        datatypes.JSON(weightsJSON),
		Rebalance:      s.Rebalance,
		StartDate:      s.Start,
		EndDate:        s.End,
		InitialCapital: s.InitialCapital,
		FinalValue:     s.FinalValue,
		RowCount:       s.RowCount,
		RebalanceCount: s.RebalanceCount,
		Metrics:        datatypes.JSON(metricsJSON),
		Status:         "ok",
	}
	if err := e.Repo.InsertPortfolioRun(ctx, run); err != nil && e.Logger != nil {
		e.Logger.Warn("portfolio run persist failed", zap.String("id", s.ID), zap.Error(err))
	}
}
