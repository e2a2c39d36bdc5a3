package backtest

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quantdesk/internal/marketdata"
)

var (
	ErrNoData          = errors.New("no data returned")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrInvalidParams   = errors.New("invalid params")
)

// Params are the knobs a strategy accepts. Strategies ignore fields they do
// not use.
type Params struct {
	ShortWindow    int             `json:"short_window,omitempty"`
	LongWindow     int             `json:"long_window,omitempty"`
	InitialCapital decimal.Decimal `json:"initial_capital"`
}

// Point is one equity-curve sample.
type Point struct {
	TS    time.Time `json:"ts"`
	Value float64   `json:"value"`
}

// Result is a strategy run over a bar series. Positions is per-bar exposure
// (+1 long, -1 short, 0 flat) for strategies that trade in and out.
type Result struct {
	Strategy    string          `json:"strategy"`
	Equity      []Point         `json:"equity"`
	Positions   []int           `json:"positions,omitempty"`
	FinalEquity decimal.Decimal `json:"final_equity"`
}

// Strategy turns a bar series into an equity curve.
type Strategy interface {
	Name() string
	DefaultParams() json.RawMessage
	Run(bars []marketdata.Bar, params Params) (*Result, error)
}

var registry = []Strategy{
	&BuyAndHoldStrategy{},
	&MACrossoverStrategy{},
}

// Strategies lists the registered strategies in a stable order.
func Strategies() []Strategy {
	out := make([]Strategy, len(registry))
	copy(out, registry)
	return out
}

// Lookup resolves a strategy by name.
func Lookup(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range registry {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, ErrUnknownStrategy
}

// compound builds an equity curve from per-bar strategy returns. The first
// bar anchors the curve at the initial capital.
func compound(bars []marketdata.Bar, rets []float64, capital float64) []Point {
	equity := make([]Point, len(bars))
	value := capital
	for i, b := range bars {
		if i > 0 {
			value *= 1 + rets[i-1]
		}
		equity[i] = Point{TS: b.TS, Value: value}
	}
	return equity
}
