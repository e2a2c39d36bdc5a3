package marketdata

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Interval is a vendor bar interval.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval1d  Interval = "1d"
	Interval1wk Interval = "1wk"
	Interval1mo Interval = "1mo"
)

func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case Interval1m, Interval5m, Interval15m, Interval30m, Interval1h,
		Interval1d, Interval1wk, Interval1mo:
		return Interval(s), nil
	}
	return "", fmt.Errorf("unsupported interval: %q", s)
}

func (iv Interval) String() string {
	return string(iv)
}

// Intraday reports whether bars of this interval are finer than one day.
func (iv Interval) Intraday() bool {
	switch iv {
	case Interval1m, Interval5m, Interval15m, Interval30m, Interval1h:
		return true
	}
	return false
}

// IntradayIntervals lists the intervals subject to bar retention.
func IntradayIntervals() []string {
	return []string{"1m", "5m", "15m", "30m", "1h"}
}

// PeriodsPerYear is the annualization factor for returns sampled at this
// interval. Intraday series fall back to the daily factor.
func (iv Interval) PeriodsPerYear() int {
	switch iv {
	case Interval1wk:
		return 52
	case Interval1mo:
		return 12
	default:
		return 252
	}
}

// Bar is one OHLCV bar.
type Bar struct {
	Symbol   string          `json:"symbol"`
	Interval Interval        `json:"interval"`
	TS       time.Time       `json:"ts"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
	AdjClose decimal.Decimal `json:"adj_close"`
	Volume   int64           `json:"volume"`
}

// Quote is the latest price for a symbol with its move since the prior close.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	PrevClose decimal.Decimal `json:"prev_close"`
	ChangePct float64         `json:"change_pct"`
	TS        time.Time       `json:"ts"`
}

// Closes extracts the close series from bars.
func Closes(bars []Bar) ([]time.Time, []float64) {
	stamps := make([]time.Time, 0, len(bars))
	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		stamps = append(stamps, b.TS)
		closes = append(closes, b.Close.InexactFloat64())
	}
	return stamps, closes
}

// --- Chart wire format ---------------------------------------------------

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta       chartMeta       `json:"meta"`
	Timestamp  []int64         `json:"timestamp"`
	Indicators chartIndicators `json:"indicators"`
}

type chartMeta struct {
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
}

type chartIndicators struct {
	Quote    []chartQuote    `json:"quote"`
	AdjClose []chartAdjClose `json:"adjclose"`
}

type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type chartAdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

// parseChart flattens a chart response into bars. Rows without a close are
// dropped; a missing result means no data for the requested window, which is
// returned as an empty slice rather than an error.
func parseChart(body []byte, symbol string, interval Interval) ([]Bar, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode chart response: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error (%s): %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return []Bar{}, nil
	}
	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return []Bar{}, nil
	}
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		closePx := at(quote.Close, i)
		if closePx == nil {
			continue
		}
		bar := Bar{
			Symbol:   symbol,
			Interval: interval,
			TS:       time.Unix(ts, 0).UTC(),
			Close:    decimal.NewFromFloat(*closePx),
		}
		if v := at(quote.Open, i); v != nil {
			bar.Open = decimal.NewFromFloat(*v)
		} else {
			bar.Open = bar.Close
		}
		if v := at(quote.High, i); v != nil {
			bar.High = decimal.NewFromFloat(*v)
		} else {
			bar.High = bar.Close
		}
		if v := at(quote.Low, i); v != nil {
			bar.Low = decimal.NewFromFloat(*v)
		} else {
			bar.Low = bar.Close
		}
		if v := at(adj, i); v != nil {
			bar.AdjClose = decimal.NewFromFloat(*v)
		} else {
			bar.AdjClose = bar.Close
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func at[T any](arr []*T, i int) *T {
	if i < 0 || i >= len(arr) {
		return nil
	}
	return arr[i]
}
