package portfolio

import (
	"context"
	"errors"
	"sort"
	"time"

	"quantdesk/internal/analytics"
	"quantdesk/internal/marketdata"
)

var ErrNoOverlap = errors.New("no overlapping data for tickers")

// HistoryLoader is the slice of the market-data service the panel needs.
type HistoryLoader interface {
	History(ctx context.Context, symbol string, interval marketdata.Interval, start, end time.Time) ([]marketdata.Bar, error)
}

// Panel is an aligned close-price matrix: one row per timestamp, one column
// per ticker.
type Panel struct {
	Tickers  []string
	Interval marketdata.Interval
	Stamps   []time.Time
	Closes   [][]float64
}

// BuildPanel loads close series for every ticker and aligns them on common
// timestamps. Intraday series are forward-filled before alignment, since
// venues disagree about which minutes traded; daily and coarser series are
// intersected as-is. Rows where any ticker is still missing are dropped.
func BuildPanel(ctx context.Context, loader HistoryLoader, tickers []string, interval marketdata.Interval, start, end time.Time) (*Panel, error) {
	series := make([]map[int64]float64, len(tickers))
	stampSet := map[int64]struct{}{}
	for i, t := range tickers {
		bars, err := loader.History(ctx, t, interval, start, end)
		if err != nil {
			return nil, err
		}
		col := make(map[int64]float64, len(bars))
		for _, b := range bars {
			ts := b.TS.Unix()
			col[ts] = b.Close.InexactFloat64()
			stampSet[ts] = struct{}{}
		}
		series[i] = col
	}

	if len(stampSet) == 0 {
		return nil, ErrNoOverlap
	}
	union := make([]int64, 0, len(stampSet))
	for ts := range stampSet {
		union = append(union, ts)
	}
	sort.Slice(union, func(i, j int) bool { return union[i] < union[j] })

	ffill := interval.Intraday()
	stamps := make([]time.Time, 0, len(union))
	rows := make([][]float64, 0, len(union))
	last := make([]float64, len(tickers))
	seen := make([]bool, len(tickers))
	for _, ts := range union {
		row := make([]float64, len(tickers))
		complete := true
		for i := range tickers {
			v, ok := series[i][ts]
			if ok {
				last[i] = v
				seen[i] = true
			} else if ffill && seen[i] {
				v = last[i]
				ok = true
			}
			if !ok {
				complete = false
				break
			}
			row[i] = v
		}
		if !complete {
			continue
		}
		stamps = append(stamps, time.Unix(ts, 0).UTC())
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoOverlap
	}
	return &Panel{
		Tickers:  append([]string(nil), tickers...),
		Interval: interval,
		Stamps:   stamps,
		Closes:   rows,
	}, nil
}

// Column returns the close series for one ticker.
func (p *Panel) Column(ticker string) []float64 {
	for i, t := range p.Tickers {
		if t == ticker {
			col := make([]float64, len(p.Closes))
			for r := range p.Closes {
				col[r] = p.Closes[r][i]
			}
			return col
		}
	}
	return nil
}

// Returns computes the per-ticker simple return series.
func (p *Panel) Returns() map[string][]float64 {
	out := make(map[string][]float64, len(p.Tickers))
	for _, t := range p.Tickers {
		out[t] = analytics.Returns(p.Column(t))
	}
	return out
}
