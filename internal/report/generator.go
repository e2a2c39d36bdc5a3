package report

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"quantdesk/internal/analytics"
	"quantdesk/internal/marketdata"
)

// HistoryLoader is the slice of the market-data service the generator needs.
type HistoryLoader interface {
	History(ctx context.Context, symbol string, interval marketdata.Interval, start, end time.Time) ([]marketdata.Bar, error)
}

// AssetReport is one ticker's section of the daily report. A ticker that
// returned no data carries only the error message.
type AssetReport struct {
	Open            float64
	Close           float64
	DailyVolatility float64
	MaxDrawdown     float64
	Error           string
}

func (a AssetReport) MarshalJSON() ([]byte, error) {
	if a.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{a.Error})
	}
	return json.Marshal(struct {
		Open            float64 `json:"open"`
		Close           float64 `json:"close"`
		DailyVolatility float64 `json:"daily_volatility"`
		MaxDrawdown     float64 `json:"max_drawdown"`
	}{a.Open, a.Close, a.DailyVolatility, a.MaxDrawdown})
}

// Report is the daily snapshot document written to disk.
type Report struct {
	Date        string                 `json:"date"`
	GeneratedAt time.Time              `json:"generated_at"`
	Assets      map[string]AssetReport `json:"assets"`
}

// Generator produces the daily snapshot report over a trailing window of
// daily bars.
type Generator struct {
	Data      HistoryLoader
	Logger    *zap.Logger
	Tickers   []string
	Lookback  int
	OutputDir string
}

// Generate builds the report for the given day and writes it to
// <output_dir>/<YYYY-MM-DD>_report.json, creating the directory on demand.
// A ticker with no data gets an error entry; a failed fetch fails the whole
// run.
func (g *Generator) Generate(ctx context.Context, day time.Time) (*Report, string, error) {
	day = day.UTC().Truncate(24 * time.Hour)
	lookback := g.Lookback
	if lookback <= 0 {
		lookback = 252
	}
	start := day.AddDate(0, 0, -lookback)

	rep := &Report{
		Date:        day.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC(),
		Assets:      make(map[string]AssetReport, len(g.Tickers)),
	}

	for _, ticker := range g.Tickers {
		bars, err := g.Data.History(ctx, ticker, marketdata.Interval1d, start, day)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", ticker, err)
		}
		if len(bars) == 0 {
			rep.Assets[ticker] = AssetReport{Error: "No data returned"}
			continue
		}
		rep.Assets[ticker] = assetMetrics(bars)
	}

	path, err := g.write(rep)
	if err != nil {
		return nil, "", err
	}
	if g.Logger != nil {
		g.Logger.Info("daily report written", zap.String("path", path))
	}
	return rep, path, nil
}

// assetMetrics condenses one ticker's window: latest open and close, the
// magnitude of the latest daily move, and the worst drawdown across the
// window.
func assetMetrics(bars []marketdata.Bar) AssetReport {
	_, closes := marketdata.Closes(bars)
	last := bars[len(bars)-1]

	var dailyVol float64
	if rets := analytics.Returns(closes); len(rets) > 0 {
		dailyVol = math.Abs(rets[len(rets)-1])
	}

	return AssetReport{
		Open:            last.Open.InexactFloat64(),
		Close:           last.Close.InexactFloat64(),
		DailyVolatility: dailyVol,
		MaxDrawdown:     analytics.MaxDrawdown(closes),
	}
}

func (g *Generator) write(rep *Report) (string, error) {
	dir := g.OutputDir
	if dir == "" {
		dir = "reports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	data, err := json.MarshalIndent(rep, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(dir, rep.Date+"_report.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
