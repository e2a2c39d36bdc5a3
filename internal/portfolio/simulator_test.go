package portfolio

import (
	"errors"
	"math"
	"testing"
	"time"

	"quantdesk/internal/marketdata"
)

func testPanel(t *testing.T, tickers []string, closes [][]float64) *Panel {
	t.Helper()
	stamps := make([]time.Time, len(closes))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // a Monday
	for i := range stamps {
		stamps[i] = base.AddDate(0, 0, i)
	}
	return &Panel{
		Tickers:  tickers,
		Interval: marketdata.Interval1d,
		Stamps:   stamps,
		Closes:   closes,
	}
}

func TestSimulate_DriftWithoutRebalance(t *testing.T) {
	// AAA doubles, BBB is flat. Held positions drift with the market.
	panel := testPanel(t, []string{"AAA", "BBB"}, [][]float64{
		{10, 20},
		{20, 20},
	})
	weights := map[string]float64{"AAA": 0.5, "BBB": 0.5}

	sim, err := Simulate(panel, weights, 100, ScheduleNone)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if sim.RebalanceCount != 1 {
		t.Fatalf("rebalances=%d want=1", sim.RebalanceCount)
	}
	if sim.Values[0] != 100 {
		t.Fatalf("first=%v want=100", sim.Values[0])
	}
	if math.Abs(sim.Values[1]-150) > 1e-9 {
		t.Fatalf("last=%v want=150", sim.Values[1])
	}
	if math.Abs(sim.RealizedWeights["AAA"][1]-2.0/3.0) > 1e-9 {
		t.Fatalf("final AAA weight=%v want=2/3", sim.RealizedWeights["AAA"][1])
	}
}

func TestSimulate_MarksToMarketBeforeReallocating(t *testing.T) {
	// With daily rebalancing the day's gain must be in the portfolio value
	// before positions are reset to target.
	panel := testPanel(t, []string{"AAA", "BBB"}, [][]float64{
		{10, 20},
		{20, 20},
		{20, 20},
	})
	weights := map[string]float64{"AAA": 0.5, "BBB": 0.5}

	sim, err := Simulate(panel, weights, 100, ScheduleDaily)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if math.Abs(sim.Values[1]-150) > 1e-9 {
		t.Fatalf("day2=%v want=150", sim.Values[1])
	}
	// After the day-2 rebalance both legs hold 75.
	if math.Abs(sim.AssetValues["AAA"][1]-75) > 1e-9 || math.Abs(sim.AssetValues["BBB"][1]-75) > 1e-9 {
		t.Fatalf("asset values=%v/%v want 75/75", sim.AssetValues["AAA"][1], sim.AssetValues["BBB"][1])
	}
	if sim.RebalanceCount != 3 {
		t.Fatalf("rebalances=%d want=3", sim.RebalanceCount)
	}
}

func TestSimulate_FlatPricesStayAtCapital(t *testing.T) {
	panel := testPanel(t, []string{"AAA", "BBB"}, [][]float64{
		{10, 20},
		{10, 20},
		{10, 20},
	})
	weights := EqualWeights(panel.Tickers)

	sim, err := Simulate(panel, weights, 1000, ScheduleDaily)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for i, v := range sim.Values {
		if math.Abs(v-1000) > 1e-9 {
			t.Fatalf("values[%d]=%v want=1000", i, v)
		}
	}
	if len(sim.Returns) != 2 {
		t.Fatalf("returns len=%d want=2", len(sim.Returns))
	}
}

func TestSimulate_MissingWeight(t *testing.T) {
	panel := testPanel(t, []string{"AAA", "BBB"}, [][]float64{{10, 20}})
	_, err := Simulate(panel, map[string]float64{"AAA": 1}, 100, ScheduleNone)
	if err == nil {
		t.Fatalf("expected error for missing weight")
	}
}

func TestSimulate_BadCapital(t *testing.T) {
	panel := testPanel(t, []string{"AAA"}, [][]float64{{10}})
	if _, err := Simulate(panel, map[string]float64{"AAA": 1}, 0, ScheduleNone); err == nil {
		t.Fatalf("expected error for zero capital")
	}
}

func TestSimulate_EmptyPanel(t *testing.T) {
	_, err := Simulate(&Panel{}, map[string]float64{}, 100, ScheduleNone)
	if !errors.Is(err, ErrNoOverlap) {
		t.Fatalf("err=%v want=ErrNoOverlap", err)
	}
}
