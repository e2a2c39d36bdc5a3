package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"quantdesk/internal/config"
	"quantdesk/internal/marketdata"
	"quantdesk/internal/portfolio"
)

// stubHistory hands out canned bars per symbol.
type stubHistory struct {
	bars map[string][]marketdata.Bar
}

func (s stubHistory) History(ctx context.Context, symbol string, interval marketdata.Interval, start, end time.Time) ([]marketdata.Bar, error) {
	return s.bars[symbol], nil
}

func dailyBars(t *testing.T, symbol string, closes ...float64) []marketdata.Bar {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]marketdata.Bar, len(closes))
	for i, c := range closes {
		out[i] = marketdata.Bar{
			Symbol:   symbol,
			Interval: marketdata.Interval1d,
			TS:       base.AddDate(0, 0, i),
			Close:    decimal.NewFromFloat(c),
		}
	}
	return out
}

func newPortfolioRouter(t *testing.T, loader portfolio.HistoryLoader, repo *stubRepo) *gin.Engine {
	t.Helper()
	h := &PortfolioHandler{
		Engine:   &portfolio.Engine{Data: loader},
		Defaults: config.PortfolioConfig{MinAssets: 3, Rebalance: "none", InitialCapital: 9000},
	}
	if repo != nil {
		h.Repo = repo
		h.Engine.Repo = repo
	}
	return newTestEngine(t, h)
}

func threeAssetLoader(t *testing.T) stubHistory {
	t.Helper()
	return stubHistory{bars: map[string][]marketdata.Bar{
		"AAA": dailyBars(t, "AAA", 10, 20),
		"BBB": dailyBars(t, "BBB", 20, 20),
		"CCC": dailyBars(t, "CCC", 30, 30),
	}}
}

type portfolioSummary struct {
	ID            string             `json:"id"`
	Tickers       []string           `json:"tickers"`
	WeightsMode   string             `json:"weights_mode"`
	TargetWeights map[string]float64 `json:"target_weights"`
	Rebalance     string             `json:"rebalance"`
	RowCount      int                `json:"row_count"`
	FinalValue    decimal.Decimal    `json:"final_value"`
}

func TestRunPortfolio(t *testing.T) {
	r := newPortfolioRouter(t, threeAssetLoader(t), nil)

	body := `{"tickers":["aaa","bbb","ccc"],"interval":"1d","start":"2024-01-01","end":"2024-01-10"}`
	rr := doRequest(t, r, http.MethodPost, "/api/v1/portfolios", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rr.Code, rr.Body.String())
	}
	var sum portfolioSummary
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.WeightsMode != "equal" || sum.Rebalance != "none" || sum.RowCount != 2 {
		t.Fatalf("summary=%+v", sum)
	}
	// 3000 in each asset; AAA doubles: 6000 + 3000 + 3000.
	if !sum.FinalValue.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("final_value=%s", sum.FinalValue)
	}
	if len(sum.Tickers) != 3 || sum.Tickers[0] != "AAA" {
		t.Fatalf("tickers=%v", sum.Tickers)
	}
}

func TestRunPortfolio_CustomWeights(t *testing.T) {
	r := newPortfolioRouter(t, threeAssetLoader(t), nil)

	body := `{"tickers":["AAA","BBB","CCC"],"weights_mode":"custom","weights":"AAA:2,BBB:1,CCC:1","start":"2024-01-01","end":"2024-01-10"}`
	rr := doRequest(t, r, http.MethodPost, "/api/v1/portfolios", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rr.Code, rr.Body.String())
	}
	var sum portfolioSummary
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.TargetWeights["AAA"] != 0.5 || sum.TargetWeights["BBB"] != 0.25 {
		t.Fatalf("weights=%v", sum.TargetWeights)
	}
}

func TestRunPortfolio_Validation(t *testing.T) {
	r := newPortfolioRouter(t, threeAssetLoader(t), nil)

	cases := []struct {
		name string
		body string
	}{
		{"bad body", `not json`},
		{"too few tickers", `{"tickers":["AAPL","MSFT"]}`},
		{"duplicates collapse", `{"tickers":["aapl","AAPL","msft"]}`},
		{"weekly bars rejected", `{"tickers":["AAA","BBB","CCC"],"interval":"1wk"}`},
		{"bad weights mode", `{"tickers":["AAA","BBB","CCC"],"weights_mode":"fancy"}`},
		{"malformed weights", `{"tickers":["AAA","BBB","CCC"],"weights_mode":"custom","weights":"AAA=1"}`},
		{"unknown weight ticker", `{"tickers":["AAA","BBB","CCC"],"weights_mode":"custom","weights":"AAA:1,ZZZ:1"}`},
		{"bad rebalance", `{"tickers":["AAA","BBB","CCC"],"rebalance":"hourly"}`},
		{"negative capital", `{"tickers":["AAA","BBB","CCC"],"initial_capital":-1}`},
		{"inverted window", `{"tickers":["AAA","BBB","CCC"],"start":"2024-03-01","end":"2024-01-01"}`},
	}
	for _, tc := range cases {
		rr := doRequest(t, r, http.MethodPost, "/api/v1/portfolios", tc.body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: code=%d body=%s", tc.name, rr.Code, rr.Body.String())
		}
	}
}

func TestRunPortfolio_NoOverlap(t *testing.T) {
	r := newPortfolioRouter(t, stubHistory{bars: map[string][]marketdata.Bar{}}, nil)

	body := `{"tickers":["AAA","BBB","CCC"],"start":"2024-01-01","end":"2024-01-10"}`
	rr := doRequest(t, r, http.MethodPost, "/api/v1/portfolios", body)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("code=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestPortfolioRunsListAndGet(t *testing.T) {
	repo := &stubRepo{}
	r := newPortfolioRouter(t, threeAssetLoader(t), repo)

	body := `{"tickers":["AAA","BBB","CCC"],"start":"2024-01-01","end":"2024-01-10"}`
	rr := doRequest(t, r, http.MethodPost, "/api/v1/portfolios", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("run: code=%d", rr.Code)
	}
	var sum portfolioSummary
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rr = doRequest(t, r, http.MethodGet, "/api/v1/portfolios", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list: code=%d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if env.Meta["total"] != float64(1) {
		t.Fatalf("meta=%v", env.Meta)
	}

	rr = doRequest(t, r, http.MethodGet, "/api/v1/portfolios/"+sum.ID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get: code=%d body=%s", rr.Code, rr.Body.String())
	}
	rr = doRequest(t, r, http.MethodGet, "/api/v1/portfolios/absent", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get absent: code=%d", rr.Code)
	}
}

func TestPortfolioRunsList_NoRepo(t *testing.T) {
	r := newPortfolioRouter(t, threeAssetLoader(t), nil)

	rr := doRequest(t, r, http.MethodGet, "/api/v1/portfolios", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d", rr.Code)
	}
}
