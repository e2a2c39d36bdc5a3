package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"quantdesk/internal/config"
	"quantdesk/internal/marketdata"
	"quantdesk/internal/portfolio"
	"quantdesk/internal/repository"
)

// Intervals the portfolio service accepts. Weekly and monthly bars leave
// too few rows for rebalance schedules to mean anything.
var portfolioIntervals = map[marketdata.Interval]bool{
	marketdata.Interval1m:  true,
	marketdata.Interval5m:  true,
	marketdata.Interval15m: true,
	marketdata.Interval30m: true,
	marketdata.Interval1h:  true,
	marketdata.Interval1d:  true,
}

type PortfolioHandler struct {
	Engine   *portfolio.Engine
	Repo     repository.Repository
	Defaults config.PortfolioConfig
}

func (h *PortfolioHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/portfolios")
	group.POST("", h.run)
	group.GET("", h.list)
	group.GET("/:id", h.get)
}

type portfolioRequest struct {
	Tickers        []string        `json:"tickers"`
	Interval       string          `json:"interval"`
	Start          string          `json:"start"`
	End            string          `json:"end"`
	WeightsMode    string          `json:"weights_mode"`
	Weights        string          `json:"weights"`
	Rebalance      string          `json:"rebalance"`
	InitialCapital decimal.Decimal `json:"initial_capital"`
}

// @Summary Simulate a rebalanced multi-asset portfolio
// @Tags portfolios
// @Accept json
// @Param request body handler.portfolioRequest true "portfolio order"
// @Success 200 {object} map[string]any
// @Router /api/v1/portfolios [post]
func (h *PortfolioHandler) run(c *gin.Context) {
	var req portfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}

	tickers := cleanTickers(req.Tickers)
	minAssets := h.Defaults.MinAssets
	if minAssets <= 0 {
		minAssets = 3
	}
	if len(tickers) < minAssets {
		Error(c, http.StatusBadRequest, "select at least 3 distinct tickers", nil)
		return
	}

	rawInterval := strings.TrimSpace(req.Interval)
	if rawInterval == "" {
		rawInterval = "1d"
	}
	interval, err := marketdata.ParseInterval(rawInterval)
	if err != nil || !portfolioIntervals[interval] {
		Error(c, http.StatusBadRequest, "interval must be one of 1d, 1h, 30m, 15m, 5m, 1m", nil)
		return
	}

	start, end, warning, err := dateWindow(req.Start, req.End, 365)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if !start.Before(end) {
		Error(c, http.StatusBadRequest, "start date must be before end date", nil)
		return
	}

	mode := strings.ToLower(strings.TrimSpace(req.WeightsMode))
	if mode == "" {
		mode = "equal"
	}
	var weights map[string]float64
	switch mode {
	case "equal":
		weights = portfolio.EqualWeights(tickers)
	case "custom":
		weights, err = portfolio.ParseWeights(req.Weights, tickers)
		if err != nil {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
	default:
		Error(c, http.StatusBadRequest, "weights_mode must be equal or custom", nil)
		return
	}

	rawRebalance := strings.TrimSpace(req.Rebalance)
	if rawRebalance == "" {
		rawRebalance = h.Defaults.Rebalance
	}
	schedule, err := portfolio.ParseSchedule(rawRebalance)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	capital := req.InitialCapital
	if capital.IsZero() {
		capital = decimal.NewFromFloat(h.Defaults.InitialCapital)
	}
	if capital.LessThanOrEqual(decimal.Zero) {
		Error(c, http.StatusBadRequest, "initial capital must be positive", nil)
		return
	}

	summary, err := h.Engine.Run(c.Request.Context(), portfolio.Request{
		Tickers:        tickers,
		Interval:       interval,
		Start:          start,
		End:            end,
		WeightsMode:    mode,
		Weights:        weights,
		Rebalance:      schedule,
		InitialCapital: capital,
	})
	if err != nil {
		if errors.Is(err, portfolio.ErrNoOverlap) {
			Error(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	var meta map[string]any
	if warning != "" {
		meta = map[string]any{"warning": warning}
	}
	Ok(c, summary, meta)
}

func cleanTickers(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// @Summary List recorded portfolio runs
// @Tags portfolios
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router /api/v1/portfolios [get]
func (h *PortfolioHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListRunsParams{
		Limit:   limit,
		Offset:  offset,
		OrderBy: "created_at",
		Asc:     boolPtr(false),
	}
	items, err := h.Repo.ListPortfolioRuns(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountPortfolioRuns(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *PortfolioHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetPortfolioRun(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "portfolio run not found", nil)
		return
	}
	Ok(c, item, nil)
}
