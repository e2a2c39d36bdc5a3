package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"quantdesk/internal/backtest"
	"quantdesk/internal/config"
	"quantdesk/internal/marketdata"
	"quantdesk/internal/repository"
)

// Intervals the single-asset service accepts. Intraday bars are too noisy
// for the strategy windows it runs.
var backtestIntervals = map[marketdata.Interval]bool{
	marketdata.Interval1d:  true,
	marketdata.Interval1wk: true,
	marketdata.Interval1mo: true,
}

type BacktestHandler struct {
	Engine   *backtest.Engine
	Repo     repository.Repository
	Defaults config.BacktestConfig
}

func (h *BacktestHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/backtests")
	group.POST("", h.run)
	group.GET("", h.list)
	group.GET("/:id", h.get)
}

type backtestParams struct {
	ShortWindow int `json:"short_window"`
	LongWindow  int `json:"long_window"`
}

type backtestRequest struct {
	Symbol         string          `json:"symbol"`
	Interval       string          `json:"interval"`
	Start          string          `json:"start"`
	End            string          `json:"end"`
	Strategy       string          `json:"strategy"`
	Params         backtestParams  `json:"params"`
	InitialCapital decimal.Decimal `json:"initial_capital"`
}

// @Summary Run a single-asset strategy backtest
// @Tags backtests
// @Accept json
// @Param request body handler.backtestRequest true "backtest order"
// @Success 200 {object} map[string]any
// @Router /api/v1/backtests [post]
func (h *BacktestHandler) run(c *gin.Context) {
	var req backtestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}

	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		Error(c, http.StatusBadRequest, "symbol required", nil)
		return
	}

	rawInterval := strings.TrimSpace(req.Interval)
	if rawInterval == "" {
		rawInterval = "1d"
	}
	interval, err := marketdata.ParseInterval(rawInterval)
	if err != nil || !backtestIntervals[interval] {
		Error(c, http.StatusBadRequest, "interval must be one of 1d, 1wk, 1mo", nil)
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
	if interval == marketdata.Interval1mo && end.Sub(start) < 90*24*time.Hour {
		Error(c, http.StatusBadRequest, "monthly interval needs a date range of at least 90 days", nil)
		return
	}

	strategy := strings.TrimSpace(req.Strategy)
	if strategy == "" {
		strategy = "buy_and_hold"
	}

	capital := req.InitialCapital
	if capital.IsZero() {
		capital = decimal.NewFromFloat(h.Defaults.InitialCapital)
	}
	if capital.LessThanOrEqual(decimal.Zero) {
		Error(c, http.StatusBadRequest, "initial capital must be positive", nil)
		return
	}

	shortWindow := req.Params.ShortWindow
	longWindow := req.Params.LongWindow
	if shortWindow == 0 {
		shortWindow = h.Defaults.ShortWindow
	}
	if longWindow == 0 {
		longWindow = h.Defaults.LongWindow
	}

	summary, err := h.Engine.Run(c.Request.Context(), backtest.Request{
		Symbol:   symbol,
		Interval: interval,
		Start:    start,
		End:      end,
		Strategy: strategy,
		Params: backtest.Params{
			ShortWindow:    shortWindow,
			LongWindow:     longWindow,
			InitialCapital: capital,
		},
	})
	if err != nil {
		status := backtestErrorStatus(err)
		Error(c, status, err.Error(), nil)
		return
	}

	var meta map[string]any
	if warning != "" {
		meta = map[string]any{"warning": warning}
	}
	Ok(c, summary, meta)
}

func backtestErrorStatus(err error) int {
	switch {
	case errors.Is(err, backtest.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, backtest.ErrUnknownStrategy), errors.Is(err, backtest.ErrInvalidParams):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// @Summary List recorded backtest runs
// @Tags backtests
// @Param symbol query string false "filter by symbol"
// @Param strategy query string false "filter by strategy"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router /api/v1/backtests [get]
func (h *BacktestHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListRunsParams{
		Limit:    limit,
		Offset:   offset,
		Symbol:   strQueryPtr(c, "symbol"),
		Strategy: strQueryPtr(c, "strategy"),
		OrderBy:  "created_at",
		Asc:      boolPtr(false),
	}
	items, err := h.Repo.ListBacktestRuns(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountBacktestRuns(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *BacktestHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetBacktestRun(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "backtest run not found", nil)
		return
	}
	Ok(c, item, nil)
}
