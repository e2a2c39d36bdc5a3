package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quantdesk/internal/marketdata"
)

// BarsHandler serves raw cached history.
type BarsHandler struct {
	Data *marketdata.Service
}

func (h *BarsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/bars", h.list)
}

// @Summary Fetch OHLCV history for one symbol
// @Tags bars
// @Param symbol query string true "ticker, e.g. AAPL"
// @Param interval query string false "1m 5m 15m 30m 1h 1d 1wk 1mo (default 1d)"
// @Param start query string false "start date YYYY-MM-DD"
// @Param end query string false "end date YYYY-MM-DD"
// @Success 200 {object} map[string]any
// @Router /api/v1/bars [get]
func (h *BarsHandler) list(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		Error(c, http.StatusBadRequest, "symbol required", nil)
		return
	}

	interval, err := marketdata.ParseInterval(c.DefaultQuery("interval", "1d"))
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	start, end, warning, err := dateWindow(c.Query("start"), c.Query("end"), 365)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if !start.Before(end) {
		Error(c, http.StatusBadRequest, "start date must be before end date", nil)
		return
	}

	bars, err := h.Data.History(c.Request.Context(), symbol, interval, start, end)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if len(bars) == 0 {
		Error(c, http.StatusNotFound, "no data returned", nil)
		return
	}

	meta := map[string]any{"count": len(bars)}
	if warning != "" {
		meta["warning"] = warning
	}
	Ok(c, bars, meta)
}
