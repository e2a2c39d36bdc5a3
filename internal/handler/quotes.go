package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quantdesk/internal/marketdata"
)

// QuoteHandler serves the latest close snapshot per ticker.
type QuoteHandler struct {
	Data *marketdata.Service
}

func (h *QuoteHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/quotes", h.list)
}

// @Summary Latest quotes for a list of tickers
// @Tags quotes
// @Param tickers query string true "comma-separated tickers"
// @Success 200 {object} map[string]any
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) list(c *gin.Context) {
	tickers := splitTickers(c.Query("tickers"))
	if len(tickers) == 0 {
		Error(c, http.StatusBadRequest, "tickers required", nil)
		return
	}

	quotes, err := h.Data.Quotes(c.Request.Context(), tickers)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, quotes, map[string]any{"count": len(quotes)})
}

func splitTickers(raw string) []string {
	return cleanTickers(strings.Split(raw, ","))
}
