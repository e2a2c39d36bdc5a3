package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"quantdesk/internal/backtest"
)

type StrategyHandler struct{}

func (h *StrategyHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/strategies", h.list)
}

type strategyInfo struct {
	Name          string          `json:"name"`
	DefaultParams json.RawMessage `json:"default_params"`
}

// @Summary List available strategies
// @Tags strategies
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies [get]
func (h *StrategyHandler) list(c *gin.Context) {
	strategies := backtest.Strategies()
	out := make([]strategyInfo, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, strategyInfo{Name: s.Name(), DefaultParams: s.DefaultParams()})
	}
	Ok(c, out, nil)
}
