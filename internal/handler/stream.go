package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"quantdesk/internal/config"
	"quantdesk/internal/marketdata"
)

// StreamHandler pushes quote snapshots over a websocket on a fixed refresh
// interval.
type StreamHandler struct {
	Data   *marketdata.Service
	Cfg    config.StreamConfig
	Logger *zap.Logger
}

func (h *StreamHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/stream", h.stream)
}

type streamSnapshot struct {
	TS     time.Time          `json:"ts"`
	Quotes []marketdata.Quote `json:"quotes"`
}

// @Summary Stream quote snapshots over a websocket
// @Tags quotes
// @Param tickers query string true "comma-separated tickers"
// @Success 101
// @Router /api/v1/stream [get]
func (h *StreamHandler) stream(c *gin.Context) {
	tickers := splitTickers(c.Query("tickers"))
	if len(tickers) == 0 {
		Error(c, http.StatusBadRequest, "tickers required", nil)
		return
	}
	maxTickers := h.Cfg.MaxTickers
	if maxTickers <= 0 {
		maxTickers = 10
	}
	if len(tickers) > maxTickers {
		tickers = tickers[:maxTickers]
	}

	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		// Accept has already written its own HTTP error.
		if h.Logger != nil {
			h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		}
		return
	}
	defer func() { _ = conn.Close(websocket.StatusInternalError, "stream aborted") }()

	// The stream is write-only; CloseRead cancels the context when the
	// client goes away.
	ctx := conn.CloseRead(c.Request.Context())

	refresh := h.Cfg.RefreshInterval
	if refresh <= 0 {
		refresh = 5 * time.Minute
	}
	if refresh < 5*time.Second {
		refresh = 5 * time.Second
	}

	if err := h.push(ctx, conn, tickers); err != nil {
		return
	}

	tick := time.NewTicker(refresh)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-tick.C:
			if err := h.push(ctx, conn, tickers); err != nil {
				if h.Logger != nil {
					h.Logger.Debug("stream push failed", zap.Error(err))
				}
				return
			}
		}
	}
}

func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, tickers []string) error {
	quotes, err := h.Data.Quotes(ctx, tickers)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(streamSnapshot{TS: time.Now().UTC(), Quotes: quotes})
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, payload)
}
