package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"quantdesk/internal/config"
	"quantdesk/internal/marketdata"
)

func TestStreamValidation(t *testing.T) {
	r := newTestEngine(t, &StreamHandler{Data: newDataService(t, 100)})
	rr := doRequest(t, r, http.MethodGet, "/api/v1/stream", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("code=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestStreamPushesSnapshot(t *testing.T) {
	h := &StreamHandler{
		Data: newDataService(t, 100, 110, 121),
		Cfg:  config.StreamConfig{RefreshInterval: time.Hour, MaxTickers: 10},
	}
	srv := httptest.NewServer(newTestEngine(t, h))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/stream?tickers=aapl,msft"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	// The first snapshot is pushed right after the upgrade.
	typ, payload, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if typ != websocket.MessageText {
		t.Fatalf("type=%v", typ)
	}

	var snap struct {
		TS     time.Time          `json:"ts"`
		Quotes []marketdata.Quote `json:"quotes"`
	}
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatalf("decode: %v payload=%s", err, payload)
	}
	if len(snap.Quotes) != 2 {
		t.Fatalf("quotes=%+v", snap.Quotes)
	}
	if snap.Quotes[0].Symbol != "AAPL" || snap.Quotes[0].Price.InexactFloat64() != 121 {
		t.Fatalf("quote=%+v", snap.Quotes[0])
	}
	if snap.TS.IsZero() {
		t.Fatalf("snapshot ts missing")
	}
}
