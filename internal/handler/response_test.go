package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestEngine(t *testing.T, handlers ...interface{ Register(*gin.Engine) }) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rr.Body.String())
	}
	return env
}

func TestParseDate(t *testing.T) {
	got, err := parseDate(" 2024-03-05 ")
	if err != nil {
		t.Fatalf("plain date: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got=%v", got)
	}

	got, err = parseDate("2024-03-05T10:30:00Z")
	if err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if got.Hour() != 10 {
		t.Fatalf("got=%v", got)
	}

	if _, err := parseDate("05/03/2024"); err == nil {
		t.Fatalf("expected error for unknown layout")
	}
}

func TestDateWindow_Defaults(t *testing.T) {
	start, end, warning, err := dateWindow("", "", 365)
	if err != nil {
		t.Fatalf("dateWindow: %v", err)
	}
	if warning != "" {
		t.Fatalf("warning=%q", warning)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !end.Equal(today) {
		t.Fatalf("end=%v want=%v", end, today)
	}
	if !start.Equal(today.AddDate(0, 0, -365)) {
		t.Fatalf("start=%v", start)
	}
}

func TestDateWindow_ClampsFutureEnd(t *testing.T) {
	_, end, warning, err := dateWindow("", "2999-01-01", 30)
	if err != nil {
		t.Fatalf("dateWindow: %v", err)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !end.Equal(today) {
		t.Fatalf("end=%v want=%v", end, today)
	}
	if warning == "" {
		t.Fatalf("expected clamp warning")
	}
}

func TestDateWindow_Explicit(t *testing.T) {
	start, end, warning, err := dateWindow("2024-01-02", "2024-03-05", 365)
	if err != nil {
		t.Fatalf("dateWindow: %v", err)
	}
	if warning != "" {
		t.Fatalf("warning=%q", warning)
	}
	if start.Format("2006-01-02") != "2024-01-02" || end.Format("2006-01-02") != "2024-03-05" {
		t.Fatalf("window=%v..%v", start, end)
	}

	if _, _, _, err := dateWindow("bogus", "", 365); err == nil {
		t.Fatalf("expected error for bad start")
	}
}

func TestPaginationMeta(t *testing.T) {
	m := paginationMeta(50, 0, 120)
	if m["has_next"] != true {
		t.Fatalf("meta=%v", m)
	}
	m = paginationMeta(50, 100, 120)
	if m["has_next"] != false {
		t.Fatalf("meta=%v", m)
	}
	m = paginationMeta(-1, -5, 10)
	if m["limit"] != 0 || m["offset"] != 0 {
		t.Fatalf("meta=%v", m)
	}
}

func TestCleanTickers(t *testing.T) {
	got := cleanTickers([]string{" aapl", "AAPL", "msft ", "", "gld"})
	want := []string{"AAPL", "MSFT", "GLD"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestSplitTickers(t *testing.T) {
	got := splitTickers("aapl, msft,,aapl,gld")
	want := []string{"AAPL", "MSFT", "GLD"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
	if got := splitTickers(""); len(got) != 0 {
		t.Fatalf("got=%v", got)
	}
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		Error(c, http.StatusBadRequest, "bad input", nil)
	})
	rr := doRequest(t, r, http.MethodGet, "/boom", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if env.Code != http.StatusBadRequest || env.Message != "bad input" {
		t.Fatalf("env=%+v", env)
	}
}
