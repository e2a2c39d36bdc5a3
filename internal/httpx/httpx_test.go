package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]string{"path": "/a?b=c"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("code=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%s", ct)
	}
	// HTML escaping is off so URLs survive untouched.
	if !strings.Contains(rr.Body.String(), "/a?b=c") {
		t.Fatalf("body=%s", rr.Body.String())
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusBadRequest, "missing symbol")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", rr.Code)
	}
	var e ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Error != "missing symbol" {
		t.Fatalf("error=%q", e.Error)
	}
}

func TestWriteRaw(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteRaw(rr, http.StatusOK, []byte(`{"ok":true}`))
	if rr.Body.String() != `{"ok":true}` {
		t.Fatalf("body=%s", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%s", ct)
	}
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Symbol string `json:"symbol"`
	}

	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"symbol":"AAPL"}`, ""},
		{"empty", ``, "empty body"},
		{"unknown field", `{"symbol":"AAPL","bogus":1}`, "bogus"},
		{"trailing", `{"symbol":"AAPL"}{"symbol":"MSFT"}`, "trailing"},
		{"not json", `hello`, "invalid character"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tc.body))
		var p payload
		err := ReadJSON(req, &p, 1<<20)
		if tc.wantErr == "" {
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if p.Symbol != "AAPL" {
				t.Fatalf("%s: symbol=%s", tc.name, p.Symbol)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("%s: err=%v want substring %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestReadJSON_SizeLimit(t *testing.T) {
	big := `{"symbol":"` + strings.Repeat("A", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(big))
	var p struct {
		Symbol string `json:"symbol"`
	}
	if err := ReadJSON(req, &p, 16); err == nil {
		t.Fatalf("expected error for oversized body")
	}
}
