package handler

import (
	"net/http"
	"strings"
	"testing"
)

func TestHealthEndpoints(t *testing.T) {
	r := newTestEngine(t, &HealthHandler{})

	rr := doRequest(t, r, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Fatalf("healthz: code=%d body=%s", rr.Code, rr.Body.String())
	}

	// Without a database readiness is unconditional.
	rr = doRequest(t, r, http.MethodGet, "/readyz", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ready"`) {
		t.Fatalf("readyz: code=%d body=%s", rr.Code, rr.Body.String())
	}
}
