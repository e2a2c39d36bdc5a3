package hub

import (
	"net/http"
	"strings"

	"quantdesk/internal/auth"
	"quantdesk/internal/httpx"
)

// Router is the hub's single entry point: explicit dispatch, no framework.
type Router struct {
	Page    Page
	Catalog Catalog
	Auth    auth.Handler
	Reports Reports
	Proxy   *Proxy

	AuthMW func(http.Handler) http.Handler
}

func (rt Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Landing page.
	if r.URL.Path == "/" {
		rt.Page.Index(w, r)
		return
	}

	// Health.
	if r.Method == http.MethodGet && r.URL.Path == "/healthz" {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
		return
	}

	// Catalog.
	if r.URL.Path == "/api/v1/apps" {
		if r.Method != http.MethodGet {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rt.Catalog.List(w, r)
		return
	}

	// Auth endpoints.
	if r.URL.Path == "/api/v1/auth/login" {
		if r.Method != http.MethodPost {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rt.Auth.Login(w, r)
		return
	}
	if r.URL.Path == "/api/v1/auth/status" {
		if r.Method != http.MethodGet {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rt.Auth.Status(w, r)
		return
	}
	if r.URL.Path == "/api/v1/auth/refresh" {
		if r.Method != http.MethodPost {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rt.requireAuth(http.HandlerFunc(rt.Auth.Refresh)).ServeHTTP(w, r)
		return
	}

	// Admin surface.
	if r.URL.Path == "/api/v1/admin/keys" {
		if r.Method != http.MethodPost {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rt.requireAdmin(http.HandlerFunc(rt.Auth.CreateKey)).ServeHTTP(w, r)
		return
	}
	if r.URL.Path == "/api/v1/admin/reports/run" {
		if r.Method != http.MethodPost {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rt.requireAdmin(http.HandlerFunc(rt.Reports.Run)).ServeHTTP(w, r)
		return
	}

	// Report history.
	if r.URL.Path == "/api/v1/reports" {
		if r.Method != http.MethodGet {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rt.Reports.List(w, r)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/api/v1/reports/") {
		if r.Method != http.MethodGet {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		date := strings.TrimPrefix(r.URL.Path, "/api/v1/reports/")
		if date == "" {
			httpx.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		rt.Reports.Get(w, r, date)
		return
	}

	// Proxy to the apps.
	if strings.HasPrefix(r.URL.Path, "/apps/") {
		rt.Proxy.ServeHTTP(w, r)
		return
	}

	httpx.WriteError(w, http.StatusNotFound, "not found")
}

func (rt Router) requireAuth(h http.Handler) http.Handler {
	if rt.AuthMW == nil {
		return h
	}
	return rt.AuthMW(h)
}

func (rt Router) requireAdmin(h http.Handler) http.Handler {
	return rt.requireAuth(auth.RequireRole("admin")(h))
}
