package hub

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"quantdesk/internal/httpx"
)

// App is one analysis service reachable through the hub.
type App struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PublicURL   string `json:"public_url"`
	BaseURL     string `json:"-"`
	HealthPath  string `json:"-"`
}

// AppStatus is a catalog entry with its live probe result.
type AppStatus struct {
	App
	Status string `json:"status"`
}

const (
	StatusOK          = "ok"
	StatusUnreachable = "unreachable"
)

// Catalog answers /api/v1/apps: the configured apps with their current
// health, probed on every request.
type Catalog struct {
	Apps         []App
	Client       *http.Client
	ProbeTimeout time.Duration
}

func (c Catalog) List(w http.ResponseWriter, r *http.Request) {
	out := make([]AppStatus, len(c.Apps))
	var wg sync.WaitGroup
	for i, app := range c.Apps {
		wg.Add(1)
		go func(i int, app App) {
			defer wg.Done()
			out[i] = AppStatus{App: app, Status: c.probe(r.Context(), app)}
		}(i, app)
	}
	wg.Wait()
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (c Catalog) probe(ctx context.Context, app App) string {
	u, err := url.Parse(app.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return StatusUnreachable
	}
	u.Path = app.HealthPath
	if u.Path == "" {
		u.Path = "/healthz"
	}

	timeout := c.ProbeTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return StatusUnreachable
	}
	resp, err := client.Do(req)
	if err != nil {
		return StatusUnreachable
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return StatusOK
	}
	return StatusUnreachable
}
