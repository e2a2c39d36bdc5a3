package hub

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync"

	"quantdesk/internal/httpx"
)

// Proxy forwards /apps/{name}/... to the app's base URL, so the whole
// platform is reachable through the hub's single port.
type Proxy struct {
	apps map[string]App

	mu      sync.RWMutex
	proxies map[string]*httputil.ReverseProxy
}

func NewProxy(apps []App) *Proxy {
	m := make(map[string]App, len(apps))
	for _, a := range apps {
		m[a.Name] = a
	}
	return &Proxy{apps: m, proxies: map[string]*httputil.ReverseProxy{}}
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name, rest, ok := parseAppPath(r.URL.Path)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	app, ok := p.apps[name]
	if !ok || app.BaseURL == "" {
		httpx.WriteError(w, http.StatusNotFound, "unknown app")
		return
	}

	proxy, err := p.getProxy(app)
	if err != nil {
		httpx.WriteError(w, http.StatusBadGateway, "bad upstream")
		return
	}

	r.URL.Path = rest
	if r.URL.Path == "" {
		r.URL.Path = "/"
	}
	proxy.ServeHTTP(w, r)
}

func (p *Proxy) getProxy(app App) (*httputil.ReverseProxy, error) {
	p.mu.RLock()
	if rp := p.proxies[app.Name]; rp != nil {
		p.mu.RUnlock()
		return rp, nil
	}
	p.mu.RUnlock()

	u, err := url.Parse(app.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("invalid base_url")
	}

	rp := httputil.NewSingleHostReverseProxy(u)
	origDirector := rp.Director
	rp.Director = func(req *http.Request) {
		origDirector(req)
		// Keep the upstream host as Host header.
		req.Host = u.Host
	}

	p.mu.Lock()
	p.proxies[app.Name] = rp
	p.mu.Unlock()
	return rp, nil
}

// parseAppPath extracts {name} and rest from:
//
//	/apps/{name}/... => name, /...
//	/apps/{name}     => name, /
func parseAppPath(path string) (name string, rest string, ok bool) {
	const prefix = "/apps/"
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}
	remaining := strings.TrimPrefix(path, prefix)
	if remaining == "" {
		return "", "", false
	}
	parts := strings.SplitN(remaining, "/", 2)
	name = parts[0]
	if name == "" {
		return "", "", false
	}
	if len(parts) == 1 {
		return name, "/", true
	}
	rest = "/" + parts[1]
	return name, rest, true
}
