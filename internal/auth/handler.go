package auth

import (
	"net/http"
	"time"

	"quantdesk/internal/httpx"
)

type Handler struct {
	Store *FileKeyStore
	JWT   JWT
}

type loginRequest struct {
	APIKey string `json:"api_key"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func (h Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.ReadJSON(r, &req, 1<<20); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, ok := h.Store.Validate(req.APIKey)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid api key")
		return
	}

	tok, exp, err := h.JWT.Sign(Claims{
		Name: rec.Name,
		Role: rec.Role,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		Token:     tok,
		ExpiresAt: exp.UTC().Format(time.RFC3339),
	})
}

// Refresh issues a fresh token for the already-authenticated caller.
func (h Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, ok := ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing token")
		return
	}

	tok, exp, err := h.JWT.Sign(Claims{
		Name: c.Name,
		Role: c.Role,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		Token:     tok,
		ExpiresAt: exp.UTC().Format(time.RFC3339),
	})
}

type statusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// Status is public: a missing or invalid token just means
// authenticated=false.
func (h Handler) Status(w http.ResponseWriter, r *http.Request) {
	tok := BearerToken(r.Header.Get("Authorization"))
	if tok == "" {
		httpx.WriteJSON(w, http.StatusOK, statusResponse{Authenticated: false})
		return
	}
	c, err := h.JWT.Verify(tok)
	if err != nil {
		httpx.WriteJSON(w, http.StatusOK, statusResponse{Authenticated: false})
		return
	}
	resp := statusResponse{
		Authenticated: true,
		Name:          c.Name,
		Role:          c.Role,
	}
	if c.ExpiresAt != nil {
		resp.ExpiresAt = c.ExpiresAt.Time.UTC().Format(time.RFC3339)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

type createKeyRequest struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

type createKeyResponse struct {
	APIKey string    `json:"api_key"`
	Key    KeyRecord `json:"key"`
}

// CreateKey mints a new API key. The raw key is returned once; only its
// hash is stored.
func (h Handler) CreateKey(w http.ResponseWriter, r *http.Request) {
	var req createKeyRequest
	if err := httpx.ReadJSON(r, &req, 1<<20); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	raw, rec, err := h.Store.Create(req.Role, req.Name)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec.HashHex = ""
	httpx.WriteJSON(w, http.StatusOK, createKeyResponse{APIKey: raw, Key: rec})
}
