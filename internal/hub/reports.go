package hub

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"quantdesk/internal/httpx"
	"quantdesk/internal/report"
)

// Reports serves the daily-report history from disk and lets admins
// trigger a run on demand.
type Reports struct {
	Dir       string
	Generator *report.Generator
	Logger    *zap.Logger
}

type reportListResponse struct {
	Dates []string `json:"dates"`
}

func (h Reports) List(w http.ResponseWriter, r *http.Request) {
	dates, err := report.Dates(h.Dir)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if dates == nil {
		dates = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, reportListResponse{Dates: dates})
}

func (h Reports) Get(w http.ResponseWriter, r *http.Request, date string) {
	data, err := report.Read(h.Dir, date)
	if errors.Is(err, report.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to read report")
		return
	}
	httpx.WriteRaw(w, http.StatusOK, data)
}

type runReportResponse struct {
	Path   string         `json:"path"`
	Report *report.Report `json:"report"`
}

// Run generates today's report immediately. Gated to admins by the router.
func (h Reports) Run(w http.ResponseWriter, r *http.Request) {
	if h.Generator == nil {
		httpx.WriteError(w, http.StatusServiceUnavailable, "report generator not configured")
		return
	}
	rep, path, err := h.Generator.Generate(r.Context(), time.Now().UTC())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("on-demand report failed", zap.Error(err))
		}
		httpx.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, runReportResponse{Path: path, Report: rep})
}
