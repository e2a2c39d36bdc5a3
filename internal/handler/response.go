package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": int64(offset+limit) < total,
	}
}

// parseDate accepts the plain date form used throughout the API, with
// RFC3339 as a fallback for callers that send full timestamps.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// dateWindow resolves optional start/end strings against the defaults: end
// today, start lookback days earlier. An end date beyond today is clamped
// and reported through the returned warning.
func dateWindow(startRaw, endRaw string, lookbackDays int) (start, end time.Time, warning string, err error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	end = today
	if strings.TrimSpace(endRaw) != "" {
		end, err = parseDate(endRaw)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
	}
	if end.After(today) {
		end = today
		warning = "end date is in the future, adjusted to today"
	}

	start = end.AddDate(0, 0, -lookbackDays)
	if strings.TrimSpace(startRaw) != "" {
		start, err = parseDate(startRaw)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
	}
	return start, end, warning, nil
}
