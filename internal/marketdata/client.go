package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	host       string
	httpClient *http.Client
	userAgent  string
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, userAgent string) *Client {
	if host == "" {
		host = "https://query1.finance.yahoo.com"
	}
	host = strings.TrimRight(host, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		host:       host,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// GetHistory fetches OHLCV bars for symbol between start and end.
func (c *Client) GetHistory(ctx context.Context, symbol string, interval Interval, start, end time.Time) ([]Bar, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if _, err := ParseInterval(interval.String()); err != nil {
		return nil, err
	}
	if end.IsZero() {
		end = time.Now().UTC()
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start must be before end")
	}
	query := url.Values{}
	query.Set("period1", strconv.FormatInt(start.Unix(), 10))
	query.Set("period2", strconv.FormatInt(end.Unix(), 10))
	query.Set("interval", interval.String())
	query.Set("includeAdjustedClose", "true")
	body, err := c.doRequest(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query)
	if err != nil {
		return nil, err
	}
	return parseChart(body, symbol, interval)
}
