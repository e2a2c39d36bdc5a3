package portfolio

import (
	"fmt"
	"strconv"
	"strings"
)

// EqualWeights assigns every ticker the same share.
func EqualWeights(tickers []string) map[string]float64 {
	if len(tickers) == 0 {
		return map[string]float64{}
	}
	w := 1.0 / float64(len(tickers))
	out := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		out[t] = w
	}
	return out
}

// ParseWeights reads a "TICKER:WEIGHT,TICKER:WEIGHT" line against the
// requested ticker set. Weights are long-only and normalized to sum to one;
// tickers omitted from the line get zero.
func ParseWeights(raw string, tickers []string) (map[string]float64, error) {
	known := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		known[t] = true
	}

	out := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		out[t] = 0
	}

	seen := map[string]bool{}
	var sum float64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ticker, weightRaw, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid weight entry %q (want TICKER:WEIGHT)", part)
		}
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if !known[ticker] {
			return nil, fmt.Errorf("unknown ticker in weights: %s", ticker)
		}
		if seen[ticker] {
			return nil, fmt.Errorf("duplicate ticker in weights: %s", ticker)
		}
		seen[ticker] = true
		w, err := strconv.ParseFloat(strings.TrimSpace(weightRaw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for %s: %q", ticker, strings.TrimSpace(weightRaw))
		}
		if w < 0 {
			return nil, fmt.Errorf("weight for %s must be non-negative (long-only)", ticker)
		}
		out[ticker] = w
		sum += w
	}

	if sum <= 0 {
		return nil, fmt.Errorf("weights must sum to a positive value")
	}
	for t := range out {
		out[t] /= sum
	}
	return out, nil
}
