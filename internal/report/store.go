package report

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var ErrNotFound = errors.New("report not found")

const fileSuffix = "_report.json"

// Dates lists the report days available under dir, newest first. A missing
// directory is an empty history, not an error.
func Dates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var dates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		date, ok := strings.CutSuffix(e.Name(), fileSuffix)
		if !ok {
			continue
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			continue
		}
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// Read returns the stored report document for one day. Malformed dates are
// treated as unknown reports, which also keeps the lookup inside dir.
func Read(dir, date string) ([]byte, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(dir, date+fileSuffix))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
