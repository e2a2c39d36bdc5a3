package handler

import (
	"context"
	"time"

	"quantdesk/internal/models"
	"quantdesk/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It implements the full interface but only the run listing and lookup
// methods carry data; everything else is a no-op.
type stubRepo struct {
	backtests  []models.BacktestRun
	portfolios []models.PortfolioRun

	lastRunParams repository.ListRunsParams
}

func (s *stubRepo) UpsertBars(ctx context.Context, items []models.MarketBar) error { return nil }
func (s *stubRepo) ListBars(ctx context.Context, params repository.ListBarsParams) ([]models.MarketBar, error) {
	return nil, nil
}
func (s *stubRepo) DeleteBarsBefore(ctx context.Context, intervals []string, before time.Time) (int64, error) {
	return 0, nil
}

func (s *stubRepo) InsertBacktestRun(ctx context.Context, item *models.BacktestRun) error {
	s.backtests = append(s.backtests, *item)
	return nil
}

func (s *stubRepo) GetBacktestRun(ctx context.Context, id string) (*models.BacktestRun, error) {
	for i := range s.backtests {
		if s.backtests[i].ID == id {
			return &s.backtests[i], nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListBacktestRuns(ctx context.Context, params repository.ListRunsParams) ([]models.BacktestRun, error) {
	s.lastRunParams = params
	return s.backtests, nil
}

func (s *stubRepo) CountBacktestRuns(ctx context.Context, params repository.ListRunsParams) (int64, error) {
	return int64(len(s.backtests)), nil
}

func (s *stubRepo) InsertPortfolioRun(ctx context.Context, item *models.PortfolioRun) error {
	s.portfolios = append(s.portfolios, *item)
	return nil
}

func (s *stubRepo) GetPortfolioRun(ctx context.Context, id string) (*models.PortfolioRun, error) {
	for i := range s.portfolios {
		if s.portfolios[i].ID == id {
			return &s.portfolios[i], nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListPortfolioRuns(ctx context.Context, params repository.ListRunsParams) ([]models.PortfolioRun, error) {
	s.lastRunParams = params
	return s.portfolios, nil
}

func (s *stubRepo) CountPortfolioRuns(ctx context.Context, params repository.ListRunsParams) (int64, error) {
	return int64(len(s.portfolios)), nil
}
