package repository

import (
	"context"
	"time"

	"quantdesk/internal/models"
)

// Repository is the unified store shared by the analysis services and the
// reporter.
type Repository interface {
	// Market bars
	UpsertBars(ctx context.Context, items []models.MarketBar) error
	ListBars(ctx context.Context, params ListBarsParams) ([]models.MarketBar, error)
	DeleteBarsBefore(ctx context.Context, intervals []string, before time.Time) (int64, error)

	// Backtest runs
	InsertBacktestRun(ctx context.Context, item *models.BacktestRun) error
	GetBacktestRun(ctx context.Context, id string) (*models.BacktestRun, error)
	ListBacktestRuns(ctx context.Context, params ListRunsParams) ([]models.BacktestRun, error)
	CountBacktestRuns(ctx context.Context, params ListRunsParams) (int64, error)

	// Portfolio runs
	InsertPortfolioRun(ctx context.Context, item *models.PortfolioRun) error
	GetPortfolioRun(ctx context.Context, id string) (*models.PortfolioRun, error)
	ListPortfolioRuns(ctx context.Context, params ListRunsParams) ([]models.PortfolioRun, error)
	CountPortfolioRuns(ctx context.Context, params ListRunsParams) (int64, error)
}

type ListBarsParams struct {
	Symbol   string
	Interval string
	From     *time.Time
	To       *time.Time
	Limit    int
	Asc      bool
}

type ListRunsParams struct {
	Symbol   *string
	Strategy *string
	Since    *time.Time
	Limit    int
	Offset   int
	OrderBy  string
	Asc      *bool
}
