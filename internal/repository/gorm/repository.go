package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quantdesk/internal/models"
	"quantdesk/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- Market bars -------------------------------------------------------------

func (s *Store) UpsertBars(ctx context.Context, items []models.MarketBar) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return createInBatches(s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "ts"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"open",
			"high",
			"low",
			"close",
			"adj_close",
			"volume",
			"fetched_at",
		}),
	}), items, 500)
}

func (s *Store) ListBars(ctx context.Context, params repository.ListBarsParams) ([]models.MarketBar, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.MarketBar{})
	if sym := strings.TrimSpace(params.Symbol); sym != "" {
		query = query.Where("symbol = ?", sym)
	}
	if iv := strings.TrimSpace(params.Interval); iv != "" {
		query = query.Where("interval = ?", iv)
	}
	if params.From != nil && !params.From.IsZero() {
		query = query.Where("ts >= ?", *params.From)
	}
	if params.To != nil && !params.To.IsZero() {
		query = query.Where("ts <= ?", *params.To)
	}
	direction := "desc"
	if params.Asc {
		direction = "asc"
	}
	query = query.Order("ts " + direction)
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	var items []models.MarketBar
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteBarsBefore(ctx context.Context, intervals []string, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if before.IsZero() {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Where("ts < ?", before)
	if len(intervals) > 0 {
		query = query.Where("interval IN ?", intervals)
	}
	res := query.Delete(&models.MarketBar{})
	return res.RowsAffected, res.Error
}

// --- Backtest runs -----------------------------------------------------------

func (s *Store) InsertBacktestRun(ctx context.Context, item *models.BacktestRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetBacktestRun(ctx context.Context, id string) (*models.BacktestRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.BacktestRun
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListBacktestRuns(ctx context.Context, params repository.ListRunsParams) ([]models.BacktestRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyRunFilters(s.db.WithContext(ctx).Model(&models.BacktestRun{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.BacktestRun
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountBacktestRuns(ctx context.Context, params repository.ListRunsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var n int64
	query := applyRunFilters(s.db.WithContext(ctx).Model(&models.BacktestRun{}), params)
	if err := query.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// --- Portfolio runs ----------------------------------------------------------

func (s *Store) InsertPortfolioRun(ctx context.Context, item *models.PortfolioRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetPortfolioRun(ctx context.Context, id string) (*models.PortfolioRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.PortfolioRun
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListPortfolioRuns(ctx context.Context, params repository.ListRunsParams) ([]models.PortfolioRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.PortfolioRun{})
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.PortfolioRun
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPortfolioRuns(ctx context.Context, params repository.ListRunsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.PortfolioRun{})
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// --- Helpers -----------------------------------------------------------------

func applyRunFilters(query *gorm.DB, params repository.ListRunsParams) *gorm.DB {
	if params.Symbol != nil && strings.TrimSpace(*params.Symbol) != "" {
		query = query.Where("symbol = ?", strings.TrimSpace(*params.Symbol))
	}
	if params.Strategy != nil && strings.TrimSpace(*params.Strategy) != "" {
		query = query.Where("strategy = ?", strings.TrimSpace(*params.Strategy))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func createInBatches[T any](db *gorm.DB, items []T, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := db.CreateInBatches(items[i:end], batchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
