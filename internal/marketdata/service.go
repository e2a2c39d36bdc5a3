package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"quantdesk/internal/cache"
	"quantdesk/internal/models"
	"quantdesk/internal/repository"
)

// Service loads bar history through a cache layer and persists fetched bars
// when a repository is configured. Cache and repository are both optional.
type Service struct {
	Client *Client
	Cache  cache.Store
	Repo   repository.Repository
	Logger *zap.Logger
	TTL    time.Duration
}

func (s *Service) History(ctx context.Context, symbol string, interval Interval, start, end time.Time) ([]Bar, error) {
	if s == nil || s.Client == nil {
		return nil, fmt.Errorf("market data client unavailable")
	}
	key := barsKey(symbol, interval, start, end)
	if s.Cache != nil {
		if b, found, err := s.Cache.Get(ctx, key); err == nil && found {
			var bars []Bar
			if err := json.Unmarshal(b, &bars); err == nil {
				return bars, nil
			}
		}
	}

	bars, err := s.Client.GetHistory(ctx, symbol, interval, start, end)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		ttl := s.TTL
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		if b, err := json.Marshal(bars); err == nil {
			if err := s.Cache.Set(ctx, key, b, ttl); err != nil && s.Logger != nil {
				s.Logger.Warn("bar cache set failed", zap.Error(err))
			}
		}
	}

	s.persist(ctx, bars)
	return bars, nil
}

// Quote returns the latest daily close for symbol and its move against the
// prior close.
func (s *Service) Quote(ctx context.Context, symbol string) (*Quote, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -10)
	bars, err := s.History(ctx, symbol, Interval1d, start, end)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, nil
	}
	last := bars[len(bars)-1]
	q := &Quote{
		Symbol:    last.Symbol,
		Price:     last.Close,
		PrevClose: last.Close,
		TS:        last.TS,
	}
	if len(bars) > 1 {
		prev := bars[len(bars)-2].Close
		q.PrevClose = prev
		if !prev.IsZero() {
			q.ChangePct = last.Close.Sub(prev).Div(prev).InexactFloat64()
		}
	}
	return q, nil
}

// Quotes resolves quotes for several symbols. Symbols that fail or return no
// data are logged and skipped so one bad ticker does not sink the batch.
func (s *Service) Quotes(ctx context.Context, symbols []string) ([]Quote, error) {
	quotes := make([]Quote, 0, len(symbols))
	for _, sym := range symbols {
		if ctx.Err() != nil {
			return quotes, ctx.Err()
		}
		q, err := s.Quote(ctx, sym)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("quote fetch failed", zap.String("symbol", sym), zap.Error(err))
			}
			continue
		}
		if q == nil {
			continue
		}
		quotes = append(quotes, *q)
	}
	return quotes, nil
}

func (s *Service) persist(ctx context.Context, bars []Bar) {
	if s.Repo == nil || len(bars) == 0 {
		return
	}
	now := time.Now().UTC()
	items := make([]models.MarketBar, 0, len(bars))
	for _, b := range bars {
		items = append(items, models.MarketBar{
			Symbol:    b.Symbol,
			Interval:  b.Interval.String(),
			TS:        b.TS,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			AdjClose:  b.AdjClose,
			Volume:    b.Volume,
			FetchedAt: now,
		})
	}
	if err := s.Repo.UpsertBars(ctx, items); err != nil && s.Logger != nil {
		s.Logger.Warn("bar persist failed", zap.Error(err))
	}
}

func barsKey(symbol string, interval Interval, start, end time.Time) string {
	return fmt.Sprintf("bars:%s:%s:%d:%d", symbol, interval, start.Unix(), end.Unix())
}
