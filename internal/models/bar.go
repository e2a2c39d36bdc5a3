package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketBar is one OHLCV bar as fetched from the data vendor, keyed by
// symbol, interval and bar timestamp.
type MarketBar struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	Symbol   string `gorm:"type:varchar(20);not null;uniqueIndex:idx_bars_key,priority:1"`
	Interval string `gorm:"type:varchar(10);not null;uniqueIndex:idx_bars_key,priority:2"`

	TS time.Time `gorm:"type:timestamptz;not null;uniqueIndex:idx_bars_key,priority:3;index"`

	Open     decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	High     decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Low      decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Close    decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	AdjClose decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Volume   int64           `gorm:"not null;default:0"`

	FetchedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (MarketBar) TableName() string {
	return "market_bars"
}
