package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BacktestRun records one single-asset strategy backtest.
type BacktestRun struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	Symbol   string `gorm:"type:varchar(20);not null;index"`
	Interval string `gorm:"type:varchar(10);not null"`
	Strategy string `gorm:"type:varchar(50);not null;index"`

	StartDate time.Time `gorm:"type:timestamptz;not null"`
	EndDate   time.Time `gorm:"type:timestamptz;not null"`

	Params         datatypes.JSON  `gorm:"type:jsonb"`
	InitialCapital decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	FinalEquity    decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	BarCount       int             `gorm:"not null;default:0"`
	Metrics        datatypes.JSON  `gorm:"type:jsonb"`

	Status string  `gorm:"type:varchar(20);not null;default:'ok'"`
	Error  *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (BacktestRun) TableName() string {
	return "backtest_runs"
}

// PortfolioRun records one multi-asset rebalanced portfolio simulation.
type PortfolioRun struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	Interval string `gorm:"type:varchar(10);not null"`

	Tickers     datatypes.JSON `gorm:"type:jsonb;not null"`
	WeightsMode string         `gorm:"type:varchar(10);not null"`
	Weights     datatypes.JSON `gorm:"type:jsonb"`
	Rebalance   string         `gorm:"type:varchar(10);not null;index"`

	StartDate time.Time `gorm:"type:timestamptz;not null"`
	EndDate   time.Time `gorm:"type:timestamptz;not null"`

	InitialCapital decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	FinalValue     decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	RowCount       int             `gorm:"not null;default:0"`
	RebalanceCount int             `gorm:"not null;default:0"`
	Metrics        datatypes.JSON  `gorm:"type:jsonb"`

	Status string  `gorm:"type:varchar(20);not null;default:'ok'"`
	Error  *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (PortfolioRun) TableName() string {
	return "portfolio_runs"
}
