package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// [From, To) の売上集計
type SalesSummary struct {
	TotalSales        decimal.Decimal
	TotalTransactions int64
}

// 期間内で一番売れた商品
type TopItem struct {
	MenuItemID string
	Name       string
	Quantity   int64
}

type DashboardRepository interface {
	SalesSummary(ctx context.Context, from, to time.Time) (SalesSummary, error)
	// 売上が無ければok=false
	TopItem(ctx context.Context, from, to time.Time) (item TopItem, ok bool, err error)
}
