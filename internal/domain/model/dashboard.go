package model

import "github.com/shopspring/decimal"

// 売上が無い日のtop item
const NoTopItem = "none"

type DailySales struct {
	Date               string          `json:"date"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	TotalTransactions  int64           `json:"total_transactions"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
	TopItem            string          `json:"top_item"`
}
