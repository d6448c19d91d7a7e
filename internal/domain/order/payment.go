package order

import "github.com/shopspring/decimal"

// クイック支払いボタンの金額
var denominations = []decimal.Decimal{
	decimal.NewFromInt(50000),
	decimal.NewFromInt(100000),
	decimal.NewFromInt(200000),
}

// Evaluate は支払額からお釣りを出す。足りなければErrInsufficientPayment。
func Evaluate(total, paid decimal.Decimal) (decimal.Decimal, error) {
	if paid.LessThan(total) {
		return decimal.Zero, ErrInsufficientPayment
	}
	return paid.Sub(total), nil
}

// Presets はぴったり（合計）と固定金額の候補。
func Presets(total decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(denominations)+1)
	out = append(out, total)
	out = append(out, denominations...)
	return out
}
