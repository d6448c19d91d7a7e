package order

import "github.com/shopspring/decimal"

// 固定税率 10%
var TaxRate = decimal.New(10, -2)

// 通貨の小数桁
const currencyScale = 2

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals は明細から小計・税・合計を出す。副作用なし。
func ComputeTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}

	tax := subtotal.Mul(TaxRate).Round(currencyScale)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
