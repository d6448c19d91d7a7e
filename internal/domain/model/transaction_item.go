package model

import "github.com/shopspring/decimal"

// 取引明細。会計時点の名前と価格をコピーして持つ。
type TransactionItem struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID string          `gorm:"type:uuid;not null;index" json:"transaction_id"`
	MenuItemID    string          `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	MenuItemName  string          `gorm:"type:varchar(200);not null" json:"menu_item_name"`
	// 注文での並び順（0始まり）
	Position      int             `gorm:"not null;default:0" json:"position"`
	Quantity      int64           `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
}
