package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeaway OrderType = "takeaway"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeaway
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// 会計済みの取引。作成後は更新しない。
type Transaction struct {
	ID                string          `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionNumber string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"transaction_number"`
	CashierID         string          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	OrderType         OrderType       `gorm:"type:varchar(20);not null" json:"order_type"`
	TableNumber       *int            `json:"table_number"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Tax               decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tax"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	PaidAmount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"paid_amount"`
	ChangeAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"change_amount"`
	PaymentStatus     PaymentStatus   `gorm:"type:varchar(20);not null;default:'completed'" json:"payment_status"`
	CreatedAt         time.Time       `gorm:"not null;index" json:"created_at"`

	Items   []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
	Cashier *User             `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
}

// 取引番号 TRX-YYYYMMDD-NNN
func FormatTransactionNumber(day time.Time, seq int) string {
	return fmt.Sprintf("TRX-%s-%03d", day.Format("20060102"), seq)
}

// 日ごとの採番カウンタ
type TransactionSequence struct {
	Day       string `gorm:"type:char(8);primaryKey"`
	LastValue int    `gorm:"not null"`
}
