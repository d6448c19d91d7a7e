package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string          `gorm:"type:varchar(200);not null;index:idx_menu_items_name_lower,unique,expression:lower(name),where:deleted_at IS NULL" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:varchar(500)" json:"image_url"`
	IsAvailable bool            `gorm:"not null" json:"is_available"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// 一覧取得時だけ埋める
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
