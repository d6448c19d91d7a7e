package model

import (
	"time"

	"gorm.io/gorm"
)

const DefaultCategoryIcon = "Utensils"

// メニューのカテゴリ
type Category struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null;index:idx_categories_name_lower,unique,expression:lower(name),where:deleted_at IS NULL" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Icon        string         `gorm:"type:varchar(50);not null;default:'Utensils'" json:"icon"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
