package repository

import (
	"context"

	"cafepos/internal/domain/model"

	"gorm.io/gorm"
)

type TransactionItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewTransactionItemGormRepository(db *gorm.DB) *TransactionItemGormRepository {
	return &TransactionItemGormRepository{db: db}
}

// 明細をまとめて保存
func (r *TransactionItemGormRepository) CreateBulk(ctx context.Context, transactionID string, items []model.TransactionItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].TransactionID = transactionID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
