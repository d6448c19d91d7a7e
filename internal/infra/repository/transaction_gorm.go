package repository

import (
	"context"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 明細は注文に入れた順
func itemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// 一覧の既定件数と上限
const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 200
)

type TransactionGormRepository struct {
	db *gorm.DB
}

// DI
func NewTransactionGormRepository(db *gorm.DB) *TransactionGormRepository {
	return &TransactionGormRepository{db: db}
}

// ヘッダのみ保存。明細・担当者は関連として保存しない。
func (r *TransactionGormRepository) Create(ctx context.Context, t *model.Transaction) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *TransactionGormRepository) FindByID(ctx context.Context, id string) (model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items", itemsInOrder).
		Preload("Cashier").
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return model.Transaction{}, translateErr(err)
	}
	return t, nil
}

// 新しい順。From/Toは[From, To)
func (r *TransactionGormRepository) List(ctx context.Context, f repo.TransactionListFilter) ([]model.Transaction, error) {
	var list []model.Transaction

	limit := f.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	if limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}

	tx := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Preload("Items", itemsInOrder).
		Preload("Cashier")

	if f.From != nil {
		tx = tx.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		tx = tx.Where("created_at < ?", *f.To)
	}

	err := tx.Order("created_at desc").Order("transaction_number desc").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return []model.Transaction{}, err
	}
	return list, nil
}
