package repository

import (
	"context"

	repo "cafepos/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	transactions     repo.TransactionRepository
	transactionItems repo.TransactionItemRepository
	sequences        repo.SequenceRepository
	categories       repo.CategoryRepository
	menuItems        repo.MenuItemRepository
	auditLogs        repo.AuditLogRepository
	users            repo.UserRepository
}

func (r *txReposGorm) Transactions() repo.TransactionRepository         { return r.transactions }
func (r *txReposGorm) TransactionItems() repo.TransactionItemRepository { return r.transactionItems }
func (r *txReposGorm) Sequences() repo.SequenceRepository               { return r.sequences }
func (r *txReposGorm) Categories() repo.CategoryRepository              { return r.categories }
func (r *txReposGorm) MenuItems() repo.MenuItemRepository               { return r.menuItems }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository               { return r.auditLogs }
func (r *txReposGorm) Users() repo.UserRepository                       { return r.users }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			transactions:     NewTransactionGormRepository(tx),
			transactionItems: NewTransactionItemGormRepository(tx),
			sequences:        NewSequenceGormRepository(tx),
			categories:       NewCategoryGormRepository(tx),
			menuItems:        NewMenuItemGormRepository(tx),
			auditLogs:        NewAuditLogGormRepository(tx),
			users:            NewUserGormRepository(tx),
		}
		return fn(r)
	})
}
