package mocks

import (
	"context"

	repo "cafepos/internal/repository"
)

// TxRepos はWithinTxに渡すモック一式。
type TxRepos struct {
	TransactionsRepo     *TransactionRepo
	TransactionItemsRepo *TransactionItemRepo
	SequencesRepo        *SequenceRepo
	CategoriesRepo       *CategoryRepo
	MenuItemsRepo        *MenuItemRepo
	AuditLogsRepo        *AuditLogRepo
	UsersRepo            *UserRepo
}

func NewTxRepos() *TxRepos {
	return &TxRepos{
		TransactionsRepo:     new(TransactionRepo),
		TransactionItemsRepo: new(TransactionItemRepo),
		SequencesRepo:        new(SequenceRepo),
		CategoriesRepo:       new(CategoryRepo),
		MenuItemsRepo:        new(MenuItemRepo),
		AuditLogsRepo:        new(AuditLogRepo),
		UsersRepo:            new(UserRepo),
	}
}

func (r *TxRepos) Transactions() repo.TransactionRepository         { return r.TransactionsRepo }
func (r *TxRepos) TransactionItems() repo.TransactionItemRepository { return r.TransactionItemsRepo }
func (r *TxRepos) Sequences() repo.SequenceRepository               { return r.SequencesRepo }
func (r *TxRepos) Categories() repo.CategoryRepository              { return r.CategoriesRepo }
func (r *TxRepos) MenuItems() repo.MenuItemRepository               { return r.MenuItemsRepo }
func (r *TxRepos) AuditLogs() repo.AuditLogRepository               { return r.AuditLogsRepo }
func (r *TxRepos) Users() repo.UserRepository                       { return r.UsersRepo }

// TxManager はfnをそのまま呼ぶ。呼ばれた回数を数える。
type TxManager struct {
	Repos *TxRepos
	Calls int
}

func NewTxManager(r *TxRepos) *TxManager {
	return &TxManager{Repos: r}
}

func (tm *TxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.Calls++
	return fn(tm.Repos)
}

var _ repo.TransactionManager = (*TxManager)(nil)
