package repository

import (
	"context"
	"time"

	"cafepos/internal/domain/model"
)

// 取引一覧の条件
type TransactionListFilter struct {
	Limit int
	From  *time.Time
	To    *time.Time
}

type TransactionRepository interface {
	// ヘッダだけ作る。明細はTransactionItemRepositoryで。
	Create(ctx context.Context, t *model.Transaction) error
	// 明細とレジ担当者付きで1件取得
	FindByID(ctx context.Context, id string) (model.Transaction, error)
	// 新しい順
	List(ctx context.Context, f TransactionListFilter) ([]model.Transaction, error)
}

type TransactionItemRepository interface {
	CreateBulk(ctx context.Context, transactionID string, items []model.TransactionItem) error
}

// 日ごとの取引番号カウンタ
type SequenceRepository interface {
	// dayのカウンタを+1して新しい値を返す（Tx内で行ロック）
	Next(ctx context.Context, day string) (int, error)
}
