package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const salesSummarySQL = `
SELECT COALESCE(SUM(total), 0) AS total_sales, COUNT(id) AS total_transactions
FROM transactions
WHERE created_at >= $1 AND created_at < $2 AND payment_status = $3`

// 同数なら名前順
const topItemSQL = `
SELECT ti.menu_item_id, MAX(ti.menu_item_name) AS name, SUM(ti.quantity) AS quantity
FROM transaction_items ti
JOIN transactions t ON t.id = ti.transaction_id
WHERE t.created_at >= $1 AND t.created_at < $2 AND t.payment_status = $3
GROUP BY ti.menu_item_id
ORDER BY quantity DESC, name ASC
LIMIT 1`

// 集計は読み取り専用なのでsqlxで素のSQLを書く。
type DashboardSqlxRepository struct {
	db *sqlx.DB
}

func NewDashboardSqlxRepository(db *sqlx.DB) *DashboardSqlxRepository {
	return &DashboardSqlxRepository{db: db}
}

func (r *DashboardSqlxRepository) SalesSummary(ctx context.Context, from, to time.Time) (repo.SalesSummary, error) {
	var row struct {
		TotalSales        decimal.Decimal `db:"total_sales"`
		TotalTransactions int64           `db:"total_transactions"`
	}
	err := r.db.GetContext(ctx, &row, salesSummarySQL, from, to, model.PaymentStatusCompleted)
	if err != nil {
		return repo.SalesSummary{}, err
	}
	return repo.SalesSummary{
		TotalSales:        row.TotalSales,
		TotalTransactions: row.TotalTransactions,
	}, nil
}

func (r *DashboardSqlxRepository) TopItem(ctx context.Context, from, to time.Time) (repo.TopItem, bool, error) {
	var row struct {
		MenuItemID string `db:"menu_item_id"`
		Name       string `db:"name"`
		Quantity   int64  `db:"quantity"`
	}
	err := r.db.GetContext(ctx, &row, topItemSQL, from, to, model.PaymentStatusCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		return repo.TopItem{}, false, nil
	}
	if err != nil {
		return repo.TopItem{}, false, err
	}
	return repo.TopItem{MenuItemID: row.MenuItemID, Name: row.Name, Quantity: row.Quantity}, true, nil
}
