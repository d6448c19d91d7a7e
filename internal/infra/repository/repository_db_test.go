package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cafepos/internal/domain/model"
	infra "cafepos/internal/infra/repository"
	repo "cafepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cashierID = "0b6f3c1e-2d4a-4f5b-8c7d-9e0f1a2b3c4d"

func newTx(number string, total int64, status model.PaymentStatus, at time.Time) model.Transaction {
	amount := decimal.NewFromInt(total)
	return model.Transaction{
		ID:                uuid.NewString(),
		TransactionNumber: number,
		CashierID:         cashierID,
		OrderType:         model.OrderTypeTakeaway,
		Subtotal:          amount,
		Tax:               decimal.Zero,
		Total:             amount,
		PaidAmount:        amount,
		ChangeAmount:      decimal.Zero,
		PaymentStatus:     status,
		CreatedAt:         at,
	}
}

// 集計はmenu_item_id単位なので名前からIDを固定で作る
func menuID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func newItem(name string, qty int64, price int64, pos int) model.TransactionItem {
	return model.TransactionItem{
		ID:           uuid.NewString(),
		MenuItemID:   menuID(name),
		MenuItemName: name,
		Quantity:     qty,
		UnitPrice:    decimal.NewFromInt(price),
		TotalPrice:   decimal.NewFromInt(price * qty),
		Position:     pos,
	}
}

// 会計と同じ手順でヘッダと明細を書く
func record(ctx context.Context, tm *infra.TxManagerGorm, t *model.Transaction, items []model.TransactionItem) error {
	return tm.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Transactions().Create(ctx, t); err != nil {
			return err
		}
		return r.TransactionItems().CreateBulk(ctx, t.ID, items)
	})
}

// =====================
// 採番
// =====================

func TestSequence_NextPerDay(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	seq := infra.NewSequenceGormRepository(d.gorm)

	for want := 1; want <= 3; want++ {
		got, err := seq.Next(ctx, "20261016")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// 日が変われば1から
	got, err := seq.Next(ctx, "20261017")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestSequence_RolledBackWithTx(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	tm := infra.NewTxManagerGorm(d.gorm)
	boom := errors.New("boom")

	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		n, err := r.Sequences().Next(ctx, "20261016")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := infra.NewSequenceGormRepository(d.gorm).Next(ctx, "20261016")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// =====================
// 取引の書き込み
// =====================

func TestTransaction_HeaderAndItemsAtomic(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	seedCashier(t, d, cashierID)
	tm := infra.NewTxManagerGorm(d.gorm)

	// 同じIDの明細2つで主キー違反にする
	bad := newItem("Espresso", 1, 25000, 0)
	dup := bad
	dup.Position = 1

	tr := newTx("TRX-20261016-001", 50000, model.PaymentStatusCompleted, time.Now())
	err := record(ctx, tm, &tr, []model.TransactionItem{bad, dup})
	require.Error(t, err)

	var headers, items int64
	require.NoError(t, d.gorm.Model(&model.Transaction{}).Count(&headers).Error)
	require.NoError(t, d.gorm.Model(&model.TransactionItem{}).Count(&items).Error)
	assert.Zero(t, headers)
	assert.Zero(t, items)

	_, err = infra.NewTransactionGormRepository(d.gorm).FindByID(ctx, tr.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTransaction_DuplicateNumber(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	seedCashier(t, d, cashierID)
	tm := infra.NewTxManagerGorm(d.gorm)

	first := newTx("TRX-20261016-001", 27500, model.PaymentStatusCompleted, time.Now())
	require.NoError(t, record(ctx, tm, &first, []model.TransactionItem{newItem("Espresso", 1, 25000, 0)}))

	second := newTx("TRX-20261016-001", 27500, model.PaymentStatusCompleted, time.Now())
	err := record(ctx, tm, &second, []model.TransactionItem{newItem("Espresso", 1, 25000, 0)})
	assert.ErrorIs(t, err, repo.ErrDuplicate)
}

func TestTransaction_ItemsComeBackInOrderPosition(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	seedCashier(t, d, cashierID)
	tm := infra.NewTxManagerGorm(d.gorm)
	txs := infra.NewTransactionGormRepository(d.gorm)

	// 名前順・挿入順とは違う並び
	items := []model.TransactionItem{
		newItem("Zebra Latte", 1, 30000, 2),
		newItem("Americano", 2, 20000, 0),
		newItem("Matcha", 1, 28000, 1),
	}
	tr := newTx("TRX-20261016-001", 98000, model.PaymentStatusCompleted, time.Now())
	require.NoError(t, record(ctx, tm, &tr, items))

	got, err := txs.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, []string{"Americano", "Matcha", "Zebra Latte"},
		[]string{got.Items[0].MenuItemName, got.Items[1].MenuItemName, got.Items[2].MenuItemName})
	require.NotNil(t, got.Cashier)
	assert.Equal(t, cashierID, got.Cashier.ID)

	list, err := txs.List(ctx, repo.TransactionListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Americano", list[0].Items[0].MenuItemName)
}

// =====================
// 日次集計
// =====================

func TestDashboard_DailySalesAndTopItem(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	seedCashier(t, d, cashierID)
	tm := infra.NewTxManagerGorm(d.gorm)
	dash := infra.NewDashboardSqlxRepository(d.sqlx)

	day := time.Date(2026, 10, 16, 0, 0, 0, 0, wib)
	next := day.AddDate(0, 0, 1)

	a := newTx("TRX-20261016-001", 60500, model.PaymentStatusCompleted, day.Add(9*time.Hour))
	require.NoError(t, record(ctx, tm, &a, []model.TransactionItem{
		newItem("Espresso", 1, 25000, 0),
		newItem("Cappuccino", 1, 30000, 1),
	}))
	b := newTx("TRX-20261016-002", 33000, model.PaymentStatusCompleted, day.Add(23*time.Hour))
	require.NoError(t, record(ctx, tm, &b, []model.TransactionItem{
		newItem("Cappuccino", 1, 30000, 0),
		newItem("Espresso", 1, 25000, 1),
	}))
	// 取消は数えない
	c := newTx("TRX-20261016-003", 99000, model.PaymentStatusCancelled, day.Add(10*time.Hour))
	require.NoError(t, record(ctx, tm, &c, []model.TransactionItem{newItem("Teh Tarik", 5, 20000, 0)}))
	// 翌日分は入らない
	e := newTx("TRX-20261017-001", 27500, model.PaymentStatusCompleted, next.Add(time.Minute))
	require.NoError(t, record(ctx, tm, &e, []model.TransactionItem{newItem("Teh Tarik", 9, 20000, 0)}))

	sum, err := dash.SalesSummary(ctx, day, next)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(93500).Equal(sum.TotalSales), sum.TotalSales.String())
	assert.Equal(t, int64(2), sum.TotalTransactions)

	top, ok, err := dash.TopItem(ctx, day, next)
	require.NoError(t, err)
	require.True(t, ok)
	// 2個ずつで同数、名前順
	assert.Equal(t, "Cappuccino", top.Name)
	assert.Equal(t, menuID("Cappuccino"), top.MenuItemID)
	assert.Equal(t, int64(2), top.Quantity)
}

func TestDashboard_EmptyDay(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	dash := infra.NewDashboardSqlxRepository(d.sqlx)

	day := time.Date(2026, 10, 16, 0, 0, 0, 0, wib)

	sum, err := dash.SalesSummary(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, sum.TotalSales.IsZero())
	assert.Zero(t, sum.TotalTransactions)

	_, ok, err := dash.TopItem(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}

// =====================
// カタログ
// =====================

func TestCategory_NameUniqueIgnoringCase(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	cats := infra.NewCategoryGormRepository(d.gorm)

	kopi, err := cats.Create(ctx, model.Category{ID: uuid.NewString(), Name: "Kopi", Icon: "Coffee", IsActive: true})
	require.NoError(t, err)

	_, err = cats.Create(ctx, model.Category{ID: uuid.NewString(), Name: "kopi", Icon: "Coffee", IsActive: true})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	// 削除済みの名前は使い直せる
	require.NoError(t, cats.SoftDelete(ctx, kopi.ID))
	_, err = cats.Create(ctx, model.Category{ID: uuid.NewString(), Name: "KOPI", Icon: "Coffee", IsActive: true})
	assert.NoError(t, err)
}

func TestMenuItem_NameUniqueIgnoringCase(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	cats := infra.NewCategoryGormRepository(d.gorm)
	items := infra.NewMenuItemGormRepository(d.gorm)

	kopi, err := cats.Create(ctx, model.Category{ID: uuid.NewString(), Name: "Kopi", Icon: "Coffee", IsActive: true})
	require.NoError(t, err)

	_, err = items.Create(ctx, model.MenuItem{ID: uuid.NewString(), CategoryID: kopi.ID, Name: "Espresso", Price: decimal.NewFromInt(25000), IsAvailable: true})
	require.NoError(t, err)
	_, err = items.Create(ctx, model.MenuItem{ID: uuid.NewString(), CategoryID: kopi.ID, Name: "ESPRESSO", Price: decimal.NewFromInt(26000), IsAvailable: true})
	assert.ErrorIs(t, err, repo.ErrDuplicate)
}

// =====================
// 監査ログ
// =====================

func TestAuditLog_ListFilters(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	logs := infra.NewAuditLogGormRepository(d.gorm)

	adminA := uuid.NewString()
	adminB := uuid.NewString()
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, wib)

	entries := []model.AuditLog{
		{ActorUserID: adminA, Action: model.AuditActionCreate, ResourceType: model.AuditResourceCategory, ResourceID: "c1", CreatedAt: day.Add(8 * time.Hour)},
		{ActorUserID: adminA, Action: model.AuditActionDelete, ResourceType: model.AuditResourceMenuItem, ResourceID: "m1", CreatedAt: day.Add(9 * time.Hour)},
		{ActorUserID: adminB, Action: model.AuditActionDelete, ResourceType: model.AuditResourceMenuItem, ResourceID: "m2", CreatedAt: day.Add(10 * time.Hour)},
		{ActorUserID: adminA, Action: model.AuditActionDelete, ResourceType: model.AuditResourceMenuItem, ResourceID: "m3", CreatedAt: day.AddDate(0, 0, 1).Add(time.Hour)},
	}
	for _, e := range entries {
		require.NoError(t, logs.Create(ctx, e))
	}

	del := model.AuditActionDelete
	from, to := day, day.AddDate(0, 0, 1)

	got, err := logs.List(ctx, repo.AuditLogFilter{ActorUserID: &adminA, Action: &del, CreatedFrom: &from, CreatedTo: &to})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ResourceID)

	// 新しい順
	all, err := logs.List(ctx, repo.AuditLogFilter{ActorUserID: &adminA})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "m3", all[0].ResourceID)
	assert.Equal(t, "c1", all[2].ResourceID)

	page, err := logs.List(ctx, repo.AuditLogFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
}
