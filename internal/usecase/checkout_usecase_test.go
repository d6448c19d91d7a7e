package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"
	"cafepos/internal/repository/mocks"
	"cafepos/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutFixture struct {
	orders   *usecase.OrderUsecase
	checkout *usecase.CheckoutUsecase
	txm      *mocks.TxManager
	repos    *mocks.TxRepos
	clock    *mocks.FixedClock
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	clock := &mocks.FixedClock{T: time.Date(2026, 10, 16, 9, 30, 0, 0, wib)}
	sessions := usecase.NewSessionRegistry(time.Hour, clock, zap.NewNop())

	menu := new(mocks.MenuItemRepo)
	menu.On("FindByID", mock.Anything, "espresso").Return(menuEspresso, nil).Maybe()
	menu.On("FindByID", mock.Anything, "cappuccino").Return(menuCappuccino, nil).Maybe()

	repos := mocks.NewTxRepos()
	repos.UsersRepo.On("FindByID", mock.Anything, cashier.UserID).
		Return(&model.User{ID: cashier.UserID, Username: "kasir", DisplayName: "Kasir Pagi", Role: model.RoleCashier}, nil).Maybe()
	txm := mocks.NewTxManager(repos)

	receipts := usecase.NewReceiptFormatter(usecase.ShopInfo{Name: "CafePos", Address: "Jl. Kopi No. 123, Jakarta"}, wib)

	return &checkoutFixture{
		orders:   usecase.NewOrderUsecase(sessions, menu),
		checkout: usecase.NewCheckoutUsecase(sessions, txm, receipts, &mocks.SeqIDGen{}, clock, wib, zap.NewNop()),
		txm:      txm,
		repos:    repos,
		clock:    clock,
	}
}

func (f *checkoutFixture) expectWritesOK() {
	f.repos.TransactionsRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil)
	f.repos.TransactionItemsRepo.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func TestCheckout_ExactPayment(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.expectWritesOK()
	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(1, nil).Once()

	_, _ = f.orders.AddItem(ctx, cashier, "cappuccino")

	out, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "33000"})
	require.NoError(t, err)

	tr := out.Transaction
	assert.Equal(t, "TRX-20261016-001", tr.TransactionNumber)
	assert.Equal(t, model.PaymentStatusCompleted, tr.PaymentStatus)
	assert.Equal(t, cashier.UserID, tr.CashierID)
	assertDec(t, "30000", tr.Subtotal)
	assertDec(t, "3000", tr.Tax)
	assertDec(t, "33000", tr.Total)
	assertDec(t, "33000", tr.PaidAmount)
	assertDec(t, "0", tr.ChangeAmount)
	require.Len(t, tr.Items, 1)
	assert.Equal(t, "Cappuccino", tr.Items[0].MenuItemName)
	assertDec(t, "30000", tr.Items[0].TotalPrice)
	assert.Contains(t, out.Receipt, "TRX-20261016-001")
	assert.Contains(t, out.Receipt, "Kasir Pagi")

	// 会計後はカートが空
	view, err := f.orders.GetOrder(ctx, cashier)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, model.OrderTypeDineIn, view.OrderType)
	assert.Equal(t, 1, view.TableNumber)
}

func TestCheckout_ItemsKeepOrderPosition(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(1, nil).Once()
	f.repos.TransactionsRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.repos.TransactionItemsRepo.On("CreateBulk", mock.Anything, mock.Anything,
		mock.MatchedBy(func(items []model.TransactionItem) bool {
			return len(items) == 2 &&
				items[0].MenuItemID == "cappuccino" && items[0].Position == 0 &&
				items[1].MenuItemID == "espresso" && items[1].Position == 1
		})).Return(nil).Once()

	_, _ = f.orders.AddItem(ctx, cashier, "cappuccino")
	_, _ = f.orders.AddItem(ctx, cashier, "espresso")

	out, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "100000"})
	require.NoError(t, err)
	require.Len(t, out.Transaction.Items, 2)
	assert.Less(t, strings.Index(out.Receipt, "Cappuccino"), strings.Index(out.Receipt, "Espresso"))
	f.repos.TransactionItemsRepo.AssertExpectations(t)
}

func TestCheckout_InsufficientPayment_NothingRecorded(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	_, _ = f.orders.AddItem(ctx, cashier, "cappuccino")

	_, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "20000"})
	assertHTTPError(t, err, http.StatusBadRequest, "insufficient payment")
	assertErrContains(t, err, "insufficient payment")
	assert.Equal(t, 0, f.txm.Calls)

	view, _ := f.orders.GetOrder(ctx, cashier)
	assert.Len(t, view.Items, 1)
}

func TestCheckout_TwoTransactionsSameDay_Numbered(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.expectWritesOK()
	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(1, nil).Once()
	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(2, nil).Once()

	_, _ = f.orders.AddItem(ctx, cashier, "espresso")
	first, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "50000"})
	require.NoError(t, err)

	_, _ = f.orders.AddItem(ctx, cashier, "cappuccino")
	second, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "50000"})
	require.NoError(t, err)

	assert.Equal(t, "TRX-20261016-001", first.Transaction.TransactionNumber)
	assert.Equal(t, "TRX-20261016-002", second.Transaction.TransactionNumber)
	assertDec(t, "22500", first.Transaction.ChangeAmount)
}

func TestCheckout_BusinessDayUsesConfiguredZone(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.expectWritesOK()
	// UTCでは16日だがWIBでは17日
	f.clock.Set(time.Date(2026, 10, 16, 18, 30, 0, 0, time.UTC))
	f.repos.SequencesRepo.On("Next", mock.Anything, "20261017").Return(1, nil).Once()

	_, _ = f.orders.AddItem(ctx, cashier, "espresso")
	out, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "27500"})
	require.NoError(t, err)
	assert.Equal(t, "TRX-20261017-001", out.Transaction.TransactionNumber)
}

func TestCheckout_DineInWithoutTable_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	_, _ = f.orders.AddItem(ctx, cashier, "espresso")
	_, _ = f.orders.SetTableNumber(ctx, cashier, 0)

	_, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "100000"})
	he := assertHTTPError(t, err, http.StatusBadRequest, "validation error")
	assert.Equal(t, "required for dine-in", he.Fields["table_number"])
	assert.Equal(t, 0, f.txm.Calls)
}

func TestCheckout_TakeawayDropsTableNumber(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(1, nil).Once()
	f.repos.TransactionsRepo.On("Create", mock.Anything, mock.MatchedBy(func(tr *model.Transaction) bool {
		return tr.TableNumber == nil && tr.OrderType == model.OrderTypeTakeaway
	})).Return(nil).Once()
	f.repos.TransactionItemsRepo.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, _ = f.orders.AddItem(ctx, cashier, "espresso")
	_, _ = f.orders.SetTableNumber(ctx, cashier, 7)
	_, _ = f.orders.SetOrderType(ctx, cashier, "takeaway")

	out, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "27500"})
	require.NoError(t, err)
	assert.Nil(t, out.Transaction.TableNumber)
	f.repos.TransactionsRepo.AssertExpectations(t)
}

func TestCheckout_EmptyOrder(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.checkout.Checkout(context.Background(), cashier, usecase.CheckoutInput{PaidAmount: "1000"})
	he := assertHTTPError(t, err, http.StatusBadRequest, "validation error")
	assert.Equal(t, "order is empty", he.Fields["items"])
}

func TestCheckout_InvalidPaidAmount(t *testing.T) {
	f := newCheckoutFixture(t)

	for _, paid := range []string{"", "abc", "-5"} {
		_, err := f.checkout.Checkout(context.Background(), cashier, usecase.CheckoutInput{PaidAmount: paid})
		he := assertHTTPError(t, err, http.StatusBadRequest, "validation error")
		assert.Contains(t, he.Fields, "paid_amount")
	}
}

func TestCheckout_RetriesOnNumberCollision(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	dup := fmt.Errorf("%w: idx_transactions_transaction_number", repo.ErrDuplicate)

	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(1, nil).Once()
	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(2, nil).Once()
	f.repos.TransactionsRepo.On("Create", mock.Anything, mock.Anything).Return(dup).Once()
	f.repos.TransactionsRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.repos.TransactionItemsRepo.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, _ = f.orders.AddItem(ctx, cashier, "espresso")
	out, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "27500"})
	require.NoError(t, err)

	assert.Equal(t, 2, f.txm.Calls)
	assert.Equal(t, "TRX-20261016-002", out.Transaction.TransactionNumber)
}

func TestCheckout_ConflictAfterRetries_KeepsOrder(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(1, nil)
	f.repos.TransactionsRepo.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

	_, _ = f.orders.AddItem(ctx, cashier, "espresso")
	_, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "27500"})
	assertHTTPError(t, err, http.StatusConflict, "could not allocate transaction number")
	assert.Equal(t, 3, f.txm.Calls)

	view, _ := f.orders.GetOrder(ctx, cashier)
	assert.Len(t, view.Items, 1)
}

func TestCheckout_StorageFailure_KeepsOrder(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(1, nil)
	f.repos.TransactionsRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.repos.TransactionItemsRepo.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, _ = f.orders.AddItem(ctx, cashier, "espresso")
	_, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "27500"})
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")
	assert.Equal(t, 1, f.txm.Calls)

	view, _ := f.orders.GetOrder(ctx, cashier)
	assert.Len(t, view.Items, 1)
}

func TestCheckout_RoleWithoutCapability(t *testing.T) {
	f := newCheckoutFixture(t)
	guest := usecase.Actor{UserID: "u-x", Role: model.Role("guest"), SessionID: "s-x"}

	_, err := f.checkout.Checkout(context.Background(), guest, usecase.CheckoutInput{PaidAmount: "1"})
	assertHTTPError(t, err, http.StatusForbidden, "forbidden")
}

func TestCheckout_ReceiptListsLines(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.expectWritesOK()
	f.repos.SequencesRepo.On("Next", mock.Anything, "20261016").Return(1, nil).Once()

	_, _ = f.orders.AddItem(ctx, cashier, "espresso")
	_, _ = f.orders.AddItem(ctx, cashier, "espresso")
	_, _ = f.orders.AddItem(ctx, cashier, "cappuccino")

	out, err := f.checkout.Checkout(ctx, cashier, usecase.CheckoutInput{PaidAmount: "100000"})
	require.NoError(t, err)

	assert.True(t, strings.Contains(out.Receipt, "Espresso x2"))
	assert.Contains(t, out.Receipt, "Rp 50.000")
	assert.Contains(t, out.Receipt, "Rp 88.000")
	assert.Contains(t, out.Receipt, "Rp 12.000")
}
