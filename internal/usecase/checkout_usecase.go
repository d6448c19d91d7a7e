package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cafepos/internal/domain/model"
	"cafepos/internal/domain/order"
	repo "cafepos/internal/repository"
	"cafepos/internal/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 取引番号が衝突したときのやり直し回数
const maxCheckoutAttempts = 3

type CheckoutInput struct {
	PaidAmount string
}

type CheckoutOutput struct {
	Transaction model.Transaction `json:"transaction"`
	Receipt     string            `json:"receipt"`
}

// CheckoutUsecase は端末のカートを会計して取引として保存する。
type CheckoutUsecase struct {
	sessions *SessionRegistry
	tx       repo.TransactionManager
	receipts *ReceiptFormatter
	idGen    IDGenerator
	clock    Clock
	loc      *time.Location
	log      *zap.Logger
}

func NewCheckoutUsecase(
	sessions *SessionRegistry,
	tx repo.TransactionManager,
	receipts *ReceiptFormatter,
	idGen IDGenerator,
	clock Clock,
	loc *time.Location,
	log *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		sessions: sessions,
		tx:       tx,
		receipts: receipts,
		idGen:    idGen,
		clock:    clock,
		loc:      loc,
		log:      log,
	}
}

// Checkout は 検証→支払い計算→保存→カートを空に の順。
// 途中で失敗したらカートはそのまま残る。
func (u *CheckoutUsecase) Checkout(ctx context.Context, actor Actor, in CheckoutInput) (CheckoutOutput, error) {
	if err := actor.Require(model.CapCheckout); err != nil {
		return CheckoutOutput{}, err
	}
	if err := actor.requireSession(); err != nil {
		return CheckoutOutput{}, err
	}

	paid, msg := validator.Money(in.PaidAmount)
	if msg != "" {
		return CheckoutOutput{}, NewValidationError(map[string]string{"paid_amount": msg})
	}

	var out CheckoutOutput
	err := u.sessions.WithOrder(actor.SessionID, func(o *order.Order) error {
		if err := o.Validate(); err != nil {
			return fromOrderError(err)
		}

		totals := o.Totals()
		change, err := order.Evaluate(totals.Total, paid)
		if err != nil {
			return fromOrderError(err)
		}

		t, err := u.record(ctx, actor.UserID, o, totals, paid, change)
		if err != nil {
			return err
		}

		// コミット後にだけ空にする
		o.Clear()

		out = CheckoutOutput{Transaction: t, Receipt: u.receipts.Format(t)}
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	u.log.Info("checkout completed",
		zap.String("transaction_number", out.Transaction.TransactionNumber),
		zap.String("cashier_id", actor.UserID),
		zap.String("total", out.Transaction.Total.String()),
		zap.Int("items", len(out.Transaction.Items)),
	)
	return out, nil
}

// record は番号採番・ヘッダ・明細を1つのDBトランザクションで書く。
func (u *CheckoutUsecase) record(
	ctx context.Context,
	cashierID string,
	o *order.Order,
	totals order.Totals,
	paid, change decimal.Decimal,
) (model.Transaction, error) {
	lines := o.Lines()

	for attempt := 1; attempt <= maxCheckoutAttempts; attempt++ {
		now := u.clock.Now()
		day := now.In(u.loc)

		t := model.Transaction{
			ID:            u.idGen.NewID(),
			CashierID:     cashierID,
			OrderType:     o.OrderType(),
			TableNumber:   o.EffectiveTableNumber(),
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
			PaidAmount:    paid,
			ChangeAmount:  change,
			PaymentStatus: model.PaymentStatusCompleted,
			CreatedAt:     now,
		}

		items := make([]model.TransactionItem, 0, len(lines))
		for i, l := range lines {
			items = append(items, model.TransactionItem{
				ID:           u.idGen.NewID(),
				MenuItemID:   l.MenuItemID,
				MenuItemName: l.Name,
				Position:     i,
				Quantity:     l.Quantity,
				UnitPrice:    l.UnitPrice,
				TotalPrice:   l.LineTotal(),
			})
		}

		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			seq, err := r.Sequences().Next(ctx, day.Format("20060102"))
			if err != nil {
				return err
			}
			t.TransactionNumber = model.FormatTransactionNumber(day, seq)

			if err := r.Transactions().Create(ctx, &t); err != nil {
				return err
			}
			if err := r.TransactionItems().CreateBulk(ctx, t.ID, items); err != nil {
				return err
			}

			// レシート用
			cashier, err := r.Users().FindByID(ctx, cashierID)
			if err != nil {
				return err
			}
			t.Cashier = cashier
			return nil
		})
		if err == nil {
			t.Items = items
			return t, nil
		}

		if errors.Is(err, repo.ErrDuplicate) {
			u.log.Warn("transaction number collision, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			continue
		}

		u.log.Error("failed to record transaction", zap.Error(err))
		return model.Transaction{}, errDB
	}

	return model.Transaction{}, NewHTTPError(http.StatusConflict, "could not allocate transaction number")
}
