package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"
	"cafepos/internal/validator"

	"go.uber.org/zap"
)

type ListTransactionsInput struct {
	Limit int
	From  string // YYYY-MM-DD（その日を含む）
	To    string // YYYY-MM-DD（その日を含む）
}

// TransactionUsecase は保存済み取引の参照とレシート再発行。
type TransactionUsecase struct {
	transactions repo.TransactionRepository
	receipts     *ReceiptFormatter
	loc          *time.Location
	log          *zap.Logger
}

func NewTransactionUsecase(transactions repo.TransactionRepository, receipts *ReceiptFormatter, loc *time.Location, log *zap.Logger) *TransactionUsecase {
	return &TransactionUsecase{transactions: transactions, receipts: receipts, loc: loc, log: log}
}

func (u *TransactionUsecase) List(ctx context.Context, actor Actor, in ListTransactionsInput) ([]model.Transaction, error) {
	if err := actor.Require(model.CapCheckout); err != nil {
		return nil, err
	}
	if in.Limit < 0 || in.Limit > 200 {
		return nil, NewValidationError(map[string]string{"limit": "must be 1-200"})
	}

	from, to, err := parseDayRange(u.loc, in.From, in.To)
	if err != nil {
		return nil, err
	}
	f := repo.TransactionListFilter{Limit: in.Limit, From: from, To: to}

	list, err := u.transactions.List(ctx, f)
	if err != nil {
		u.log.Error("failed to list transactions", zap.Error(err))
		return nil, errDB
	}
	return list, nil
}

func (u *TransactionUsecase) Get(ctx context.Context, actor Actor, id string) (model.Transaction, error) {
	if err := actor.Require(model.CapCheckout); err != nil {
		return model.Transaction{}, err
	}
	if !validator.IsUUID(id) {
		return model.Transaction{}, NewHTTPError(http.StatusBadRequest, "invalid transaction id")
	}

	t, err := u.transactions.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Transaction{}, errNotFound
	}
	if err != nil {
		u.log.Error("failed to load transaction", zap.String("id", id), zap.Error(err))
		return model.Transaction{}, errDB
	}
	return t, nil
}

// Receipt は保存済み取引のレシートを作り直す。
func (u *TransactionUsecase) Receipt(ctx context.Context, actor Actor, id string) (string, error) {
	t, err := u.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}
	return u.receipts.Format(t), nil
}
