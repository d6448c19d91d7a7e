package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"cafepos/internal/domain/order"
	"cafepos/internal/validator"
)

type HTTPError struct {
	Status  int
	Message string
	// フィールド単位の入力エラー（400のとき）
	Fields map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 400 validation error + フィールド
func NewValidationError(fields map[string]string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "validation error",
		Fields:  fields,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func fieldsError(f validator.Fields) error {
	if f.OK() {
		return nil
	}
	return NewValidationError(f)
}

// 注文ドメインのエラーをHTTPErrorに寄せる
func fromOrderError(err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := order.AsValidationError(err); ok {
		return NewValidationError(ve.Fields)
	}
	if errors.Is(err, order.ErrInsufficientPayment) {
		return NewHTTPError(http.StatusBadRequest, "insufficient payment")
	}
	return err
}

var (
	errUnauthorized = NewHTTPError(http.StatusUnauthorized, "unauthorized")
	errForbidden    = NewHTTPError(http.StatusForbidden, "forbidden")
	errNotFound     = NewHTTPError(http.StatusNotFound, "not found")
	errDB           = NewHTTPError(http.StatusInternalServerError, "db error")
)
