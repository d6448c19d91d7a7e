package usecase_test

import (
	"testing"
	"time"

	"cafepos/internal/domain/model"
	"cafepos/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WIB (UTC+7)
var wib = time.FixedZone("WIB", 7*60*60)

var (
	cashier = usecase.Actor{UserID: "u-cashier", Role: model.RoleCashier, SessionID: "s-1"}
	admin   = usecase.Actor{UserID: "u-admin", Role: model.RoleAdmin, SessionID: "s-admin"}
)

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	require.Error(t, err)
	assert.Contains(t, err.Error(), want)
}

func assertHTTPError(t *testing.T, err error, status int, msg string) *usecase.HTTPError {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "want HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
	assert.Equal(t, msg, he.Message)
	return he
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s got %s", want, got.String())
}
