package repository

import (
	"errors"
	"fmt"

	repo "cafepos/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQLの一意制約違反
const pgUniqueViolation = "23505"

// translateErr はドライバのエラーをrepositoryのエラーに寄せる。
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", repo.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
