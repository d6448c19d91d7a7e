package usecase

import (
	"context"
	"strings"
	"time"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardUsecase は日次売上の集計。
type DashboardUsecase struct {
	dashboard repo.DashboardRepository
	clock     Clock
	loc       *time.Location
	log       *zap.Logger
}

func NewDashboardUsecase(dashboard repo.DashboardRepository, clock Clock, loc *time.Location, log *zap.Logger) *DashboardUsecase {
	return &DashboardUsecase{dashboard: dashboard, clock: clock, loc: loc, log: log}
}

// DailySales はdate（YYYY-MM-DD、空なら今日）の営業日を集計する。
func (u *DashboardUsecase) DailySales(ctx context.Context, actor Actor, date string) (model.DailySales, error) {
	if err := actor.Require(model.CapViewDashboard); err != nil {
		return model.DailySales{}, err
	}

	var day time.Time
	if strings.TrimSpace(date) == "" {
		now := u.clock.Now().In(u.loc)
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, u.loc)
	} else {
		d, err := time.ParseInLocation(dateLayout, date, u.loc)
		if err != nil {
			return model.DailySales{}, NewValidationError(map[string]string{"date": "must be YYYY-MM-DD"})
		}
		day = d
	}
	next := day.AddDate(0, 0, 1)

	sum, err := u.dashboard.SalesSummary(ctx, day, next)
	if err != nil {
		u.log.Error("failed to aggregate sales", zap.Error(err))
		return model.DailySales{}, errDB
	}

	top, ok, err := u.dashboard.TopItem(ctx, day, next)
	if err != nil {
		u.log.Error("failed to find top item", zap.Error(err))
		return model.DailySales{}, errDB
	}

	out := model.DailySales{
		Date:               day.Format(dateLayout),
		TotalSales:         sum.TotalSales,
		TotalTransactions:  sum.TotalTransactions,
		AverageTransaction: decimal.Zero,
		TopItem:            model.NoTopItem,
	}
	if sum.TotalTransactions > 0 {
		out.AverageTransaction = sum.TotalSales.Div(decimal.NewFromInt(sum.TotalTransactions)).Round(2)
	}
	if ok {
		out.TopItem = top.Name
	}
	return out, nil
}
