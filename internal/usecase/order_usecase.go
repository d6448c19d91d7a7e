package usecase

import (
	"context"
	"errors"
	"net/http"

	"cafepos/internal/domain/model"
	"cafepos/internal/domain/order"
	repo "cafepos/internal/repository"

	"github.com/shopspring/decimal"
)

// 端末のカートの見え方
type OrderView struct {
	Items       []order.Line    `json:"items"`
	OrderType   model.OrderType `json:"order_type"`
	TableNumber int             `json:"table_number"`
	order.Totals
}

func toOrderView(o *order.Order) OrderView {
	return OrderView{
		Items:       o.Lines(),
		OrderType:   o.OrderType(),
		TableNumber: o.TableNumber(),
		Totals:      o.Totals(),
	}
}

type PaymentPresetsOutput struct {
	Total   decimal.Decimal   `json:"total"`
	Presets []decimal.Decimal `json:"presets"`
}

// OrderUsecase はレジ端末のカート操作。
type OrderUsecase struct {
	sessions  *SessionRegistry
	menuItems repo.MenuItemRepository
}

func NewOrderUsecase(sessions *SessionRegistry, menuItems repo.MenuItemRepository) *OrderUsecase {
	return &OrderUsecase{sessions: sessions, menuItems: menuItems}
}

// mutate はセッションの注文にfnを適用して、結果の注文を返す。
func (u *OrderUsecase) mutate(actor Actor, fn func(o *order.Order) error) (OrderView, error) {
	if err := actor.requireSession(); err != nil {
		return OrderView{}, err
	}

	var view OrderView
	err := u.sessions.WithOrder(actor.SessionID, func(o *order.Order) error {
		if err := fn(o); err != nil {
			return err
		}
		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return OrderView{}, fromOrderError(err)
	}
	return view, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, actor Actor) (OrderView, error) {
	return u.mutate(actor, func(*order.Order) error { return nil })
}

// AddItem は販売中のメニューだけ追加できる。価格はいまのメニュー価格。
func (u *OrderUsecase) AddItem(ctx context.Context, actor Actor, menuItemID string) (OrderView, error) {
	if err := actor.requireSession(); err != nil {
		return OrderView{}, err
	}
	if menuItemID == "" {
		return OrderView{}, NewValidationError(map[string]string{"menu_item_id": "required"})
	}

	m, err := u.menuItems.FindByID(ctx, menuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderView{}, errNotFound
	}
	if err != nil {
		return OrderView{}, errDB
	}
	if !m.IsAvailable || (m.Category != nil && !m.Category.IsActive) {
		return OrderView{}, NewHTTPError(http.StatusBadRequest, "menu item unavailable")
	}

	return u.mutate(actor, func(o *order.Order) error {
		o.AddItem(order.ItemFromMenu(m))
		return nil
	})
}

// 1回の数量変更で動かせる幅
const maxQuantityDelta = 1000

func (u *OrderUsecase) UpdateQuantity(ctx context.Context, actor Actor, lineID string, delta int64) (OrderView, error) {
	if delta > maxQuantityDelta || delta < -maxQuantityDelta {
		return OrderView{}, NewValidationError(map[string]string{"delta": "must be between -1000 and 1000"})
	}
	return u.mutate(actor, func(o *order.Order) error {
		o.UpdateQuantity(lineID, delta)
		return nil
	})
}

func (u *OrderUsecase) RemoveItem(ctx context.Context, actor Actor, lineID string) (OrderView, error) {
	return u.mutate(actor, func(o *order.Order) error {
		o.RemoveItem(lineID)
		return nil
	})
}

func (u *OrderUsecase) SetOrderType(ctx context.Context, actor Actor, t string) (OrderView, error) {
	return u.mutate(actor, func(o *order.Order) error {
		return o.SetOrderType(model.OrderType(t))
	})
}

func (u *OrderUsecase) SetTableNumber(ctx context.Context, actor Actor, n int) (OrderView, error) {
	return u.mutate(actor, func(o *order.Order) error {
		return o.SetTableNumber(n)
	})
}

func (u *OrderUsecase) Clear(ctx context.Context, actor Actor) (OrderView, error) {
	return u.mutate(actor, func(o *order.Order) error {
		o.Clear()
		return nil
	})
}

// PaymentPresets は支払額のクイックボタン（ちょうど・5万・10万・20万）
func (u *OrderUsecase) PaymentPresets(ctx context.Context, actor Actor) (PaymentPresetsOutput, error) {
	view, err := u.GetOrder(ctx, actor)
	if err != nil {
		return PaymentPresetsOutput{}, err
	}
	return PaymentPresetsOutput{
		Total:   view.Total,
		Presets: order.Presets(view.Total),
	}, nil
}
