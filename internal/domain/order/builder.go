// Package order は端末ごとのカート（注文ビルダー）と支払い計算。
// ストレージには一切触らない。
package order

import (
	"math"

	"cafepos/internal/domain/model"

	"github.com/shopspring/decimal"
)

const defaultTableNumber = 1

// カートに入れる商品
type Item struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// ItemFromMenu はメニューの現在の名前と価格でItemを作る。
func ItemFromMenu(m model.MenuItem) Item {
	return Item{ID: m.ID, Name: m.Name, Price: m.Price}
}

// 明細。IDはメニューIDと同じ。
type Line struct {
	MenuItemID string          `json:"id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
}

func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Order は1端末セッションのカート。ロックは持たない。
type Order struct {
	lines       []Line
	orderType   model.OrderType
	tableNumber int
}

func New() *Order {
	o := &Order{}
	o.Clear()
	return o
}

// AddItem は同じメニューなら数量+1、無ければ数量1で追加。
func (o *Order) AddItem(item Item) {
	for i := range o.lines {
		if o.lines[i].MenuItemID == item.ID {
			o.lines[i].Quantity++
			return
		}
	}

	o.lines = append(o.lines, Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
	})
}

// UpdateQuantity は数量にdeltaを足す。0以下になったら明細を消す。
func (o *Order) UpdateQuantity(lineID string, delta int64) {
	for i := range o.lines {
		if o.lines[i].MenuItemID != lineID {
			continue
		}
		cur := o.lines[i].Quantity
		// 足し算で溢れるときは上限で止める
		if delta > 0 && cur > math.MaxInt64-delta {
			o.lines[i].Quantity = math.MaxInt64
			return
		}
		q := cur + delta
		if q <= 0 {
			o.removeAt(i)
			return
		}
		o.lines[i].Quantity = q
		return
	}
}

func (o *Order) RemoveItem(lineID string) {
	for i := range o.lines {
		if o.lines[i].MenuItemID == lineID {
			o.removeAt(i)
			return
		}
	}
}

func (o *Order) removeAt(i int) {
	o.lines = append(o.lines[:i], o.lines[i+1:]...)
}

// SetOrderType はdine-in/takeawayを切り替える。テーブル番号は消さない。
func (o *Order) SetOrderType(t model.OrderType) error {
	if !t.Valid() {
		return newValidationError("order_type", "must be dine-in or takeaway")
	}
	o.orderType = t
	return nil
}

// SetTableNumber は0で未設定に戻す。
func (o *Order) SetTableNumber(n int) error {
	if n < 0 {
		return newValidationError("table_number", "must be a positive integer")
	}
	o.tableNumber = n
	return nil
}

// Clear は空のdine-in、テーブル1に戻す。
func (o *Order) Clear() {
	o.lines = nil
	o.orderType = model.OrderTypeDineIn
	o.tableNumber = defaultTableNumber
}

func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) IsEmpty() bool {
	return len(o.lines) == 0
}

func (o *Order) OrderType() model.OrderType {
	return o.orderType
}

// 入力されたままのテーブル番号（takeawayでも保持している）
func (o *Order) TableNumber() int {
	return o.tableNumber
}

// EffectiveTableNumber はdine-inのときだけテーブル番号を返す。
func (o *Order) EffectiveTableNumber() *int {
	if o.orderType != model.OrderTypeDineIn || o.tableNumber <= 0 {
		return nil
	}
	n := o.tableNumber
	return &n
}

func (o *Order) Totals() Totals {
	return ComputeTotals(o.lines)
}

// Validate は会計前のチェック。
func (o *Order) Validate() error {
	fields := map[string]string{}

	if len(o.lines) == 0 {
		fields["items"] = "order is empty"
	}
	if o.orderType == model.OrderTypeDineIn && o.tableNumber <= 0 {
		fields["table_number"] = "required for dine-in"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
