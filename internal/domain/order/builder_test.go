package order_test

import (
	"math"
	"math/rand"
	"testing"

	"cafepos/internal/domain/model"
	"cafepos/internal/domain/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	espresso   = order.Item{ID: "espresso", Name: "Espresso", Price: decimal.NewFromInt(25000)}
	cappuccino = order.Item{ID: "cappuccino", Name: "Cappuccino", Price: decimal.NewFromInt(30000)}
	croissant  = order.Item{ID: "croissant", Name: "Croissant", Price: decimal.RequireFromString("18500.50")}
)

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s got %s", want, got.String())
}

func TestNew_DefaultsToDineInTableOne(t *testing.T) {
	o := order.New()

	assert.True(t, o.IsEmpty())
	assert.Equal(t, model.OrderTypeDineIn, o.OrderType())
	assert.Equal(t, 1, o.TableNumber())
}

// 55000 + 税10% = 60500
func TestTotals_EspressoAndCappuccino(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)
	o.AddItem(cappuccino)

	tot := o.Totals()
	assertDec(t, "55000", tot.Subtotal)
	assertDec(t, "5500", tot.Tax)
	assertDec(t, "60500", tot.Total)
}

func TestUpdateQuantity_ToZeroRemovesLine(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)
	o.AddItem(cappuccino)

	o.UpdateQuantity(espresso.ID, -1)

	lines := o.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, cappuccino.ID, lines[0].MenuItemID)

	tot := o.Totals()
	assertDec(t, "30000", tot.Subtotal)
	assertDec(t, "3000", tot.Tax)
	assertDec(t, "33000", tot.Total)
}

func TestAddItem_SameItemIncrementsQuantity(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)
	o.AddItem(espresso)
	o.AddItem(espresso)

	lines := o.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(3), lines[0].Quantity)
	assertDec(t, "75000", o.Totals().Subtotal)
}

func TestAddItem_KeepsPriceSnapshot(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)

	// 価格変更後に同じ商品を追加しても最初の価格のまま
	repriced := espresso
	repriced.Price = decimal.NewFromInt(99000)
	o.AddItem(repriced)

	lines := o.Lines()
	require.Len(t, lines, 1)
	assertDec(t, "25000", lines[0].UnitPrice)
	assert.Equal(t, int64(2), lines[0].Quantity)
}

func TestUpdateQuantity_UnknownLineIsNoOp(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)

	o.UpdateQuantity("missing", 5)
	o.UpdateQuantity("missing", -5)

	lines := o.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].Quantity)
}

func TestUpdateQuantity_LargeNegativeRemoves(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)
	o.UpdateQuantity(espresso.ID, 4)
	o.UpdateQuantity(espresso.ID, -10)

	assert.True(t, o.IsEmpty())
}

func TestUpdateQuantity_HugeDeltaDoesNotOverflow(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)

	o.UpdateQuantity(espresso.ID, math.MaxInt64)

	lines := o.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(math.MaxInt64), lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)
	o.AddItem(cappuccino)

	o.RemoveItem(espresso.ID)
	o.RemoveItem("missing")

	lines := o.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, cappuccino.ID, lines[0].MenuItemID)
}

func TestClear_IsIdempotent(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)
	require.NoError(t, o.SetOrderType(model.OrderTypeTakeaway))
	require.NoError(t, o.SetTableNumber(7))

	o.Clear()
	onceLines, onceType, onceTable := o.Lines(), o.OrderType(), o.TableNumber()

	o.Clear()
	assert.Equal(t, onceLines, o.Lines())
	assert.Equal(t, onceType, o.OrderType())
	assert.Equal(t, onceTable, o.TableNumber())

	assert.True(t, o.IsEmpty())
	assert.Equal(t, model.OrderTypeDineIn, o.OrderType())
	assert.Equal(t, 1, o.TableNumber())
	assertDec(t, "0", o.Totals().Total)
}

func TestSetOrderType_InvalidLeavesStateUntouched(t *testing.T) {
	o := order.New()
	require.NoError(t, o.SetOrderType(model.OrderTypeTakeaway))

	err := o.SetOrderType("delivery")

	ve, ok := order.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "order_type")
	assert.Equal(t, model.OrderTypeTakeaway, o.OrderType())
}

func TestSetTableNumber_NegativeRejected(t *testing.T) {
	o := order.New()

	err := o.SetTableNumber(-3)

	ve, ok := order.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "table_number")
	assert.Equal(t, 1, o.TableNumber())
}

func TestSwitchingToTakeaway_KeepsTableNumber(t *testing.T) {
	o := order.New()
	require.NoError(t, o.SetTableNumber(5))
	require.NoError(t, o.SetOrderType(model.OrderTypeTakeaway))

	assert.Equal(t, 5, o.TableNumber())
	assert.Nil(t, o.EffectiveTableNumber())

	require.NoError(t, o.SetOrderType(model.OrderTypeDineIn))
	require.NotNil(t, o.EffectiveTableNumber())
	assert.Equal(t, 5, *o.EffectiveTableNumber())
}

func TestValidate_DineInWithoutTable(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)
	require.NoError(t, o.SetTableNumber(0))

	ve, ok := order.AsValidationError(o.Validate())
	require.True(t, ok)
	assert.Equal(t, "required for dine-in", ve.Fields["table_number"])
}

func TestValidate_TakeawayIgnoresTable(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)
	require.NoError(t, o.SetTableNumber(0))
	require.NoError(t, o.SetOrderType(model.OrderTypeTakeaway))

	assert.NoError(t, o.Validate())
	assert.Nil(t, o.EffectiveTableNumber())
}

func TestValidate_EmptyOrder(t *testing.T) {
	ve, ok := order.AsValidationError(order.New().Validate())
	require.True(t, ok)
	assert.Equal(t, "order is empty", ve.Fields["items"])
}

func TestTotals_FractionalPrices(t *testing.T) {
	o := order.New()
	o.AddItem(croissant)
	o.UpdateQuantity(croissant.ID, 2)

	tot := o.Totals()
	assertDec(t, "55501.50", tot.Subtotal)
	assertDec(t, "5550.15", tot.Tax)
	assertDec(t, "61051.65", tot.Total)
}

func TestTotals_TaxRoundsToCents(t *testing.T) {
	tot := order.ComputeTotals([]order.Line{
		{MenuItemID: "x", UnitPrice: decimal.RequireFromString("0.05"), Quantity: 1},
	})

	assertDec(t, "0.05", tot.Subtotal)
	assertDec(t, "0.01", tot.Tax)
	assertDec(t, "0.06", tot.Total)
}

func TestLines_ReturnsCopy(t *testing.T) {
	o := order.New()
	o.AddItem(espresso)

	lines := o.Lines()
	lines[0].Quantity = 42

	assert.Equal(t, int64(1), o.Lines()[0].Quantity)
}

// ランダムな操作列でも小計 = Σ(単価×数量) で、数量0以下の明細が残らない
func TestRandomOperations_SubtotalMatchesLines(t *testing.T) {
	items := []order.Item{espresso, cappuccino, croissant}
	rng := rand.New(rand.NewSource(20240501))

	for run := 0; run < 200; run++ {
		o := order.New()
		for step := 0; step < 40; step++ {
			it := items[rng.Intn(len(items))]
			switch rng.Intn(3) {
			case 0:
				o.AddItem(it)
			case 1:
				o.UpdateQuantity(it.ID, int64(rng.Intn(7)-3))
			case 2:
				o.RemoveItem(it.ID)
			}
		}

		want := decimal.Zero
		for _, l := range o.Lines() {
			require.Greater(t, l.Quantity, int64(0))
			want = want.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
		}

		tot := o.Totals()
		require.True(t, want.Equal(tot.Subtotal), "run %d: want %s got %s", run, want, tot.Subtotal)
		require.True(t, tot.Subtotal.Mul(order.TaxRate).Round(2).Equal(tot.Tax))
		require.True(t, tot.Subtotal.Add(tot.Tax).Equal(tot.Total))
	}
}
