package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnminh/vshop/internal/app/model"
)

func product(id uint, price float64) model.Product {
	return model.Product{ID: id, Name: "Product", Price: price}
}

func TestLedger_Add_NewItem(t *testing.T) {
	ledger := NewLedger(nil)

	ledger.Add(product(1, 100000))

	snapshot := ledger.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 1, snapshot.Items[0].Quantity)
	assert.Equal(t, float64(100000), snapshot.Total)
}

func TestLedger_Add_SameProductIncrements(t *testing.T) {
	ledger := NewLedger(nil)

	ledger.Add(product(1, 100000))
	ledger.Add(product(1, 100000))

	// One line item with quantity 2, not two line items.
	snapshot := ledger.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 2, snapshot.Items[0].Quantity)
	assert.Equal(t, float64(200000), snapshot.Total)
}

func TestLedger_TotalScenario(t *testing.T) {
	ledger := NewLedger(nil)

	ledger.Add(product(1, 100000))
	ledger.Add(product(1, 100000))
	ledger.Add(product(2, 50000))

	assert.Equal(t, float64(250000), ledger.Total())
}

func TestLedger_TotalInvariantAfterEveryStep(t *testing.T) {
	ledger := NewLedger(nil)

	check := func() {
		snapshot := ledger.Snapshot()
		assert.Equal(t, snapshot.Sum(), snapshot.Total)
	}

	ledger.Add(product(1, 100000))
	check()
	ledger.Add(product(2, 50000))
	check()
	require.NoError(t, ledger.SetQuantity(1, 5))
	check()
	ledger.Remove(2)
	check()
	ledger.Add(product(3, 75000))
	check()
	ledger.Remove(1)
	check()
}

func TestLedger_Remove(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.Add(product(1, 100000))
	ledger.Add(product(2, 50000))

	ledger.Remove(1)

	snapshot := ledger.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, uint(2), snapshot.Items[0].ID)
	assert.Equal(t, float64(50000), snapshot.Total)
}

func TestLedger_Remove_AbsentIsNoop(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.Add(product(1, 100000))

	ledger.Remove(99)

	assert.Len(t, ledger.Snapshot().Items, 1)
}

func TestLedger_SetQuantity(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.Add(product(1, 100000))

	err := ledger.SetQuantity(1, 4)

	assert.NoError(t, err)
	assert.Equal(t, float64(400000), ledger.Total())
}

func TestLedger_SetQuantity_ZeroRejected(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.Add(product(1, 100000))

	err := ledger.SetQuantity(1, 0)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	// Snapshot unchanged.
	snapshot := ledger.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 1, snapshot.Items[0].Quantity)
	assert.Equal(t, float64(100000), snapshot.Total)
}

func TestLedger_SetQuantity_NegativeRejected(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.Add(product(1, 100000))

	assert.ErrorIs(t, ledger.SetQuantity(1, -3), ErrInvalidQuantity)
}

func TestLedger_SetQuantity_UnknownItem(t *testing.T) {
	ledger := NewLedger(nil)

	assert.ErrorIs(t, ledger.SetQuantity(42, 1), ErrItemNotFound)
}

func TestLedger_Replace_RecomputesTotal(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.Add(product(9, 1))

	// Incoming snapshot carries a stale total; Replace must not trust it.
	ledger.Replace(model.Cart{
		Items: []model.CartItem{
			{Product: product(1, 100000), Quantity: 2},
			{Product: product(2, 50000), Quantity: 1},
		},
		Total: 1,
	})

	assert.Equal(t, float64(250000), ledger.Total())
}

func TestLedger_Clear(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.Add(product(1, 100000))

	ledger.Clear()

	assert.Empty(t, ledger.Snapshot().Items)
	assert.Equal(t, float64(0), ledger.Total())
}

func TestLedger_BasePriceFallback(t *testing.T) {
	ledger := NewLedger(nil)

	// Legacy records carry basePrice instead of price.
	ledger.Add(model.Product{ID: 1, BasePrice: 80000})
	ledger.Add(model.Product{ID: 2}) // no price at all counts as zero

	require.NoError(t, ledger.SetQuantity(1, 3))
	assert.Equal(t, float64(240000), ledger.Total())
}

func TestLedger_OnSaveFiresPerMutation(t *testing.T) {
	var saved []model.Cart
	ledger := NewLedger(func(c model.Cart) {
		saved = append(saved, c)
	})

	ledger.Add(product(1, 100000))
	require.NoError(t, ledger.SetQuantity(1, 2))
	ledger.Clear()

	require.Len(t, saved, 3)
	assert.Equal(t, float64(100000), saved[0].Total)
	assert.Equal(t, float64(200000), saved[1].Total)
	assert.Empty(t, saved[2].Items)
}

func TestLedger_SnapshotIsACopy(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.Add(product(1, 100000))

	snapshot := ledger.Snapshot()
	snapshot.Items[0].Quantity = 99

	assert.Equal(t, 1, ledger.Snapshot().Items[0].Quantity)
}
