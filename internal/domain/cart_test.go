package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCart_TotalUsesLivePrices(t *testing.T) {
	products := map[int64]*Product{
		1: {ID: 1, Name: "Saddle pad", Price: decimal.NewFromInt(50), Active: true},
		2: {ID: 2, Name: "Hoof pick", Price: decimal.NewFromInt(30), Active: true},
	}
	lines := []CartLine{{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 2}}

	cart := BuildCart(42, lines, products)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, int64(1), cart.Items[0].Product.ID)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(130)), cart.Total.String())
	assert.Equal(t, 3, cart.ItemCount())

	products[1].Price = decimal.NewFromInt(60)
	cart = BuildCart(42, lines, products)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(150)), cart.Total.String())
}

func TestBuildCart_DropsMissingProducts(t *testing.T) {
	products := map[int64]*Product{
		1: {ID: 1, Price: decimal.NewFromInt(10), Active: true},
		3: {ID: 3, Price: decimal.NewFromInt(10), Active: false},
	}
	lines := []CartLine{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 4}, {ProductID: 3, Quantity: 1}}

	cart := BuildCart(1, lines, products)

	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(10)))
}

func TestCart_SnapshotItems_FreezesPrices(t *testing.T) {
	productA := &Product{ID: 1, Name: "A", Price: decimal.NewFromInt(50), Active: true}
	productB := &Product{ID: 2, Name: "B", Price: decimal.NewFromInt(30), Active: true}
	cart := BuildCart(7, []CartLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
		map[int64]*Product{1: productA, 2: productB})

	items := cart.SnapshotItems()
	productA.Price = decimal.NewFromInt(60)

	require.Len(t, items, 2)
	assert.True(t, items[0].PriceAtPurchase.Equal(decimal.NewFromInt(50)))
	assert.True(t, items[1].PriceAtPurchase.Equal(decimal.NewFromInt(30)))
	assert.True(t, CalculateOrderTotal(items).Equal(decimal.NewFromInt(130)))
}
