package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimart-pos/internal/models"
)

func wholesaleProduct(id string, price, cost float64) models.Product {
	return models.Product{
		ID:           id,
		NameEnglish:  "Product " + id,
		SellingPrice: price,
		CostPrice:    cost,
		ProductType:  models.ProductTypeWholesale,
	}
}

func selfMadeProduct(id string, price, productionCost float64) models.Product {
	return models.Product{
		ID:                  id,
		NameEnglish:         "Product " + id,
		SellingPrice:        price,
		ProductionCostTotal: productionCost,
		ProductType:         models.ProductTypeSelfMade,
	}
}

func TestCartAddAccumulatesQuantity(t *testing.T) {
	cart := NewCart()
	milk := wholesaleProduct("p1", 30, 25)

	// Quantity equals the number of Add calls for the same product.
	for i := 0; i < 4; i++ {
		cart.Add(milk)
	}

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
	assert.InDelta(t, 120, cart.Total(), 1e-9)
}

func TestCartKeepsDisplayOrder(t *testing.T) {
	cart := NewCart()
	cart.Add(wholesaleProduct("p1", 30, 25))
	cart.Add(wholesaleProduct("p2", 48, 40))
	cart.Add(wholesaleProduct("p1", 30, 25))
	cart.Add(wholesaleProduct("p3", 55, 45))

	items := cart.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, "p2", items[1].Product.ID)
	assert.Equal(t, "p3", items[2].Product.ID)
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := NewCart()
	cart.Add(wholesaleProduct("p1", 30, 25))

	cart.UpdateQuantity("p1", 3)
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 3, cart.Items()[0].Quantity)
	assert.InDelta(t, 90, cart.Total(), 1e-9)
	assert.InDelta(t, 15, cart.Profit(), 1e-9)

	// Zero removes the line.
	cart.UpdateQuantity("p1", 0)
	assert.True(t, cart.IsEmpty())

	// Updating an id that is not in the cart does nothing.
	cart.UpdateQuantity("ghost", 5)
	assert.True(t, cart.IsEmpty())
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCart()
	cart.Add(wholesaleProduct("p1", 30, 25))
	cart.Add(wholesaleProduct("p2", 48, 40))

	cart.Remove("p1")
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, "p2", cart.Items()[0].Product.ID)

	cart.Remove("ghost")
	assert.Len(t, cart.Items(), 1)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Total())
}

func TestCartProfitUsesActiveCostField(t *testing.T) {
	cart := NewCart()
	// Wholesale margin comes from cost_price, self-made from the
	// production cost total.
	cart.Add(wholesaleProduct("p1", 30, 25))  // margin 5
	cart.Add(selfMadeProduct("p6", 40, 20))   // margin 20
	cart.UpdateQuantity("p6", 2)

	assert.InDelta(t, 30+2*40, cart.Total(), 1e-9)
	assert.InDelta(t, 5+2*20, cart.Profit(), 1e-9)
}
