package service

import (
	"sync"

	"minimart-pos/internal/models"
)

// Cart is the active basket at the counter: an ordered list of distinct
// product lines. It lives only in memory - a restart or a completed sale
// empties it. The mutex is there because HTTP handlers run on their own
// goroutines, not because there is more than one cashier.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts one more of the product in the basket: bump the quantity when
// the line exists, append a fresh line of one otherwise.
func (c *Cart) Add(product models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, models.CartItem{Product: product, Quantity: 1})
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line;
// an unknown id does nothing.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove drops the line for the product if it is in the basket.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// Clear empties the basket.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the lines in display order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// IsEmpty reports whether there is anything to sell.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Total is the running bill: selling price times quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Product.SellingPrice * float64(item.Quantity)
	}
	return total
}

// Profit is the margin on the current basket, using whichever cost field is
// active for each product's type.
func (c *Cart) Profit() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var profit float64
	for _, item := range c.items {
		profit += (item.Product.SellingPrice - item.Product.UnitCost()) * float64(item.Quantity)
	}
	return profit
}
