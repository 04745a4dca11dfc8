package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minimart-pos/internal/repository"
	"minimart-pos/internal/service"
)

// CartHandler exposes the single active cart at the counter.
type CartHandler struct {
	cart     *service.Cart
	products *repository.ProductRepository
	log      *zap.Logger
}

func NewCartHandler(cart *service.Cart, products *repository.ProductRepository, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, products: products, log: log}
}

// cartState is what every cart endpoint answers with, so the UI can redraw
// the basket from any response.
func (h *CartHandler) cartState() gin.H {
	return gin.H{
		"items":  h.cart.Items(),
		"total":  h.cart.Total(),
		"profit": h.cart.Profit(),
	}
}

// --- GET: Current cart contents ---
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartState())
}

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// --- POST: Add one unit of a product ---
// The cart snapshots the product as it is right now; the quantity of an
// existing line just goes up by one.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	products, err := h.products.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error("failed to fetch products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	for _, p := range products {
		if p.ID == req.ProductID {
			h.cart.Add(p)
			c.JSON(http.StatusOK, h.cartState())
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
}

type updateQuantityRequest struct {
	Quantity any `json:"quantity"`
}

// --- PUT: Set a line's quantity ---
// Zero or less removes the line; unknown ids do nothing. Quantity coerces
// like every other numeric field on the entry screens.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	h.cart.UpdateQuantity(c.Param("id"), toCount(req.Quantity, 0))
	c.JSON(http.StatusOK, h.cartState())
}

// --- DELETE: Remove a line ---
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.cart.Remove(c.Param("id"))
	c.JSON(http.StatusOK, h.cartState())
}

// --- DELETE: Empty the cart ---
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	c.JSON(http.StatusOK, h.cartState())
}
