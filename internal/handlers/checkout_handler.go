package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minimart-pos/internal/service"
)

// CheckoutHandler fronts the checkout state machine.
type CheckoutHandler struct {
	checkout *service.Checkout
	log      *zap.Logger
}

func NewCheckoutHandler(checkout *service.Checkout, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, log: log}
}

// --- POST: Start a checkout ---
// Small bills complete on the spot. At or over the billing threshold the
// response says "bill_prompt" and the client has until the prompt window
// closes to answer; silence counts as "no".
func (h *CheckoutHandler) Begin(c *gin.Context) {
	result, err := h.checkout.Begin(c.Request.Context())
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	case errors.Is(err, service.ErrCheckoutInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "A checkout is already awaiting a bill response"})
		return
	case err != nil:
		h.log.Error("checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

type billResponseRequest struct {
	GenerateInvoice bool `json:"generate_invoice"`
}

// --- POST: Answer the bill prompt ---
func (h *CheckoutHandler) Respond(c *gin.Context) {
	var req billResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	sale, err := h.checkout.Respond(c.Request.Context(), req.GenerateInvoice)
	switch {
	case errors.Is(err, service.ErrNoPendingPrompt):
		// Either the prompt timed out a moment ago or no checkout is
		// running; both look the same from here.
		c.JSON(http.StatusConflict, gin.H{"error": "No bill prompt is pending"})
		return
	case err != nil:
		h.log.Error("bill response failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": service.StateCompleted, "sale": sale})
}
