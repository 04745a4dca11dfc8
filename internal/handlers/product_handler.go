package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"minimart-pos/internal/models"
	"minimart-pos/internal/repository"
)

// ProductHandler exposes catalog CRUD.
type ProductHandler struct {
	products *repository.ProductRepository
	log      *zap.Logger
}

func NewProductHandler(products *repository.ProductRepository, log *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, log: log}
}

// ProductRequest is what the UI sends for create and update. Numeric fields
// come in as numbers or strings - the entry form is used at speed by people
// who should never see a validation error over a stray character, so bad
// numbers coerce to safe defaults instead of rejecting the whole product.
type ProductRequest struct {
	NameTamil           string  `json:"name_tamil"`
	NameEnglish         string  `json:"name_english"`
	ImageURL            *string `json:"image_url"`
	CostPrice           any     `json:"cost_price"`
	SellingPrice        any     `json:"selling_price"`
	ProductionCostTotal any     `json:"production_cost_total"`
	CurrentStock        any     `json:"current_stock"`
	LowStockThreshold   any     `json:"low_stock_threshold"`
	ProductType         string  `json:"product_type"`
}

// --- GET: List all products ---
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.products.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error("failed to fetch products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- POST: Add a new product ---
func (h *ProductHandler) AddProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if strings.TrimSpace(req.NameEnglish) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_english is required"})
		return
	}

	product := buildProduct(req, nil)
	if err := h.products.Add(c.Request.Context(), product); err != nil {
		if errors.Is(err, repository.ErrDuplicateProduct) {
			c.JSON(http.StatusConflict, gin.H{"error": "Product already exists"})
			return
		}
		h.log.Error("failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// --- PUT: Update a product by id ---
// An unknown id is a silent no-op: the record was likely deleted from
// another screen, and the cashier does not need an error for that.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if strings.TrimSpace(req.NameEnglish) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_english is required"})
		return
	}

	// Find the existing record so id, creation time and image survive.
	products, err := h.products.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error("failed to fetch products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	var existing *models.Product
	for i := range products {
		if products[i].ID == id {
			existing = &products[i]
			break
		}
	}
	if existing == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Product not found, nothing updated"})
		return
	}

	product := buildProduct(req, existing)
	if err := h.products.Update(c.Request.Context(), product); err != nil {
		h.log.Error("failed to update product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE: Remove a product ---
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("failed to delete product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// buildProduct normalizes a request into a Product. For new products
// (existing == nil) a fresh id and creation time are assigned. The inactive
// cost field is zeroed by type, and the profit margin of self-made items is
// derived here, at creation/edit time, not at sale time.
func buildProduct(req ProductRequest, existing *models.Product) models.Product {
	productType := models.ProductTypeWholesale
	if req.ProductType == string(models.ProductTypeSelfMade) {
		productType = models.ProductTypeSelfMade
	}

	sellingPrice := toAmount(req.SellingPrice)
	costPrice := toAmount(req.CostPrice)
	productionCost := toAmount(req.ProductionCostTotal)

	var profitMargin float64
	if productType == models.ProductTypeSelfMade {
		costPrice = 0
		if sellingPrice > 0 {
			profitMargin = math.Round((sellingPrice - productionCost) / sellingPrice * 100)
		}
	} else {
		productionCost = 0
	}

	nameEnglish := strings.TrimSpace(req.NameEnglish)
	nameTamil := strings.TrimSpace(req.NameTamil)
	if nameTamil == "" {
		nameTamil = nameEnglish
	}

	product := models.Product{
		ID:                  uuid.NewString(),
		NameTamil:           nameTamil,
		NameEnglish:         nameEnglish,
		ImageURL:            req.ImageURL,
		CostPrice:           costPrice,
		SellingPrice:        sellingPrice,
		ProductionCostTotal: productionCost,
		ProfitMargin:        profitMargin,
		CurrentStock:        toCount(req.CurrentStock, 0),
		LowStockThreshold:   toCount(req.LowStockThreshold, 5),
		ProductType:         productType,
		CreatedAt:           time.Now().UTC().Format(time.RFC3339),
	}

	if existing != nil {
		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
		if product.ImageURL == nil {
			product.ImageURL = existing.ImageURL
		}
	}
	return product
}

// toAmount coerces a price field to a float, degrading to 0 on anything
// unparseable.
func toAmount(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// toCount coerces a stock/threshold field to an int. Unparseable or zero
// values take the fallback, matching the entry form's behavior.
func toCount(v any, fallback int) int {
	switch value := v.(type) {
	case float64:
		if int(value) == 0 {
			return fallback
		}
		return int(value)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || parsed == 0 {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}
