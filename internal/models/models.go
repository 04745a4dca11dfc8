package models

// ProductType decides which cost field of a Product is the real one.
type ProductType string

const (
	// ProductTypeWholesale - bought from a supplier and resold as-is.
	// Margin comes from cost_price.
	ProductTypeWholesale ProductType = "wholesale"
	// ProductTypeSelfMade - produced in the shop (snacks, sweets).
	// Margin comes from production_cost_total.
	ProductTypeSelfMade ProductType = "self_made"
)

// Product - The Inventory
// Names are bilingual: the shop runs in Tamil, reports can run in English.
type Product struct {
	ID                  string      `json:"id"`
	NameTamil           string      `json:"name_tamil"`
	NameEnglish         string      `json:"name_english"`
	ImageURL            *string     `json:"image_url"`
	CostPrice           float64     `json:"cost_price"`
	SellingPrice        float64     `json:"selling_price"`
	ProductionCostTotal float64     `json:"production_cost_total"`
	ProfitMargin        float64     `json:"profit_margin"`
	CurrentStock        int         `json:"current_stock"`
	LowStockThreshold   int         `json:"low_stock_threshold"`
	ProductType         ProductType `json:"product_type"`
	CreatedAt           string      `json:"created_at"`
}

// UnitCost returns the cost field that is active for this product's type.
// The inactive one is always stored as 0.
func (p Product) UnitCost() float64 {
	if p.ProductType == ProductTypeWholesale {
		return p.CostPrice
	}
	return p.ProductionCostTotal
}

// DisplayName picks the name matching the shop language ("ta" or "en").
func (p Product) DisplayName(lang string) string {
	if lang == "ta" && p.NameTamil != "" {
		return p.NameTamil
	}
	return p.NameEnglish
}

// IsLowStock reports whether the product sits at or below its alert threshold.
func (p Product) IsLowStock() bool {
	return p.CurrentStock <= p.LowStockThreshold
}

// CartItem - one line of the active cart. Never persisted.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// SaleItem - a frozen snapshot of a product at sale time, so editing the
// catalog later never rewrites history. CostPrice here is whichever cost
// field was active when the sale happened.
type SaleItem struct {
	ProductID    string      `json:"product_id"`
	NameTamil    string      `json:"name_tamil"`
	NameEnglish  string      `json:"name_english"`
	Quantity     int         `json:"quantity"`
	SellingPrice float64     `json:"selling_price"`
	CostPrice    float64     `json:"cost_price"`
	ProductType  ProductType `json:"product_type"`
}

// Sale - The Transaction Header. Immutable once written to the ledger.
type Sale struct {
	ID               string     `json:"id"`
	Timestamp        string     `json:"timestamp"`
	Items            []SaleItem `json:"items"`
	TotalAmount      float64    `json:"total_amount"`
	TotalProfit      float64    `json:"total_profit"`
	InvoiceGenerated bool       `json:"invoice_generated"`
}

// TopProduct is one row of the daily top-sellers list.
type TopProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DailySummary is derived on demand from today's sales, never stored.
type DailySummary struct {
	Date              string       `json:"date"`
	TotalRevenue      float64      `json:"total_revenue"`
	TotalProfit       float64      `json:"total_profit"`
	TotalTransactions int          `json:"total_transactions"`
	TopProducts       []TopProduct `json:"top_products"`
}

// AppSettings - small persisted config record.
type AppSettings struct {
	BillingThreshold float64 `json:"billing_threshold"`
	Language         string  `json:"language"`
}

// SettingsPatch carries a partial settings update; nil fields keep their
// current value.
type SettingsPatch struct {
	BillingThreshold *float64 `json:"billing_threshold"`
	Language         *string  `json:"language"`
}

// DefaultSettings are used whenever a field was never persisted.
func DefaultSettings() AppSettings {
	return AppSettings{
		BillingThreshold: 100,
		Language:         "ta",
	}
}
