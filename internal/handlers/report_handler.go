package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minimart-pos/internal/models"
	"minimart-pos/internal/repository"
	"minimart-pos/internal/voice"
)

// ReportHandler serves the sale ledger and the derived analytics views.
type ReportHandler struct {
	sales     *repository.SaleLedger
	products  *repository.ProductRepository
	settings  *repository.SettingsRepository
	announcer voice.Announcer
	log       *zap.Logger
}

func NewReportHandler(
	sales *repository.SaleLedger,
	products *repository.ProductRepository,
	settings *repository.SettingsRepository,
	announcer voice.Announcer,
	log *zap.Logger,
) *ReportHandler {
	return &ReportHandler{
		sales:     sales,
		products:  products,
		settings:  settings,
		announcer: announcer,
		log:       log,
	}
}

// --- GET: Full sale history, newest first ---
func (h *ReportHandler) GetSales(c *gin.Context) {
	sales, err := h.sales.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error("failed to fetch sales", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	// Ledger is stored oldest first; the history screen wants the latest
	// sale on top.
	reversed := make([]models.Sale, len(sales))
	for i, s := range sales {
		reversed[len(sales)-1-i] = s
	}
	c.JSON(http.StatusOK, reversed)
}

// --- GET: Today's sales only ---
func (h *ReportHandler) GetTodaySales(c *gin.Context) {
	sales, err := h.sales.GetToday(c.Request.Context())
	if err != nil {
		h.log.Error("failed to fetch today's sales", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- GET: Daily summary ---
func (h *ReportHandler) GetDailySummary(c *gin.Context) {
	summary, err := h.sales.DailySummary(c.Request.Context())
	if err != nil {
		h.log.Error("failed to compute daily summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// topSeller is one row of the analytics top-sellers table, ranked by
// revenue rather than quantity.
type topSeller struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// analyticsData is the analytics screen in one payload.
type analyticsData struct {
	Summary     models.DailySummary `json:"summary"`
	TodayItems  int                 `json:"today_items"`
	TopSelling  []topSeller         `json:"top_selling"`
	LowStock    []models.Product    `json:"low_stock"`
	RecentSales []models.Sale       `json:"recent_sales"`
}

// --- GET: Analytics screen data ---
func (h *ReportHandler) GetAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.sales.DailySummary(ctx)
	if err != nil {
		h.log.Error("failed to compute daily summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}
	todays, err := h.sales.GetToday(ctx)
	if err != nil {
		h.log.Error("failed to fetch today's sales", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	lowStock, err := h.products.LowStock(ctx)
	if err != nil {
		h.log.Error("failed to fetch low stock products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}
	settings, err := h.settings.Get(ctx)
	if err != nil {
		h.log.Error("failed to read settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read settings"})
		return
	}

	data := analyticsData{
		Summary:     summary,
		TopSelling:  topSellersByRevenue(todays, settings.Language),
		LowStock:    lowStock,
		RecentSales: recentSales(todays, 10),
	}
	for _, sale := range todays {
		for _, item := range sale.Items {
			data.TodayItems += item.Quantity
		}
	}

	c.JSON(http.StatusOK, data)
}

// --- POST: Speak today's summary ---
// The button the shopkeeper presses to hear the day's numbers.
func (h *ReportHandler) AnnounceDailySummary(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.sales.DailySummary(ctx)
	if err != nil {
		h.log.Error("failed to compute daily summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}
	settings, err := h.settings.Get(ctx)
	if err != nil {
		h.log.Error("failed to read settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read settings"})
		return
	}

	topProduct := ""
	if len(summary.TopProducts) > 0 {
		topProduct = summary.TopProducts[0].Name
	}
	h.announcer.Announce(voice.Event{
		Kind:       voice.KindDailySummary,
		Language:   settings.Language,
		Revenue:    summary.TotalRevenue,
		Profit:     summary.TotalProfit,
		TopProduct: topProduct,
	})

	c.JSON(http.StatusOK, summary)
}

// topSellersByRevenue ranks today's products by money taken, keeping the
// five best. Names follow the shop language.
func topSellersByRevenue(sales []models.Sale, lang string) []topSeller {
	type tally struct {
		name     string
		quantity int
		revenue  float64
	}
	counts := map[string]*tally{}
	order := []string{}

	for _, sale := range sales {
		for _, item := range sale.Items {
			name := item.NameEnglish
			if lang == "ta" && item.NameTamil != "" {
				name = item.NameTamil
			}
			if t, exists := counts[item.ProductID]; exists {
				t.quantity += item.Quantity
				t.revenue += item.SellingPrice * float64(item.Quantity)
				continue
			}
			counts[item.ProductID] = &tally{
				name:     name,
				quantity: item.Quantity,
				revenue:  item.SellingPrice * float64(item.Quantity),
			}
			order = append(order, item.ProductID)
		}
	}

	ranked := make([]*tally, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, counts[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].revenue > ranked[j].revenue
	})

	top := []topSeller{}
	for i, t := range ranked {
		if i == 5 {
			break
		}
		top = append(top, topSeller{Name: t.name, Quantity: t.quantity, Revenue: t.revenue})
	}
	return top
}

// recentSales returns the last n sales, newest first.
func recentSales(sales []models.Sale, n int) []models.Sale {
	recent := []models.Sale{}
	for i := len(sales) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, sales[i])
	}
	return recent
}
