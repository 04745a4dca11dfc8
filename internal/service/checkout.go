package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"minimart-pos/internal/models"
	"minimart-pos/internal/repository"
	"minimart-pos/internal/voice"
)

var (
	// ErrEmptyCart - checkout requested with nothing in the basket.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoPendingPrompt - a bill answer arrived with no prompt open.
	ErrNoPendingPrompt = errors.New("no bill prompt is pending")
	// ErrCheckoutInProgress - a second checkout started while a bill
	// prompt is still open.
	ErrCheckoutInProgress = errors.New("a checkout is already awaiting a bill response")
)

// DefaultBillPromptWindow is how long the bill question stays open before
// it counts as a "no".
const DefaultBillPromptWindow = 5 * time.Second

// Checkout state names returned to the client.
const (
	StateBillPrompt = "bill_prompt"
	StateCompleted  = "completed"
)

// Checkout drives a sale from basket to ledger:
//
//	Idle -> ThresholdCheck -> {BillPrompt | DirectComplete} -> Complete
//
// Small bills complete immediately without an invoice. Bills at or over the
// billing threshold open a voice prompt; an explicit yes/no answers it, and
// an unanswered prompt times out as a "no". Exactly one of the manual answer
// and the timeout completes the sale - whichever comes first clears the
// pending timer under the lock, so the other finds nothing to do.
type Checkout struct {
	cart      *Cart
	products  *repository.ProductRepository
	sales     *repository.SaleLedger
	settings  *repository.SettingsRepository
	announcer voice.Announcer
	log       *zap.Logger

	promptWindow time.Duration

	mu      sync.Mutex
	pending *time.Timer
}

func NewCheckout(
	cart *Cart,
	products *repository.ProductRepository,
	sales *repository.SaleLedger,
	settings *repository.SettingsRepository,
	announcer voice.Announcer,
	log *zap.Logger,
) *Checkout {
	return &Checkout{
		cart:         cart,
		products:     products,
		sales:        sales,
		settings:     settings,
		announcer:    announcer,
		log:          log,
		promptWindow: DefaultBillPromptWindow,
	}
}

// SetPromptWindow overrides the bill prompt timeout. Zero or negative
// keeps the default.
func (s *Checkout) SetPromptWindow(d time.Duration) {
	if d > 0 {
		s.promptWindow = d
	}
}

// BeginResult tells the client what happened to the checkout request:
// either the sale completed on the spot, or a bill prompt is now open.
type BeginResult struct {
	State string       `json:"state"`
	Total float64      `json:"total"`
	Sale  *models.Sale `json:"sale,omitempty"`
}

// Begin runs the threshold check. Below the billing threshold the sale
// completes directly with no invoice; at or above it, the bill question is
// announced and a one-shot timer is armed.
func (s *Checkout) Begin(ctx context.Context) (BeginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return BeginResult{}, ErrCheckoutInProgress
	}
	if s.cart.IsEmpty() {
		return BeginResult{}, ErrEmptyCart
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return BeginResult{}, err
	}

	total := s.cart.Total()
	if total >= settings.BillingThreshold {
		s.announcer.Announce(voice.Event{
			Kind:     voice.KindBillQuestion,
			Language: settings.Language,
			Amount:   total,
		})
		s.pending = time.AfterFunc(s.promptWindow, s.promptTimedOut)
		s.log.Info("bill prompt opened", zap.Float64("total", total))
		return BeginResult{State: StateBillPrompt, Total: total}, nil
	}

	sale, err := s.complete(ctx, false)
	if err != nil {
		return BeginResult{}, err
	}
	return BeginResult{State: StateCompleted, Total: sale.TotalAmount, Sale: sale}, nil
}

// Respond answers an open bill prompt. The pending timer is stopped and
// cleared before completing, so a timeout racing in finds nothing.
func (s *Checkout) Respond(ctx context.Context, wantsBill bool) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return nil, ErrNoPendingPrompt
	}
	s.pending.Stop()
	s.pending = nil

	return s.complete(ctx, wantsBill)
}

// promptTimedOut is the timer callback: an unanswered prompt is a "no".
// If a manual answer won the race the pending timer is already nil and the
// timeout does nothing.
func (s *Checkout) promptTimedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return
	}
	s.pending = nil

	s.log.Info("bill prompt timed out, completing without invoice")
	if _, err := s.complete(context.Background(), false); err != nil {
		s.log.Error("checkout after prompt timeout failed", zap.Error(err))
	}
}

// complete freezes the basket into a Sale, writes it to the ledger, deducts
// stock line by line, speaks up about the first product that went low, and
// finally empties the cart. Caller holds the lock.
func (s *Checkout) complete(ctx context.Context, wantsBill bool) (*models.Sale, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	saleItems := make([]models.SaleItem, 0, len(items))
	for _, item := range items {
		saleItems = append(saleItems, models.SaleItem{
			ProductID:    item.Product.ID,
			NameTamil:    item.Product.NameTamil,
			NameEnglish:  item.Product.NameEnglish,
			Quantity:     item.Quantity,
			SellingPrice: item.Product.SellingPrice,
			CostPrice:    item.Product.UnitCost(),
			ProductType:  item.Product.ProductType,
		})
	}

	sale := models.Sale{
		ID:               uuid.NewString(),
		Timestamp:        time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Items:            saleItems,
		TotalAmount:      s.cart.Total(),
		TotalProfit:      s.cart.Profit(),
		InvoiceGenerated: wantsBill,
	}

	if err := s.sales.Append(ctx, sale); err != nil {
		return nil, err
	}

	// Deduct stock per line, remembering which products dropped into the
	// alert band. Only the first one gets announced - a wall of alerts
	// after one big sale is just noise.
	var lowStock []models.Product
	for _, item := range items {
		updated, err := s.products.ReduceStock(ctx, item.Product.ID, item.Quantity)
		if errors.Is(err, repository.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if updated.CurrentStock > 0 && updated.IsLowStock() {
			lowStock = append(lowStock, *updated)
		}
	}

	if len(lowStock) > 0 {
		s.announcer.Announce(voice.Event{
			Kind:        voice.KindStockLow,
			Language:    settings.Language,
			ProductName: lowStock[0].DisplayName(settings.Language),
		})
	}

	s.announcer.Announce(voice.Event{
		Kind:     voice.KindSaleComplete,
		Language: settings.Language,
		Amount:   sale.TotalAmount,
	})

	s.cart.Clear()

	s.log.Info("sale completed",
		zap.String("id", sale.ID),
		zap.Float64("total", sale.TotalAmount),
		zap.Bool("invoice", sale.InvoiceGenerated))
	return &sale, nil
}
