package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"minimart-pos/internal/models"
	"minimart-pos/internal/storage"
)

// SaleLedger is the append-only record of completed sales. Sales are never
// edited or deleted; every derived view is a full scan over the document.
type SaleLedger struct {
	store storage.Store
	log   *zap.Logger
}

func NewSaleLedger(store storage.Store, log *zap.Logger) *SaleLedger {
	return &SaleLedger{store: store, log: log}
}

// GetAll returns the full ledger, oldest first.
func (l *SaleLedger) GetAll(ctx context.Context) ([]models.Sale, error) {
	data, ok, err := l.store.Get(ctx, storage.KeySales)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Sale{}, nil
	}

	var sales []models.Sale
	if err := json.Unmarshal(data, &sales); err != nil {
		return nil, fmt.Errorf("failed to decode sales document: %w", err)
	}
	return sales, nil
}

// Append persists a new sale at the end of the ledger.
func (l *SaleLedger) Append(ctx context.Context, sale models.Sale) error {
	sales, err := l.GetAll(ctx)
	if err != nil {
		return err
	}

	sales = append(sales, sale)
	data, err := json.Marshal(sales)
	if err != nil {
		return fmt.Errorf("failed to encode sales document: %w", err)
	}
	if err := l.store.Put(ctx, storage.KeySales, data); err != nil {
		return err
	}

	l.log.Info("sale recorded",
		zap.String("id", sale.ID),
		zap.Float64("total", sale.TotalAmount),
		zap.Int("items", len(sale.Items)))
	return nil
}

// TodayDate is the UTC date string sale timestamps are matched against.
func TodayDate() string {
	return time.Now().UTC().Format("2006-01-02")
}

// GetToday filters the ledger by comparing the timestamp's date prefix with
// today's UTC date string. Around midnight a sale can land on the "wrong"
// day relative to the wall clock; the app has always behaved this way and
// reports would shift if we changed it.
func (l *SaleLedger) GetToday(ctx context.Context) ([]models.Sale, error) {
	sales, err := l.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	today := TodayDate()
	todays := []models.Sale{}
	for _, s := range sales {
		if strings.HasPrefix(s.Timestamp, today) {
			todays = append(todays, s)
		}
	}
	return todays, nil
}

// DailySummary aggregates today's sales: revenue, profit, transaction count
// and the three best sellers by quantity. Ordering is deterministic: stable
// sort by quantity descending, ties keep first-seen order.
func (l *SaleLedger) DailySummary(ctx context.Context) (models.DailySummary, error) {
	todays, err := l.GetToday(ctx)
	if err != nil {
		return models.DailySummary{}, err
	}

	summary := models.DailySummary{
		Date:              TodayDate(),
		TotalTransactions: len(todays),
		TopProducts:       []models.TopProduct{},
	}

	type tally struct {
		name     string
		quantity int
	}
	counts := map[string]*tally{}
	order := []string{}

	for _, sale := range todays {
		summary.TotalRevenue += sale.TotalAmount
		summary.TotalProfit += sale.TotalProfit

		for _, item := range sale.Items {
			if t, exists := counts[item.ProductID]; exists {
				t.quantity += item.Quantity
				continue
			}
			counts[item.ProductID] = &tally{name: item.NameEnglish, quantity: item.Quantity}
			order = append(order, item.ProductID)
		}
	}

	ranked := make([]*tally, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, counts[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].quantity > ranked[j].quantity
	})

	for i, t := range ranked {
		if i == 3 {
			break
		}
		summary.TopProducts = append(summary.TopProducts, models.TopProduct{
			Name:     t.name,
			Quantity: t.quantity,
		})
	}

	return summary, nil
}
