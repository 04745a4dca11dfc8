package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimart-pos/internal/models"
)

func saleAt(id, timestamp string, items ...models.SaleItem) models.Sale {
	var total, profit float64
	for _, item := range items {
		total += item.SellingPrice * float64(item.Quantity)
		profit += (item.SellingPrice - item.CostPrice) * float64(item.Quantity)
	}
	return models.Sale{
		ID:          id,
		Timestamp:   timestamp,
		Items:       items,
		TotalAmount: total,
		TotalProfit: profit,
	}
}

func item(productID, name string, qty int, price, cost float64) models.SaleItem {
	return models.SaleItem{
		ProductID:    productID,
		NameEnglish:  name,
		NameTamil:    name,
		Quantity:     qty,
		SellingPrice: price,
		CostPrice:    cost,
		ProductType:  models.ProductTypeWholesale,
	}
}

func TestLedgerAppendIsOrdered(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := newTestRepos()

	require.NoError(t, ledger.Append(ctx, saleAt("s1", "2026-08-30T10:00:00.000Z")))
	require.NoError(t, ledger.Append(ctx, saleAt("s2", "2026-08-30T11:00:00.000Z")))

	all, err := ledger.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "s1", all[0].ID)
	assert.Equal(t, "s2", all[1].ID)
}

func TestGetTodayMatchesDatePrefix(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := newTestRepos()

	today := time.Now().UTC()
	yesterday := today.AddDate(0, 0, -1)

	// A sale from late yesterday is excluded even though it happened less
	// than 24 hours ago: matching is a plain date-prefix comparison.
	recentButYesterday := yesterday.Format("2006-01-02") + "T23:59:00.000Z"
	thisMorning := today.Format("2006-01-02") + "T00:01:00.000Z"

	require.NoError(t, ledger.Append(ctx, saleAt("old", recentButYesterday)))
	require.NoError(t, ledger.Append(ctx, saleAt("new", thisMorning)))

	todays, err := ledger.GetToday(ctx)
	require.NoError(t, err)
	require.Len(t, todays, 1)
	assert.Equal(t, "new", todays[0].ID)
}

func TestDailySummary(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := newTestRepos()

	now := time.Now().UTC()
	ts := func(hour int) string {
		return fmt.Sprintf("%sT%02d:00:00.000Z", now.Format("2006-01-02"), hour)
	}

	require.NoError(t, ledger.Append(ctx, saleAt("s1", ts(9),
		item("p1", "Milk Packet", 2, 30, 25),
		item("p2", "Sugar 1kg", 1, 48, 40),
	)))
	require.NoError(t, ledger.Append(ctx, saleAt("s2", ts(10),
		item("p3", "Bread", 2, 40, 20),
		item("p1", "Milk Packet", 1, 30, 25),
	)))
	// Yesterday's sale must not count.
	require.NoError(t, ledger.Append(ctx, saleAt("s0",
		now.AddDate(0, 0, -1).Format("2006-01-02")+"T12:00:00.000Z",
		item("p9", "Soap", 50, 38, 30),
	)))

	summary, err := ledger.DailySummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, now.Format("2006-01-02"), summary.Date)
	assert.Equal(t, 2, summary.TotalTransactions)
	assert.InDelta(t, 2*30+48+2*40+30, summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 2*5+8+2*20+5, summary.TotalProfit, 1e-9)

	// p1 sold 3, p3 sold 2, p2 sold 1.
	require.Len(t, summary.TopProducts, 3)
	assert.Equal(t, models.TopProduct{Name: "Milk Packet", Quantity: 3}, summary.TopProducts[0])
	assert.Equal(t, models.TopProduct{Name: "Bread", Quantity: 2}, summary.TopProducts[1])
	assert.Equal(t, models.TopProduct{Name: "Sugar 1kg", Quantity: 1}, summary.TopProducts[2])
}

func TestDailySummaryTiesKeepFirstSeenOrder(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := newTestRepos()

	timestamp := time.Now().UTC().Format("2006-01-02") + "T12:00:00.000Z"
	require.NoError(t, ledger.Append(ctx, saleAt("s1", timestamp,
		item("a", "First", 2, 10, 5),
		item("b", "Second", 2, 10, 5),
		item("c", "Third", 2, 10, 5),
		item("d", "Fourth", 2, 10, 5),
	)))

	summary, err := ledger.DailySummary(ctx)
	require.NoError(t, err)

	// All tied on quantity: stable sort keeps encounter order, truncated
	// to three.
	require.Len(t, summary.TopProducts, 3)
	assert.Equal(t, "First", summary.TopProducts[0].Name)
	assert.Equal(t, "Second", summary.TopProducts[1].Name)
	assert.Equal(t, "Third", summary.TopProducts[2].Name)
}

func TestDailySummaryEmptyLedger(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := newTestRepos()

	summary, err := ledger.DailySummary(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.TotalTransactions)
	assert.Empty(t, summary.TopProducts)
}
