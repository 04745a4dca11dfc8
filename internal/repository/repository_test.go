package repository

import (
	"context"

	"go.uber.org/zap"

	"minimart-pos/internal/models"
)

// memStore is a map-backed stand-in for the SQLite blob store.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memStore) Put(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func testProduct(id string, price, cost float64, stock, threshold int) models.Product {
	return models.Product{
		ID:                id,
		NameTamil:         "பொருள் " + id,
		NameEnglish:       "Product " + id,
		CostPrice:         cost,
		SellingPrice:      price,
		CurrentStock:      stock,
		LowStockThreshold: threshold,
		ProductType:       models.ProductTypeWholesale,
		CreatedAt:         "2026-08-31T09:00:00Z",
	}
}

func newTestRepos() (*ProductRepository, *SaleLedger, *SettingsRepository) {
	store := newMemStore()
	log := zap.NewNop()
	return NewProductRepository(store, log),
		NewSaleLedger(store, log),
		NewSettingsRepository(store, log)
}
