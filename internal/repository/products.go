package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"minimart-pos/internal/models"
	"minimart-pos/internal/storage"
)

var (
	// ErrProductNotFound signals a stock operation on an unknown id.
	// Plain update/delete of an unknown id is a silent no-op instead.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct signals an Add with an id already in the catalog.
	ErrDuplicateProduct = errors.New("product id already exists")
)

// ProductRepository does CRUD over the products document. Every mutation is
// read-modify-write of the full list; the app is single-user so nobody else
// is writing in between.
type ProductRepository struct {
	store storage.Store
	log   *zap.Logger
}

func NewProductRepository(store storage.Store, log *zap.Logger) *ProductRepository {
	return &ProductRepository{store: store, log: log}
}

// GetAll returns every product in stored order. An empty store reads as an
// empty catalog, not an error.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	data, ok, err := r.store.Get(ctx, storage.KeyProducts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products document: %w", err)
	}
	return products, nil
}

// SaveAll replaces the whole products document.
func (r *ProductRepository) SaveAll(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products document: %w", err)
	}
	return r.store.Put(ctx, storage.KeyProducts, data)
}

// Add appends a new product. Ids come from the caller (UUIDs), so a
// collision means a caller bug and is rejected rather than papered over.
func (r *ProductRepository) Add(ctx context.Context, product models.Product) error {
	products, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		if p.ID == product.ID {
			return ErrDuplicateProduct
		}
	}

	products = append(products, product)
	if err := r.SaveAll(ctx, products); err != nil {
		return err
	}

	r.log.Info("product added",
		zap.String("id", product.ID),
		zap.String("name", product.NameEnglish))
	return nil
}

// Update replaces the product with the same id. Unknown ids are a silent
// no-op - the record was probably deleted from another screen.
func (r *ProductRepository) Update(ctx context.Context, product models.Product) error {
	products, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	for i, p := range products {
		if p.ID == product.ID {
			products[i] = product
			return r.SaveAll(ctx, products)
		}
	}
	return nil
}

// Delete removes the product if present; absent ids are a silent no-op.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	products, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return nil
	}

	if err := r.SaveAll(ctx, kept); err != nil {
		return err
	}
	r.log.Info("product deleted", zap.String("id", id))
	return nil
}

// ReduceStock deducts a sold quantity, clamping at zero. Selling more than
// the counted stock just drains it - stock counts in a small shop drift and
// blocking the sale over a bad count helps nobody.
func (r *ProductRepository) ReduceStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}

		remaining := products[i].CurrentStock - quantity
		if remaining < 0 {
			r.log.Warn("sold past counted stock, clamping to zero",
				zap.String("id", id),
				zap.Int("stock", products[i].CurrentStock),
				zap.Int("sold", quantity))
			remaining = 0
		}
		products[i].CurrentStock = remaining

		if err := r.SaveAll(ctx, products); err != nil {
			return nil, err
		}
		updated := products[i]
		return &updated, nil
	}

	return nil, ErrProductNotFound
}

// LowStock filters the catalog down to products at or below their threshold.
func (r *ProductRepository) LowStock(ctx context.Context) ([]models.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	low := []models.Product{}
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}
