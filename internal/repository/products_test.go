package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimart-pos/internal/models"
)

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	products, _, _ := newTestRepos()

	all, err := products.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, products.Add(ctx, testProduct("p1", 30, 25, 5, 10)))
	require.NoError(t, products.Add(ctx, testProduct("p2", 48, 40, 30, 5)))

	all, err = products.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p1", all[0].ID)
	assert.Equal(t, "p2", all[1].ID)

	err = products.Add(ctx, testProduct("p1", 99, 1, 1, 1))
	assert.ErrorIs(t, err, ErrDuplicateProduct)

	updated := testProduct("p2", 50, 42, 28, 5)
	require.NoError(t, products.Update(ctx, updated))
	all, err = products.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, all[1].SellingPrice)

	// Updating an unknown id changes nothing and returns no error.
	require.NoError(t, products.Update(ctx, testProduct("ghost", 1, 1, 1, 1)))
	all, err = products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, products.Delete(ctx, "p1"))
	all, err = products.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "p2", all[0].ID)

	// Deleting an unknown id is a silent no-op too.
	require.NoError(t, products.Delete(ctx, "ghost"))
	all, err = products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestReduceStock(t *testing.T) {
	ctx := context.Background()
	products, _, _ := newTestRepos()
	require.NoError(t, products.Add(ctx, testProduct("p1", 30, 25, 5, 10)))

	updated, err := products.ReduceStock(ctx, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentStock)

	// Selling past the counted stock clamps at zero instead of going
	// negative.
	updated, err = products.ReduceStock(ctx, "p1", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentStock)

	_, err = products.ReduceStock(ctx, "ghost", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLowStock(t *testing.T) {
	ctx := context.Background()
	products, _, _ := newTestRepos()
	require.NoError(t, products.Add(ctx, testProduct("p1", 30, 25, 2, 10)))
	require.NoError(t, products.Add(ctx, testProduct("p2", 48, 40, 30, 5)))
	require.NoError(t, products.Add(ctx, testProduct("p3", 55, 45, 5, 5)))

	low, err := products.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "p1", low[0].ID)
	assert.Equal(t, "p3", low[1].ID)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	products, _, _ := newTestRepos()

	require.NoError(t, products.Seed(ctx))
	all, err := products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 12)

	// Both product types must be represented with their inactive cost
	// field zeroed.
	for _, p := range all {
		switch p.ProductType {
		case models.ProductTypeWholesale:
			assert.Zero(t, p.ProductionCostTotal, p.ID)
		case models.ProductTypeSelfMade:
			assert.Zero(t, p.CostPrice, p.ID)
		}
	}

	// Seeding again must not duplicate the catalog.
	require.NoError(t, products.Seed(ctx))
	all, err = products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 12)
}
