package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"minimart-pos/internal/models"
)

// Seed loads the starter catalog so a fresh install has something on the
// shelf. Does nothing once the shop has its own products.
func (r *ProductRepository) Seed(ctx context.Context) error {
	existing, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	wholesale := func(id, ta, en string, cost, price float64, stock, threshold int) models.Product {
		return models.Product{
			ID: id, NameTamil: ta, NameEnglish: en,
			CostPrice: cost, SellingPrice: price,
			CurrentStock: stock, LowStockThreshold: threshold,
			ProductType: models.ProductTypeWholesale, CreatedAt: now,
		}
	}
	selfMade := func(id, ta, en string, production, price float64, margin float64, stock, threshold int) models.Product {
		return models.Product{
			ID: id, NameTamil: ta, NameEnglish: en,
			ProductionCostTotal: production, SellingPrice: price, ProfitMargin: margin,
			CurrentStock: stock, LowStockThreshold: threshold,
			ProductType: models.ProductTypeSelfMade, CreatedAt: now,
		}
	}

	samples := []models.Product{
		wholesale("p1", "பால் பாக்கெட்", "Milk Packet", 25, 30, 50, 10),
		wholesale("p2", "சர்க்கரை 1kg", "Sugar 1kg", 40, 48, 30, 5),
		wholesale("p3", "அரிசி 1kg", "Rice 1kg", 45, 55, 40, 8),
		wholesale("p4", "டீ தூள்", "Tea Powder", 80, 100, 20, 5),
		wholesale("p5", "எண்ணெய் 1L", "Oil 1L", 130, 155, 15, 3),
		selfMade("p6", "ரொட்டி", "Bread", 20, 40, 50, 25, 5),
		selfMade("p7", "கேக்", "Cake", 25, 60, 58, 10, 3),
		wholesale("p8", "பிஸ்கட்", "Biscuit", 8, 10, 100, 20),
		wholesale("p9", "சோப்", "Soap", 30, 38, 35, 8),
		selfMade("p10", "முறுக்கு", "Murukku", 18, 50, 64, 20, 5),
		wholesale("p11", "மாவு 1kg", "Flour 1kg", 35, 45, 25, 5),
		selfMade("p12", "லட்டு", "Laddu", 12, 30, 60, 15, 5),
	}

	if err := r.SaveAll(ctx, samples); err != nil {
		return err
	}
	r.log.Info("seeded sample catalog", zap.Int("products", len(samples)))
	return nil
}
