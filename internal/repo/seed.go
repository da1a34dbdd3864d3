package repo

import (
	"context"

	"github.com/ordersapp/orders-app/internal/models"
)

// Seed inserts the demo catalog and two sample orders. It is a no-op
// when products already exist.
func (r *GormRepo) Seed(ctx context.Context) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Laptop Lenovo", UnitPrice: 2500.00},
		{Name: "Mouse Inalámbrico", UnitPrice: 80.00},
		{Name: "Teclado Mecánico", UnitPrice: 150.00},
		{Name: "Monitor LG 24\"", UnitPrice: 800.00},
		{Name: "Headset Gamer", UnitPrice: 220.00},
		{Name: "Base Enfriadora", UnitPrice: 100.00},
	}
	if err := r.DB.WithContext(ctx).Create(&products).Error; err != nil {
		return err
	}

	orders := []models.Order{
		{
			OrderNumber: "ORD-001",
			Items: []models.OrderItem{
				{ProductID: products[0].ID, Quantity: 1},
				{ProductID: products[1].ID, Quantity: 2},
				{ProductID: products[2].ID, Quantity: 1},
			},
		},
		{
			OrderNumber: "ORD-002",
			Items: []models.OrderItem{
				{ProductID: products[3].ID, Quantity: 1},
				{ProductID: products[4].ID, Quantity: 1},
				{ProductID: products[5].ID, Quantity: 1},
			},
		},
	}
	return r.DB.WithContext(ctx).Create(&orders).Error
}
