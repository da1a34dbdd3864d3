package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ordersapp/orders-app/internal/models"
	"github.com/ordersapp/orders-app/internal/repo"
	"github.com/ordersapp/orders-app/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type OrderService struct {
	repo *repo.GormRepo
}

func NewOrderService(r *repo.GormRepo) *OrderService {
	return &OrderService{repo: r}
}

func (svc *OrderService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return svc.repo.ListProducts(ctx)
}

// ListOrders computes numProducts and finalPrice per order at read time.
func (svc *OrderService) ListOrders(ctx context.Context) ([]transport.OrderSummary, error) {
	orders, err := svc.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]transport.OrderSummary, 0, len(orders))
	for _, order := range orders {
		var finalPrice float64
		for _, item := range order.Items {
			finalPrice += float64(item.Quantity) * item.Product.UnitPrice
		}
		summaries = append(summaries, transport.OrderSummary{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			Date:        order.Date,
			NumProducts: len(order.Items),
			FinalPrice:  finalPrice,
		})
	}
	return summaries, nil
}

func (svc *OrderService) GetOrder(ctx context.Context, id uint) (*transport.OrderDetail, error) {
	order, err := svc.repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lines := make([]transport.OrderLine, 0, len(order.Items))
	var finalPrice float64
	for _, item := range order.Items {
		totalPrice := float64(item.Quantity) * item.Product.UnitPrice
		finalPrice += totalPrice
		lines = append(lines, transport.OrderLine{
			ProductID:  item.ProductID,
			Name:       item.Product.Name,
			UnitPrice:  item.Product.UnitPrice,
			Quantity:   item.Quantity,
			TotalPrice: totalPrice,
		})
	}

	return &transport.OrderDetail{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Date:        order.Date,
		TotalItems:  len(lines),
		FinalPrice:  finalPrice,
		Products:    lines,
	}, nil
}

// validateLines maps the raw request lines into order items, rejecting
// missing product ids, non-positive quantities and duplicate products.
func validateLines(lines []transport.SaveOrderLine) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(lines))
	seen := make(map[uint]struct{}, len(lines))
	for i := range lines {
		if lines[i].ProductID == 0 {
			return nil, fmt.Errorf("%w: productId required", ErrValidation)
		}
		if lines[i].Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if _, ok := seen[lines[i].ProductID]; ok {
			return nil, fmt.Errorf("%w: duplicate productId %d", ErrValidation, lines[i].ProductID)
		}
		seen[lines[i].ProductID] = struct{}{}
		items = append(items, models.OrderItem{
			ProductID: lines[i].ProductID,
			Quantity:  lines[i].Quantity,
		})
	}
	return items, nil
}

func (svc *OrderService) CreateOrder(ctx context.Context, req transport.SaveOrderRequest) (*models.Order, error) {
	items, err := validateLines(req.Products)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber: req.OrderNumber,
		Items:       items,
	}
	return svc.repo.CreateOrder(ctx, order)
}

// UpdateOrder replaces the order number and the whole item set. An
// absent id affects zero rows and still reports success.
func (svc *OrderService) UpdateOrder(ctx context.Context, id uint, req transport.SaveOrderRequest) error {
	items, err := validateLines(req.Products)
	if err != nil {
		return err
	}
	return svc.repo.ReplaceOrder(ctx, id, req.OrderNumber, items)
}

func (svc *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	return svc.repo.DeleteOrder(ctx, id)
}
