package ui

import (
	"context"

	"github.com/ordersapp/orders-app/pkg/apiclient"
)

// OrderListView holds the state of the order list screen. Deleting an
// order is a two-step flow: RequestDelete marks the order as pending
// confirmation and a later ConfirmDelete or CancelDelete resolves it.
type OrderListView struct {
	api *apiclient.Client

	Orders        []apiclient.OrderSummary
	PendingDelete *uint
}

func NewOrderListView(api *apiclient.Client) *OrderListView {
	return &OrderListView{api: api}
}

func (v *OrderListView) Refresh(ctx context.Context) error {
	orders, err := v.api.Orders(ctx)
	if err != nil {
		return err
	}
	v.Orders = orders
	return nil
}

func (v *OrderListView) RequestDelete(id uint) {
	v.PendingDelete = &id
}

func (v *OrderListView) CancelDelete() {
	v.PendingDelete = nil
}

// ConfirmDelete deletes the pending order and refetches the list. It is
// a no-op when no deletion is pending.
func (v *OrderListView) ConfirmDelete(ctx context.Context) error {
	if v.PendingDelete == nil {
		return nil
	}
	id := *v.PendingDelete
	v.PendingDelete = nil

	if err := v.api.DeleteOrder(ctx, id); err != nil {
		return err
	}
	return v.Refresh(ctx)
}
