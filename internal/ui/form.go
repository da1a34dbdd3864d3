package ui

import (
	"context"
	"errors"
	"strconv"

	"github.com/ordersapp/orders-app/pkg/apiclient"
)

// NewOrderRoute is the route value that puts the form in create mode;
// any numeric value is the id of the order to edit.
const NewOrderRoute = "new"

var (
	ErrProductAlreadyAdded = errors.New("this product is already in the order")
	ErrUnknownProduct      = errors.New("unknown product")
	ErrOrderNumberRequired = errors.New("order number is required")
	ErrInvalidRoute        = errors.New("invalid route value")
)

type SelectedProduct struct {
	ProductID uint
	Name      string
	UnitPrice float64
	Quantity  uint
}

// ProductModal is the add/edit-product dialog state. EditIndex -1 means
// ApplyModal appends a new line; otherwise it overwrites the line at
// that index.
type ProductModal struct {
	Open      bool
	ProductID uint
	Quantity  uint
	EditIndex int
}

// OrderFormView holds the state of the create/edit screen. Selected
// keeps insertion order and at most one line per product.
type OrderFormView struct {
	api *apiclient.Client

	orderID uint
	isNew   bool

	OrderNumber string
	Selected    []SelectedProduct
	Catalog     []apiclient.Product

	Modal         ProductModal
	PendingRemove int
}

func NewOrderFormView(api *apiclient.Client, route string) (*OrderFormView, error) {
	v := &OrderFormView{api: api, PendingRemove: -1, Modal: ProductModal{EditIndex: -1}}
	if route == NewOrderRoute {
		v.isNew = true
		return v, nil
	}
	id, err := strconv.Atoi(route)
	if err != nil || id <= 0 {
		return nil, ErrInvalidRoute
	}
	v.orderID = uint(id)
	return v, nil
}

func (v *OrderFormView) IsNew() bool { return v.isNew }

// Load fetches the product catalog and, in edit mode, seeds the form
// from the target order.
func (v *OrderFormView) Load(ctx context.Context) error {
	catalog, err := v.api.Products(ctx)
	if err != nil {
		return err
	}
	v.Catalog = catalog

	if v.isNew {
		return nil
	}

	order, err := v.api.Order(ctx, v.orderID)
	if err != nil {
		return err
	}
	v.OrderNumber = order.OrderNumber
	v.Selected = make([]SelectedProduct, 0, len(order.Products))
	for _, line := range order.Products {
		v.Selected = append(v.Selected, SelectedProduct{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return nil
}

func (v *OrderFormView) TotalItems() int {
	return len(v.Selected)
}

func (v *OrderFormView) FinalPrice() float64 {
	var total float64
	for _, p := range v.Selected {
		total += float64(p.Quantity) * p.UnitPrice
	}
	return total
}

func (v *OrderFormView) OpenAddModal() {
	v.Modal = ProductModal{Open: true, Quantity: 1, EditIndex: -1}
}

func (v *OrderFormView) OpenEditModal(index int) {
	if index < 0 || index >= len(v.Selected) {
		return
	}
	line := v.Selected[index]
	v.Modal = ProductModal{Open: true, ProductID: line.ProductID, Quantity: line.Quantity, EditIndex: index}
}

func (v *OrderFormView) CloseModal() {
	v.Modal = ProductModal{EditIndex: -1}
}

// ApplyModal commits the dialog: overwrite in place when editing,
// append otherwise. Adding a product already present is rejected
// without touching the selection.
func (v *OrderFormView) ApplyModal() error {
	product, ok := v.catalogProduct(v.Modal.ProductID)
	if !ok {
		return ErrUnknownProduct
	}
	if v.Modal.Quantity == 0 {
		v.Modal.Quantity = 1
	}

	line := SelectedProduct{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		Quantity:  v.Modal.Quantity,
	}

	if v.Modal.EditIndex >= 0 {
		v.Selected[v.Modal.EditIndex] = line
		v.CloseModal()
		return nil
	}

	for _, p := range v.Selected {
		if p.ProductID == line.ProductID {
			return ErrProductAlreadyAdded
		}
	}
	v.Selected = append(v.Selected, line)
	v.CloseModal()
	return nil
}

func (v *OrderFormView) catalogProduct(id uint) (apiclient.Product, bool) {
	for _, p := range v.Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return apiclient.Product{}, false
}

func (v *OrderFormView) RequestRemove(index int) {
	if index < 0 || index >= len(v.Selected) {
		return
	}
	v.PendingRemove = index
}

func (v *OrderFormView) CancelRemove() {
	v.PendingRemove = -1
}

func (v *OrderFormView) ConfirmRemove() {
	if v.PendingRemove < 0 || v.PendingRemove >= len(v.Selected) {
		return
	}
	v.Selected = append(v.Selected[:v.PendingRemove], v.Selected[v.PendingRemove+1:]...)
	v.PendingRemove = -1
}

// Submit builds the {orderNumber, products} payload, stripping every
// other field, and creates or updates depending on mode.
func (v *OrderFormView) Submit(ctx context.Context) error {
	if v.OrderNumber == "" {
		return ErrOrderNumberRequired
	}

	req := apiclient.SaveOrderRequest{
		OrderNumber: v.OrderNumber,
		Products:    make([]apiclient.SaveOrderLine, 0, len(v.Selected)),
	}
	for _, p := range v.Selected {
		req.Products = append(req.Products, apiclient.SaveOrderLine{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		})
	}

	if v.isNew {
		_, err := v.api.CreateOrder(ctx, req)
		return err
	}
	return v.api.UpdateOrder(ctx, v.orderID, req)
}
