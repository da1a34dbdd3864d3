package transport

import "time"

type SaveOrderLine struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

// SaveOrderRequest is the body of both POST /api/orders and
// PUT /api/orders/:id. Any extra fields a caller sends are dropped at
// bind time.
type SaveOrderRequest struct {
	OrderNumber string          `json:"orderNumber"`
	Products    []SaveOrderLine `json:"products"`
}

type OrderSummary struct {
	ID          uint      `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Date        time.Time `json:"date"`
	NumProducts int       `json:"numProducts"`
	FinalPrice  float64   `json:"finalPrice"`
}

type OrderLine struct {
	ProductID  uint    `json:"productId"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   uint    `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

type OrderDetail struct {
	ID          uint        `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	Date        time.Time   `json:"date"`
	TotalItems  int         `json:"totalItems"`
	FinalPrice  float64     `json:"finalPrice"`
	Products    []OrderLine `json:"products"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
