package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ordersapp/orders-app/internal/events"
	"github.com/ordersapp/orders-app/internal/logging"
	"github.com/ordersapp/orders-app/internal/service"
	"github.com/ordersapp/orders-app/internal/transport"
)

// Fixed per-operation messages, kept from the original API contract.
const (
	msgProductsFetchError = "Error al obtener productos"
	msgOrdersFetchError   = "Error al obtener órdenes"
	msgOrderFetchError    = "Error al obtener la orden"
	msgOrderNotFound      = "Orden no encontrada"
	msgOrderCreateError   = "Error al crear la orden"
	msgOrderUpdateError   = "Error al actualizar la orden"
	msgOrderDeleteError   = "Error al eliminar la orden"
	msgOrderUpdated       = "Orden actualizada"
	msgOrderDeleted       = "Orden eliminada"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func jsonError(c echo.Context, code int, msg string) error {
	return c.JSON(code, transport.ErrorResponse{Error: msg})
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *OrderHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list_products")

	products, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return jsonError(c, http.StatusInternalServerError, msgProductsFetchError)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list_orders")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return jsonError(c, http.StatusInternalServerError, msgOrdersFetchError)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get_order")

	id, err := pathID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "invalid id", "error", err)
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "order_id", id)
			return jsonError(c, http.StatusNotFound, msgOrderNotFound)
		}
		l.Error("get_order_error", "status", 500, "order_id", id, "error", err)
		return jsonError(c, http.StatusInternalServerError, msgOrderFetchError)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create_order")

	var req transport.SaveOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
			return jsonError(c, http.StatusBadRequest, err.Error())
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return jsonError(c, http.StatusInternalServerError, msgOrderCreateError)
	}

	h.publish(c, strconv.FormatUint(uint64(order.ID), 10), map[string]any{
		"type":        "order_created",
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_order")

	id, err := pathID(c)
	if err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid id", "error", err)
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	var req transport.SaveOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateOrder(ctx, id, req); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
			return jsonError(c, http.StatusBadRequest, err.Error())
		}
		l.Error("update_order_error", "status", 500, "order_id", id, "error", err)
		return jsonError(c, http.StatusInternalServerError, msgOrderUpdateError)
	}

	h.publish(c, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":        "order_updated",
		"orderID":     id,
		"orderNumber": req.OrderNumber,
	})

	l.Info("update_order_success", "order_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msgOrderUpdated})
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.delete_order")

	id, err := pathID(c)
	if err != nil {
		l.Warn("delete_order_error", "status", 400, "reason", "invalid id", "error", err)
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.DeleteOrder(ctx, id); err != nil {
		l.Error("delete_order_error", "status", 500, "order_id", id, "error", err)
		return jsonError(c, http.StatusInternalServerError, msgOrderDeleteError)
	}

	h.publish(c, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":    "order_deleted",
		"orderID": id,
	})

	l.Info("delete_order_success", "order_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msgOrderDeleted})
}
