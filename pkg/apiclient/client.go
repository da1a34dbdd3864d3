package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed wrapper over the orders API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type Product struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
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

type SaveOrderLine struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

type SaveOrderRequest struct {
	OrderNumber string          `json:"orderNumber"`
	Products    []SaveOrderLine `json:"products"`
}

type CreatedOrder struct {
	ID          uint      `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Date        time.Time `json:"date"`
}

// APIError is a non-2xx response decoded from the {"error": ...} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Orders(ctx context.Context) ([]OrderSummary, error) {
	var orders []OrderSummary
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, id uint) (*OrderDetail, error) {
	var order OrderDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreateOrder(ctx context.Context, req SaveOrderRequest) (*CreatedOrder, error) {
	var created CreatedOrder
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id uint, req SaveOrderRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d", id), req, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), nil, nil)
}
