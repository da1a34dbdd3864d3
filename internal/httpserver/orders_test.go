package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ordersapp/orders-app/internal/models"
	"github.com/ordersapp/orders-app/internal/repo"
	"github.com/ordersapp/orders-app/internal/service"
	"github.com/ordersapp/orders-app/internal/transport"
)

type testEnv struct {
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))

	e := echo.New()
	Register(e, &Deps{
		DB:           db,
		OrderHandler: &OrderHandler{Svc: service.NewOrderService(repo.NewGormRepo(db))},
	})

	return &testEnv{E: e, DB: db}
}

func (env *testEnv) doJSONRequest(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoot(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "API funcionando correctamente", rec.Body.String())
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Create(&[]models.Product{
		{Name: "Mouse Inalámbrico", UnitPrice: 80.00},
		{Name: "Teclado Mecánico", UnitPrice: 150.00},
	}).Error)

	rec := env.doJSONRequest(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	require.Equal(t, "Mouse Inalámbrico", products[0].Name)
	require.Equal(t, 80.00, products[0].UnitPrice)
}

func TestCreateThenGetOrder(t *testing.T) {
	env := newTestEnv(t)
	product := models.Product{Name: "Mouse Inalámbrico", UnitPrice: 80.00}
	require.NoError(t, env.DB.Create(&product).Error)

	rec := env.doJSONRequest(t, http.MethodPost, "/api/orders", transport.SaveOrderRequest{
		OrderNumber: "ORD-010",
		Products:    []transport.SaveOrderLine{{ProductID: product.ID, Quantity: 3}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "ORD-010", created.OrderNumber)

	rec = env.doJSONRequest(t, http.MethodGet, "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail transport.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Equal(t, 240.00, detail.FinalPrice)
	require.Equal(t, 1, detail.TotalItems)
	require.Equal(t, "Mouse Inalámbrico", detail.Products[0].Name)
}

func TestGetOrderNotFoundBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(t, http.MethodGet, "/api/orders/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error": "Orden no encontrada"}`, rec.Body.String())
}

func TestGetOrderInvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(t, http.MethodGet, "/api/orders/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrdersSummaries(t *testing.T) {
	env := newTestEnv(t)
	products := []models.Product{
		{Name: "Mouse Inalámbrico", UnitPrice: 80.00},
		{Name: "Monitor LG 24\"", UnitPrice: 800.00},
	}
	require.NoError(t, env.DB.Create(&products).Error)

	rec := env.doJSONRequest(t, http.MethodPost, "/api/orders", transport.SaveOrderRequest{
		OrderNumber: "ORD-001",
		Products: []transport.SaveOrderLine{
			{ProductID: products[0].ID, Quantity: 2},
			{ProductID: products[1].ID, Quantity: 1},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSONRequest(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []transport.OrderSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	require.Equal(t, "ORD-001", summaries[0].OrderNumber)
	require.Equal(t, 2, summaries[0].NumProducts)
	require.Equal(t, 960.00, summaries[0].FinalPrice)
}

func TestUpdateOrder(t *testing.T) {
	env := newTestEnv(t)
	products := []models.Product{
		{Name: "Mouse Inalámbrico", UnitPrice: 80.00},
		{Name: "Teclado Mecánico", UnitPrice: 150.00},
	}
	require.NoError(t, env.DB.Create(&products).Error)

	rec := env.doJSONRequest(t, http.MethodPost, "/api/orders", transport.SaveOrderRequest{
		OrderNumber: "ORD-001",
		Products: []transport.SaveOrderLine{
			{ProductID: products[0].ID, Quantity: 1},
			{ProductID: products[1].ID, Quantity: 1},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSONRequest(t, http.MethodPut, "/api/orders/1", transport.SaveOrderRequest{
		OrderNumber: "ORD-001-B",
		Products:    []transport.SaveOrderLine{{ProductID: products[1].ID, Quantity: 3}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message": "Orden actualizada"}`, rec.Body.String())

	rec = env.doJSONRequest(t, http.MethodGet, "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail transport.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Equal(t, "ORD-001-B", detail.OrderNumber)
	require.Equal(t, 1, detail.TotalItems)
	require.Equal(t, 450.00, detail.FinalPrice)
}

func TestUpdateOrderRejectsDuplicateProduct(t *testing.T) {
	env := newTestEnv(t)
	product := models.Product{Name: "Mouse Inalámbrico", UnitPrice: 80.00}
	require.NoError(t, env.DB.Create(&product).Error)

	rec := env.doJSONRequest(t, http.MethodPut, "/api/orders/1", transport.SaveOrderRequest{
		OrderNumber: "ORD-001",
		Products: []transport.SaveOrderLine{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteOrder(t *testing.T) {
	env := newTestEnv(t)
	product := models.Product{Name: "Mouse Inalámbrico", UnitPrice: 80.00}
	require.NoError(t, env.DB.Create(&product).Error)

	rec := env.doJSONRequest(t, http.MethodPost, "/api/orders", transport.SaveOrderRequest{
		OrderNumber: "ORD-001",
		Products:    []transport.SaveOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSONRequest(t, http.MethodDelete, "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message": "Orden eliminada"}`, rec.Body.String())

	rec = env.doJSONRequest(t, http.MethodGet, "/api/orders/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// No existence check: a second delete still reports success.
	rec = env.doJSONRequest(t, http.MethodDelete, "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message": "Orden eliminada"}`, rec.Body.String())
}
