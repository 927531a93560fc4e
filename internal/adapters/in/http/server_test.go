package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/adapters/out/memstore"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/workers"
)

func newTestServer(t *testing.T) (*echo.Echo, *ledger.Ledger, *workers.Pool) {
	t.Helper()

	l := ledger.NewLedger()
	t.Cleanup(l.Close)

	dish, err := menu.NewDish("Maki", "Rice rolls", 350)
	require.NoError(t, err)
	require.NoError(t, l.AddDish(dish, 2, 4))
	require.NoError(t, l.SetDishStock("Maki", 10))

	pool := workers.NewPool(l, time.Millisecond, time.Millisecond, time.Millisecond, nil, slog.New(slog.DiscardHandler))

	e := echo.New()
	NewServer(l, memstore.NewOrderRepository(), pool).RegisterRoutes(e)
	return e, l, pool
}

func get(t *testing.T, e *echo.Echo, path string, out any) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func TestGetHealth(t *testing.T) {
	e, _, _ := newTestServer(t)

	var body map[string]string
	require.Equal(t, http.StatusOK, get(t, e, "/health", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestGetDishes(t *testing.T) {
	e, _, _ := newTestServer(t)

	var dishes []Dish
	require.Equal(t, http.StatusOK, get(t, e, "/api/v1/dishes", &dishes))
	require.Len(t, dishes, 1)
	assert.Equal(t, "Maki", dishes[0].Name)
	assert.Equal(t, "3.50", dishes[0].Price)
}

func TestGetStock(t *testing.T) {
	e, _, _ := newTestServer(t)

	var stock Stock
	require.Equal(t, http.StatusOK, get(t, e, "/api/v1/stock", &stock))
	require.Len(t, stock.Dishes, 1)
	assert.Equal(t, 10, stock.Dishes[0].Level)
	assert.Equal(t, 2, stock.Dishes[0].Threshold)
	assert.Empty(t, stock.Ingredients)
}

func TestGetWorkers(t *testing.T) {
	e, _, pool := newTestServer(t)
	pool.AddKitchen("staff-1")
	pool.AddDelivery("drone-1", 15)

	var agents []Worker
	require.Equal(t, http.StatusOK, get(t, e, "/api/v1/workers", &agents))
	require.Len(t, agents, 2)
	assert.Equal(t, "kitchen", agents[0].Kind)
	assert.Equal(t, "delivery", agents[1].Kind)
	assert.Equal(t, float64(15), agents[1].Speed)
}
