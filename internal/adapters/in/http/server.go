package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/core/ports"
	"restaurant/internal/workers"
)

// Server exposes the read-only operations dashboard over HTTP. Mutations go
// through the wire protocol; this surface only observes.
type Server struct {
	ledger *ledger.Ledger
	orders ports.OrderRepository
	pool   *workers.Pool
}

// NewServer creates the dashboard server.
func NewServer(l *ledger.Ledger, orders ports.OrderRepository, pool *workers.Pool) *Server {
	return &Server{ledger: l, orders: orders, pool: pool}
}

// RegisterRoutes mounts the dashboard endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.GetHealth)
	e.GET("/api/v1/dishes", s.GetDishes)
	e.GET("/api/v1/stock", s.GetStock)
	e.GET("/api/v1/orders", s.GetOrders)
	e.GET("/api/v1/workers", s.GetWorkers)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetDishes handles GET /api/v1/dishes - the current menu.
func (s *Server) GetDishes(ctx echo.Context) error {
	dishes := s.ledger.Dishes()

	response := make([]Dish, len(dishes))
	for i, dish := range dishes {
		recipe := dish.Recipe()
		lines := make(map[string]int, len(recipe))
		for ingredient, qty := range recipe {
			lines[ingredient] = qty.Int()
		}

		response[i] = Dish{
			Name:        dish.Name(),
			Description: dish.Description(),
			Price:       dish.Price().String(),
			Recipe:      lines,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStock handles GET /api/v1/stock - stock levels against restock levels.
func (s *Server) GetStock(ctx echo.Context) error {
	response := Stock{
		Dishes:      stockLines(s.ledger.DishReport()),
		Ingredients: stockLines(s.ledger.IngredientReport()),
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrders handles GET /api/v1/orders - every order on the books.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.orders.GetAll(ctx.Request().Context())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		lines := make([]OrderLine, len(o.Lines()))
		for j, line := range o.Lines() {
			lines[j] = OrderLine{
				Dish:      line.Dish(),
				Quantity:  line.Quantity().Int(),
				UnitPrice: line.UnitPrice().String(),
			}
		}

		response[i] = Order{
			ID:       o.ID().String(),
			Customer: o.Customer(),
			Status:   o.Status().String(),
			Cost:     o.Cost().String(),
			Lines:    lines,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWorkers handles GET /api/v1/workers - every agent and what it is doing.
func (s *Server) GetWorkers(ctx echo.Context) error {
	statuses := s.pool.Statuses()

	response := make([]Worker, len(statuses))
	for i, status := range statuses {
		response[i] = Worker{
			Name:   status.Name,
			Kind:   status.Kind,
			Status: status.Status,
			Speed:  status.Speed,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func stockLines(report []ledger.StockLine) []StockLine {
	lines := make([]StockLine, len(report))
	for i, line := range report {
		lines[i] = StockLine{
			Name:      line.Name,
			Level:     line.Level.Int(),
			Threshold: line.Threshold.Int(),
			Amount:    line.Amount.Int(),
			Pending:   line.Pending,
		}
	}
	return lines
}
