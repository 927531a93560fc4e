package http

// Error is the JSON error envelope.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Dish is the menu entry representation.
type Dish struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       string         `json:"price"`
	Recipe      map[string]int `json:"recipe,omitempty"`
}

// StockLine is one stocked item with its restock configuration and the
// amount of restock work already queued for it.
type StockLine struct {
	Name      string `json:"name"`
	Level     int    `json:"level"`
	Threshold int    `json:"threshold"`
	Amount    int    `json:"amount"`
	Pending   int    `json:"pending"`
}

// Stock groups the dish and ingredient stock reports.
type Stock struct {
	Dishes      []StockLine `json:"dishes"`
	Ingredients []StockLine `json:"ingredients"`
}

// Order is the order representation.
type Order struct {
	ID       string      `json:"id"`
	Customer string      `json:"customer"`
	Status   string      `json:"status"`
	Cost     string      `json:"cost"`
	Lines    []OrderLine `json:"lines"`
}

// OrderLine is one priced order line.
type OrderLine struct {
	Dish      string `json:"dish"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// Worker is one agent with its live status. Speed is zero for kitchen
// agents.
type Worker struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Status string  `json:"status"`
	Speed  float64 `json:"speed,omitempty"`
}
