package ports

import "context"

// Snapshot is a flat, storage-neutral capture of the entire server state:
// catalogs with stock records, served postcodes, registered users with their
// baskets, the agent roster and all orders. Both the flat-file description
// and the postgres store load and save this shape.
type Snapshot struct {
	Suppliers   []SupplierRecord
	Postcodes   []PostcodeRecord
	Ingredients []IngredientRecord
	Dishes      []DishRecord
	Users       []UserRecord
	Staff       []string
	Drones      []float64
	Orders      []OrderRecord
}

// SupplierRecord is a supplier row.
type SupplierRecord struct {
	Name     string
	Distance float64
}

// PostcodeRecord is a served postcode row.
type PostcodeRecord struct {
	Code     string
	Distance float64
}

// IngredientRecord is an ingredient row with its stock record.
type IngredientRecord struct {
	Name      string
	Unit      string
	Supplier  string
	Threshold int
	Amount    int
	Stock     int
}

// DishRecord is a dish row with its stock record and recipe.
type DishRecord struct {
	Name        string
	Description string
	PriceCents  int64
	Threshold   int
	Amount      int
	Stock       int
	Recipe      map[string]int
}

// UserRecord is a registered customer row with the staged basket.
type UserRecord struct {
	Username string
	Password string
	Address  string
	Postcode string
	Basket   map[string]int
}

// OrderRecord is an order row.
type OrderRecord struct {
	ID       string
	Customer string
	Postcode string
	Status   string
	Lines    []OrderLineRecord
}

// OrderLineRecord is one priced order line.
type OrderLineRecord struct {
	Dish           string
	Quantity       int
	UnitPriceCents int64
}

// SnapshotStore persists whole-server snapshots: the startup load and the
// shutdown/autosave dumps go through this boundary, so the storage format
// (flat-file description, postgres) is swappable.
type SnapshotStore interface {
	// Load reads the last persisted snapshot.
	Load(ctx context.Context) (*Snapshot, error)

	// Save persists the given snapshot, replacing the previous one.
	Save(ctx context.Context, snapshot *Snapshot) error
}
