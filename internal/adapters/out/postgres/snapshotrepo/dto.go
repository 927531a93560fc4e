// Package snapshotrepo persists whole-server snapshots in postgres, the
// durable alternative to the flat-file description.
package snapshotrepo

import "restaurant/internal/core/ports"

// SupplierDTO is the suppliers table row.
type SupplierDTO struct {
	Name     string  `gorm:"type:varchar(255);primaryKey"`
	Distance float64 `gorm:"not null"`
}

func (SupplierDTO) TableName() string { return "suppliers" }

// PostcodeDTO is the postcodes table row.
type PostcodeDTO struct {
	Code     string  `gorm:"type:varchar(32);primaryKey"`
	Distance float64 `gorm:"not null"`
}

func (PostcodeDTO) TableName() string { return "postcodes" }

// IngredientDTO is the ingredients table row with the stock record inline.
type IngredientDTO struct {
	Name      string `gorm:"type:varchar(255);primaryKey"`
	Unit      string `gorm:"type:varchar(64);not null"`
	Supplier  string `gorm:"type:varchar(255);not null"`
	Threshold int    `gorm:"not null"`
	Amount    int    `gorm:"not null"`
	Stock     int    `gorm:"not null"`
}

func (IngredientDTO) TableName() string { return "ingredients" }

// DishDTO is the dishes table row with the stock record inline.
type DishDTO struct {
	Name        string          `gorm:"type:varchar(255);primaryKey"`
	Description string          `gorm:"type:varchar(1024);not null"`
	PriceCents  int64           `gorm:"not null"`
	Threshold   int             `gorm:"not null"`
	Amount      int             `gorm:"not null"`
	Stock       int             `gorm:"not null"`
	Recipe      []RecipeLineDTO `gorm:"foreignKey:DishName;constraint:OnDelete:CASCADE"`
}

func (DishDTO) TableName() string { return "dishes" }

// RecipeLineDTO is one ingredient requirement of a dish.
type RecipeLineDTO struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	DishName   string `gorm:"type:varchar(255);not null;index"`
	Ingredient string `gorm:"type:varchar(255);not null"`
	Quantity   int    `gorm:"not null"`
}

func (RecipeLineDTO) TableName() string { return "recipe_lines" }

// UserDTO is the users table row.
type UserDTO struct {
	Username string          `gorm:"type:varchar(255);primaryKey"`
	Password string          `gorm:"type:varchar(255);not null"`
	Address  string          `gorm:"type:varchar(1024);not null"`
	Postcode string          `gorm:"type:varchar(32);not null"`
	Basket   []BasketLineDTO `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE"`
}

func (UserDTO) TableName() string { return "users" }

// BasketLineDTO is one staged basket entry of a user.
type BasketLineDTO struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Username string `gorm:"type:varchar(255);not null;index"`
	Dish     string `gorm:"type:varchar(255);not null"`
	Quantity int    `gorm:"not null"`
}

func (BasketLineDTO) TableName() string { return "basket_lines" }

// StaffDTO is the kitchen agent roster row.
type StaffDTO struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(255);not null"`
}

func (StaffDTO) TableName() string { return "staff" }

// DroneDTO is the delivery agent roster row.
type DroneDTO struct {
	ID    uint    `gorm:"primaryKey;autoIncrement"`
	Speed float64 `gorm:"not null"`
}

func (DroneDTO) TableName() string { return "drones" }

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID       string         `gorm:"type:uuid;primaryKey"`
	Customer string         `gorm:"type:varchar(255);not null"`
	Postcode string         `gorm:"type:varchar(32);not null"`
	Status   string         `gorm:"type:varchar(64);not null"`
	Lines    []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string { return "orders" }

// OrderLineDTO is one priced line of an order.
type OrderLineDTO struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	OrderID        string `gorm:"type:uuid;not null;index"`
	Dish           string `gorm:"type:varchar(255);not null"`
	Quantity       int    `gorm:"not null"`
	UnitPriceCents int64  `gorm:"not null"`
}

func (OrderLineDTO) TableName() string { return "order_lines" }

func fromSnapshot(snapshot *ports.Snapshot) (
	[]SupplierDTO, []PostcodeDTO, []IngredientDTO, []DishDTO, []UserDTO, []StaffDTO, []DroneDTO, []OrderDTO,
) {
	suppliers := make([]SupplierDTO, 0, len(snapshot.Suppliers))
	for _, record := range snapshot.Suppliers {
		suppliers = append(suppliers, SupplierDTO{Name: record.Name, Distance: record.Distance})
	}

	postcodes := make([]PostcodeDTO, 0, len(snapshot.Postcodes))
	for _, record := range snapshot.Postcodes {
		postcodes = append(postcodes, PostcodeDTO{Code: record.Code, Distance: record.Distance})
	}

	ingredients := make([]IngredientDTO, 0, len(snapshot.Ingredients))
	for _, record := range snapshot.Ingredients {
		ingredients = append(ingredients, IngredientDTO{
			Name:      record.Name,
			Unit:      record.Unit,
			Supplier:  record.Supplier,
			Threshold: record.Threshold,
			Amount:    record.Amount,
			Stock:     record.Stock,
		})
	}

	dishes := make([]DishDTO, 0, len(snapshot.Dishes))
	for _, record := range snapshot.Dishes {
		dto := DishDTO{
			Name:        record.Name,
			Description: record.Description,
			PriceCents:  record.PriceCents,
			Threshold:   record.Threshold,
			Amount:      record.Amount,
			Stock:       record.Stock,
		}
		for ingredient, qty := range record.Recipe {
			dto.Recipe = append(dto.Recipe, RecipeLineDTO{
				DishName:   record.Name,
				Ingredient: ingredient,
				Quantity:   qty,
			})
		}
		dishes = append(dishes, dto)
	}

	users := make([]UserDTO, 0, len(snapshot.Users))
	for _, record := range snapshot.Users {
		dto := UserDTO{
			Username: record.Username,
			Password: record.Password,
			Address:  record.Address,
			Postcode: record.Postcode,
		}
		for dish, qty := range record.Basket {
			dto.Basket = append(dto.Basket, BasketLineDTO{
				Username: record.Username,
				Dish:     dish,
				Quantity: qty,
			})
		}
		users = append(users, dto)
	}

	staff := make([]StaffDTO, 0, len(snapshot.Staff))
	for _, name := range snapshot.Staff {
		staff = append(staff, StaffDTO{Name: name})
	}

	drones := make([]DroneDTO, 0, len(snapshot.Drones))
	for _, speed := range snapshot.Drones {
		drones = append(drones, DroneDTO{Speed: speed})
	}

	orders := make([]OrderDTO, 0, len(snapshot.Orders))
	for _, record := range snapshot.Orders {
		dto := OrderDTO{
			ID:       record.ID,
			Customer: record.Customer,
			Postcode: record.Postcode,
			Status:   record.Status,
		}
		for _, line := range record.Lines {
			dto.Lines = append(dto.Lines, OrderLineDTO{
				OrderID:        record.ID,
				Dish:           line.Dish,
				Quantity:       line.Quantity,
				UnitPriceCents: line.UnitPriceCents,
			})
		}
		orders = append(orders, dto)
	}

	return suppliers, postcodes, ingredients, dishes, users, staff, drones, orders
}
