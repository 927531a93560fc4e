package snapshotrepo

import (
	"context"

	"gorm.io/gorm"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// Store implements the snapshot boundary over postgres via GORM. A snapshot
// replaces everything: Save runs one transaction that truncates and rewrites
// all tables, so a crash mid-save never leaves a half-written state behind.
type Store struct {
	db *gorm.DB
}

// NewStore creates a postgres snapshot store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the snapshot schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SupplierDTO{},
		&PostcodeDTO{},
		&IngredientDTO{},
		&DishDTO{},
		&RecipeLineDTO{},
		&UserDTO{},
		&BasketLineDTO{},
		&StaffDTO{},
		&DroneDTO{},
		&OrderDTO{},
		&OrderLineDTO{},
	)
}

// Load reads the stored snapshot. An entirely empty schema is a NotFound
// error, meaning a first boot.
func (s *Store) Load(ctx context.Context) (*ports.Snapshot, error) {
	db := s.db.WithContext(ctx)
	snapshot := &ports.Snapshot{}

	var suppliers []SupplierDTO
	if err := db.Order("name").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	for _, dto := range suppliers {
		snapshot.Suppliers = append(snapshot.Suppliers, ports.SupplierRecord{Name: dto.Name, Distance: dto.Distance})
	}

	var postcodes []PostcodeDTO
	if err := db.Order("code").Find(&postcodes).Error; err != nil {
		return nil, err
	}
	for _, dto := range postcodes {
		snapshot.Postcodes = append(snapshot.Postcodes, ports.PostcodeRecord{Code: dto.Code, Distance: dto.Distance})
	}

	var ingredients []IngredientDTO
	if err := db.Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	for _, dto := range ingredients {
		snapshot.Ingredients = append(snapshot.Ingredients, ports.IngredientRecord{
			Name:      dto.Name,
			Unit:      dto.Unit,
			Supplier:  dto.Supplier,
			Threshold: dto.Threshold,
			Amount:    dto.Amount,
			Stock:     dto.Stock,
		})
	}

	var dishes []DishDTO
	if err := db.Preload("Recipe").Order("name").Find(&dishes).Error; err != nil {
		return nil, err
	}
	for _, dto := range dishes {
		recipe := make(map[string]int, len(dto.Recipe))
		for _, line := range dto.Recipe {
			recipe[line.Ingredient] = line.Quantity
		}
		snapshot.Dishes = append(snapshot.Dishes, ports.DishRecord{
			Name:        dto.Name,
			Description: dto.Description,
			PriceCents:  dto.PriceCents,
			Threshold:   dto.Threshold,
			Amount:      dto.Amount,
			Stock:       dto.Stock,
			Recipe:      recipe,
		})
	}

	var users []UserDTO
	if err := db.Preload("Basket").Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	for _, dto := range users {
		basket := make(map[string]int, len(dto.Basket))
		for _, line := range dto.Basket {
			basket[line.Dish] = line.Quantity
		}
		snapshot.Users = append(snapshot.Users, ports.UserRecord{
			Username: dto.Username,
			Password: dto.Password,
			Address:  dto.Address,
			Postcode: dto.Postcode,
			Basket:   basket,
		})
	}

	var staff []StaffDTO
	if err := db.Order("id").Find(&staff).Error; err != nil {
		return nil, err
	}
	for _, dto := range staff {
		snapshot.Staff = append(snapshot.Staff, dto.Name)
	}

	var drones []DroneDTO
	if err := db.Order("id").Find(&drones).Error; err != nil {
		return nil, err
	}
	for _, dto := range drones {
		snapshot.Drones = append(snapshot.Drones, dto.Speed)
	}

	var orders []OrderDTO
	if err := db.Preload("Lines").Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	for _, dto := range orders {
		record := ports.OrderRecord{
			ID:       dto.ID,
			Customer: dto.Customer,
			Postcode: dto.Postcode,
			Status:   dto.Status,
		}
		for _, line := range dto.Lines {
			record.Lines = append(record.Lines, ports.OrderLineRecord{
				Dish:           line.Dish,
				Quantity:       line.Quantity,
				UnitPriceCents: line.UnitPriceCents,
			})
		}
		snapshot.Orders = append(snapshot.Orders, record)
	}

	if isEmpty(snapshot) {
		return nil, errs.NewObjectNotFoundError("snapshot", "postgres")
	}
	return snapshot, nil
}

// Save replaces the stored snapshot in one transaction.
func (s *Store) Save(ctx context.Context, snapshot *ports.Snapshot) error {
	suppliers, postcodes, ingredients, dishes, users, staff, drones, orders := fromSnapshot(snapshot)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&OrderLineDTO{}, &OrderDTO{}, &BasketLineDTO{}, &UserDTO{},
			&RecipeLineDTO{}, &DishDTO{}, &IngredientDTO{},
			&StaffDTO{}, &DroneDTO{}, &PostcodeDTO{}, &SupplierDTO{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}

		for _, batch := range []struct {
			rows any
			size int
		}{
			{&suppliers, len(suppliers)},
			{&postcodes, len(postcodes)},
			{&ingredients, len(ingredients)},
			{&dishes, len(dishes)},
			{&users, len(users)},
			{&staff, len(staff)},
			{&drones, len(drones)},
			{&orders, len(orders)},
		} {
			if batch.size == 0 {
				continue
			}
			if err := tx.Create(batch.rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func isEmpty(snapshot *ports.Snapshot) bool {
	return len(snapshot.Suppliers) == 0 &&
		len(snapshot.Postcodes) == 0 &&
		len(snapshot.Ingredients) == 0 &&
		len(snapshot.Dishes) == 0 &&
		len(snapshot.Users) == 0 &&
		len(snapshot.Staff) == 0 &&
		len(snapshot.Drones) == 0 &&
		len(snapshot.Orders) == 0
}
