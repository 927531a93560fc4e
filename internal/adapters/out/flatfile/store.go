package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// defaultIngredientStock applies to ingredients the description gives no
// STOCK record for.
const defaultIngredientStock = 10

// Store reads and writes whole-server snapshots as a line-oriented
// description file. Each line is a colon-separated record tagged by kind
// (SUPPLIER, POSTCODE, INGREDIENT, DISH, USER, STAFF, DRONE, STOCK, ORDER);
// recipes and order lines use the "N * Name" list syntax. Field values
// therefore cannot contain colons or commas.
type Store struct {
	path string
}

// NewStore creates a store over the given description file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load parses the description file into a snapshot. A missing file is a
// NotFound error so the caller can distinguish first boot from a broken
// file. Records referencing unknown entities (an ingredient with an unknown
// supplier, an order for an unknown user) are skipped, not fatal.
func (s *Store) Load(ctx context.Context) (*ports.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, errs.NewObjectNotFoundErrorWithCause("path", s.path, err)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	snapshot := &ports.Snapshot{}
	stocks := make(map[string]int)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ":")
		switch fields[0] {
		case "SUPPLIER":
			s.parseSupplier(snapshot, fields)
		case "POSTCODE":
			s.parsePostcode(snapshot, fields)
		case "INGREDIENT":
			s.parseIngredient(snapshot, fields)
		case "DISH":
			s.parseDish(snapshot, fields)
		case "USER":
			s.parseUser(snapshot, fields)
		case "STAFF":
			if len(fields) == 2 {
				snapshot.Staff = append(snapshot.Staff, fields[1])
			}
		case "DRONE":
			if len(fields) == 2 {
				if speed, convErr := strconv.ParseFloat(fields[1], 64); convErr == nil {
					snapshot.Drones = append(snapshot.Drones, speed)
				}
			}
		case "STOCK":
			if len(fields) == 3 {
				if level, convErr := strconv.Atoi(fields[2]); convErr == nil {
					stocks[fields[1]] = level
				}
			}
		case "ORDER":
			s.parseOrder(snapshot, fields)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}

	applyStocks(snapshot, stocks)
	return snapshot, nil
}

// Save writes the snapshot back in the same record order Load understands.
// Order identity and status do not survive the format: a reloaded order is a
// fresh one waiting on delivery.
func (s *Store) Save(ctx context.Context, snapshot *ports.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	for _, supplier := range snapshot.Suppliers {
		fmt.Fprintf(&b, "SUPPLIER:%s:%s\n", supplier.Name, formatDistance(supplier.Distance))
	}
	for _, postcode := range snapshot.Postcodes {
		fmt.Fprintf(&b, "POSTCODE:%s:%s\n", postcode.Code, formatDistance(postcode.Distance))
	}
	for _, ingredient := range snapshot.Ingredients {
		fmt.Fprintf(&b, "INGREDIENT:%s:%s:%s:%d:%d\n",
			ingredient.Name, ingredient.Unit, ingredient.Supplier, ingredient.Threshold, ingredient.Amount)
	}
	for _, dish := range snapshot.Dishes {
		fmt.Fprintf(&b, "DISH:%s:%s:%s:%d:%d:%s\n",
			dish.Name, dish.Description, kernel.Money(dish.PriceCents).String(),
			dish.Threshold, dish.Amount, formatLines(dish.Recipe))
	}
	for _, user := range snapshot.Users {
		fmt.Fprintf(&b, "USER:%s:%s:%s:%s\n", user.Username, user.Password, user.Address, user.Postcode)
	}
	for _, staff := range snapshot.Staff {
		fmt.Fprintf(&b, "STAFF:%s\n", staff)
	}
	for _, speed := range snapshot.Drones {
		fmt.Fprintf(&b, "DRONE:%s\n", formatDistance(speed))
	}
	for _, ingredient := range snapshot.Ingredients {
		fmt.Fprintf(&b, "STOCK:%s:%d\n", ingredient.Name, ingredient.Stock)
	}
	for _, dish := range snapshot.Dishes {
		fmt.Fprintf(&b, "STOCK:%s:%d\n", dish.Name, dish.Stock)
	}
	for _, o := range snapshot.Orders {
		lines := make(map[string]int, len(o.Lines))
		for _, line := range o.Lines {
			lines[line.Dish] = line.Quantity
		}
		fmt.Fprintf(&b, "ORDER:%s:%s\n", o.Customer, formatLines(lines))
	}

	return os.WriteFile(s.path, []byte(b.String()), 0o644)
}

func (s *Store) parseSupplier(snapshot *ports.Snapshot, fields []string) {
	if len(fields) != 3 {
		return
	}
	distance, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return
	}
	snapshot.Suppliers = append(snapshot.Suppliers, ports.SupplierRecord{Name: fields[1], Distance: distance})
}

func (s *Store) parsePostcode(snapshot *ports.Snapshot, fields []string) {
	if len(fields) != 3 {
		return
	}
	distance, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return
	}
	snapshot.Postcodes = append(snapshot.Postcodes, ports.PostcodeRecord{Code: fields[1], Distance: distance})
}

func (s *Store) parseIngredient(snapshot *ports.Snapshot, fields []string) {
	if len(fields) != 6 {
		return
	}
	if !hasSupplier(snapshot, fields[3]) {
		return
	}
	threshold, err := strconv.Atoi(fields[4])
	if err != nil {
		return
	}
	amount, err := strconv.Atoi(fields[5])
	if err != nil {
		return
	}

	snapshot.Ingredients = append(snapshot.Ingredients, ports.IngredientRecord{
		Name:      fields[1],
		Unit:      fields[2],
		Supplier:  fields[3],
		Threshold: threshold,
		Amount:    amount,
		Stock:     defaultIngredientStock,
	})
}

func (s *Store) parseDish(snapshot *ports.Snapshot, fields []string) {
	if len(fields) != 7 {
		return
	}
	price, err := kernel.ParseMoney(fields[3])
	if err != nil {
		return
	}
	threshold, err := strconv.Atoi(fields[4])
	if err != nil {
		return
	}
	amount, err := strconv.Atoi(fields[5])
	if err != nil {
		return
	}

	known := make(map[string]bool, len(snapshot.Ingredients))
	for _, ingredient := range snapshot.Ingredients {
		known[ingredient.Name] = true
	}

	recipe := make(map[string]int)
	for name, qty := range parseLines(fields[6]) {
		if known[name] {
			recipe[name] = qty
		}
	}

	snapshot.Dishes = append(snapshot.Dishes, ports.DishRecord{
		Name:        fields[1],
		Description: fields[2],
		PriceCents:  price.Cents(),
		Threshold:   threshold,
		Amount:      amount,
		Recipe:      recipe,
	})
}

func (s *Store) parseUser(snapshot *ports.Snapshot, fields []string) {
	if len(fields) != 5 {
		return
	}
	for _, postcode := range snapshot.Postcodes {
		if postcode.Code == fields[4] {
			snapshot.Users = append(snapshot.Users, ports.UserRecord{
				Username: fields[1],
				Password: fields[2],
				Address:  fields[3],
				Postcode: fields[4],
				Basket:   map[string]int{},
			})
			return
		}
	}
}

func (s *Store) parseOrder(snapshot *ports.Snapshot, fields []string) {
	if len(fields) != 3 {
		return
	}

	var customer *ports.UserRecord
	for i := range snapshot.Users {
		if snapshot.Users[i].Username == fields[1] {
			customer = &snapshot.Users[i]
			break
		}
	}
	if customer == nil {
		return
	}

	known := make(map[string]int64, len(snapshot.Dishes))
	for _, dish := range snapshot.Dishes {
		known[dish.Name] = dish.PriceCents
	}

	var lines []ports.OrderLineRecord
	for name, qty := range parseLines(fields[2]) {
		price, ok := known[name]
		if !ok {
			return
		}
		lines = append(lines, ports.OrderLineRecord{Dish: name, Quantity: qty, UnitPriceCents: price})
	}
	if len(lines) == 0 {
		return
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Dish < lines[j].Dish })

	snapshot.Orders = append(snapshot.Orders, ports.OrderRecord{
		Customer: customer.Username,
		Postcode: customer.Postcode,
		Lines:    lines,
	})
}

// parseLines decodes the "N * Name" comma-separated list syntax. Entries
// that do not match are skipped.
func parseLines(raw string) map[string]int {
	out := make(map[string]int)
	for _, entry := range strings.Split(raw, ",") {
		qtyRaw, name, ok := strings.Cut(entry, " * ")
		if !ok {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyRaw))
		if err != nil || qty <= 0 {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out[name] = qty
	}
	return out
}

func formatLines(lines map[string]int) string {
	names := make([]string, 0, len(lines))
	for name := range lines {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, fmt.Sprintf("%d * %s", lines[name], name))
	}
	return strings.Join(entries, ",")
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func hasSupplier(snapshot *ports.Snapshot, name string) bool {
	for _, supplier := range snapshot.Suppliers {
		if supplier.Name == name {
			return true
		}
	}
	return false
}

func applyStocks(snapshot *ports.Snapshot, stocks map[string]int) {
	for i := range snapshot.Ingredients {
		if level, ok := stocks[snapshot.Ingredients[i].Name]; ok {
			snapshot.Ingredients[i].Stock = level
		}
	}
	for i := range snapshot.Dishes {
		if level, ok := stocks[snapshot.Dishes[i].Name]; ok {
			snapshot.Dishes[i].Stock = level
		}
	}
}
