package dispatch

import (
	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/pkg/proto"
)

func userDTO(u *account.User) *proto.UserDTO {
	basket := u.Basket()
	wire := make(map[string]int, len(basket))
	for dish, qty := range basket {
		wire[dish] = qty.Int()
	}

	return &proto.UserDTO{
		Username: u.Username(),
		Address:  u.Address(),
		Postcode: u.Postcode().Code(),
		Basket:   wire,
	}
}

func postcodeDTOs(postcodes []*account.Postcode) []proto.PostcodeDTO {
	out := make([]proto.PostcodeDTO, 0, len(postcodes))
	for _, p := range postcodes {
		out = append(out, proto.PostcodeDTO{Code: p.Code(), Distance: p.Distance().Float()})
	}
	return out
}

func dishDTOs(dishes []*menu.Dish) []proto.DishDTO {
	out := make([]proto.DishDTO, 0, len(dishes))
	for _, d := range dishes {
		recipe := d.Recipe()
		wire := make(map[string]int, len(recipe))
		for ingredient, qty := range recipe {
			wire[ingredient] = qty.Int()
		}
		out = append(out, proto.DishDTO{
			Name:        d.Name(),
			Description: d.Description(),
			Price:       d.Price().String(),
			Recipe:      wire,
		})
	}
	return out
}

func orderDTO(o *order.Order) proto.OrderDTO {
	lines := o.Lines()
	wire := make([]proto.OrderLineDTO, 0, len(lines))
	for _, line := range lines {
		wire = append(wire, proto.OrderLineDTO{
			Dish:      line.Dish(),
			Quantity:  line.Quantity().Int(),
			UnitPrice: line.UnitPrice().String(),
		})
	}

	return proto.OrderDTO{
		ID:        o.ID().String(),
		Customer:  o.Customer(),
		Status:    o.Status().String(),
		Completed: o.IsCompleted(),
		Cost:      o.Cost().String(),
		Lines:     wire,
	}
}

func orderDTOs(orders []*order.Order) []proto.OrderDTO {
	out := make([]proto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderDTO(o))
	}
	return out
}
