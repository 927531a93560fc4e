package queries

import (
	"context"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/ports"
)

// GetPostcodesQueryHandler snapshots the served postcode list.
type GetPostcodesQueryHandler struct {
	postcodes ports.PostcodeRepository
}

// NewGetPostcodesQueryHandler creates a handler for postcode listing.
func NewGetPostcodesQueryHandler(postcodes ports.PostcodeRepository) GetPostcodesQueryHandler {
	return GetPostcodesQueryHandler{postcodes: postcodes}
}

// Handle returns every served postcode sorted by code.
func (h *GetPostcodesQueryHandler) Handle(ctx context.Context) ([]*account.Postcode, error) {
	return h.postcodes.GetAll(ctx)
}
