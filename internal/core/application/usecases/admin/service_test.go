package admin

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/adapters/out/memstore"
	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/workers"
)

type countingPublisher struct {
	published int
}

func (p *countingPublisher) Publish() { p.published++ }

func newService(t *testing.T) (*Service, *countingPublisher) {
	t.Helper()
	l := ledger.NewLedger()
	publisher := &countingPublisher{}
	pool := workers.NewPool(l, 0, 0, time.Millisecond, nil, slog.New(slog.DiscardHandler))
	svc := NewService(
		l,
		memstore.NewSupplierRepository(),
		memstore.NewPostcodeRepository(),
		memstore.NewUserRepository(),
		pool,
		publisher,
		slog.New(slog.DiscardHandler),
	)
	return svc, publisher
}

func TestCatalogAdministration(t *testing.T) {
	svc, publisher := newService(t)
	ctx := context.Background()

	_, err := svc.AddSupplier(ctx, "Acme", 10)
	require.NoError(t, err)

	_, err = svc.AddIngredient(ctx, "Rice", "kg", "Acme", 5, 20)
	require.NoError(t, err)

	_, err = svc.AddIngredient(ctx, "Beef", "kg", "Nowhere", 5, 20)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = svc.AddDish(ctx, "Maki", "Rice rolls", 350, 2, 4)
	require.NoError(t, err)

	require.NoError(t, svc.SetRecipeLine(ctx, "Maki", "Rice", 2))
	assert.ErrorIs(t, svc.SetRecipeLine(ctx, "Sushi", "Rice", 2), errs.ErrObjectNotFound)

	require.NoError(t, svc.SetIngredientRestockLevels(ctx, "Rice", 8, 10))
	require.NoError(t, svc.RemoveDish(ctx, "Maki"))
	require.NoError(t, svc.RemoveIngredient(ctx, "Rice"))
	require.NoError(t, svc.RemoveSupplier(ctx, "Acme"))

	// Eight successful mutations published, failures did not.
	assert.Equal(t, 8, publisher.published)
}

func TestAccountAdministration(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddPostcode(ctx, "AB1 2CD", 10)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveUser(ctx, "ghost"), errs.ErrObjectNotFound)
	require.NoError(t, svc.RemovePostcode(ctx, "AB1 2CD"))
}

func TestAgentAdministration(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	svc.AddKitchenAgent(ctx, "staff-1")
	svc.AddDeliveryAgent(ctx, "drone-1", 15)

	statuses := svc.AgentStatuses(ctx)
	require.Len(t, statuses, 2)
	assert.Equal(t, "kitchen", statuses[0].Kind)
	assert.Equal(t, "delivery", statuses[1].Kind)

	require.NoError(t, svc.RemoveKitchenAgent(ctx, "staff-1"))
	assert.ErrorIs(t, svc.RemoveKitchenAgent(ctx, "staff-1"), errs.ErrObjectNotFound)
	require.NoError(t, svc.RemoveDeliveryAgent(ctx, "drone-1"))

	assert.Empty(t, svc.AgentStatuses(ctx))
}
