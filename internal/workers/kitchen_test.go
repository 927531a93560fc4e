package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/services/ledger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testLedgerWithMaki(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.NewLedger()

	acme, err := menu.NewSupplier("Acme", 10)
	require.NoError(t, err)
	rice, err := menu.NewIngredient("Rice", "kg", acme)
	require.NoError(t, err)
	require.NoError(t, l.AddIngredient(rice, 0, 0))
	require.NoError(t, l.SetIngredientStock("Rice", 5))

	maki, err := menu.RestoreDish("Maki", "Rice rolls", 350, map[string]kernel.Quantity{"Rice": 2})
	require.NoError(t, err)
	require.NoError(t, l.AddDish(maki, 0, 0))
	return l
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestKitchenCooksQueuedDish(t *testing.T) {
	l := testLedgerWithMaki(t)

	var cooked atomic.Int32
	k := NewKitchen("staff-1", l, 0, 0, func() { cooked.Add(1) }, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		k.Run(ctx)
	}()

	// One cook entry: threshold 1, amount 0, stock 0.
	require.NoError(t, l.SetDishRestockLevels("Maki", 1, 0))
	require.NoError(t, l.SetDishStock("Maki", 0))

	waitFor(t, time.Second, func() bool { return cooked.Load() >= 1 })

	level, err := l.DishStock("Maki")
	require.NoError(t, err)
	assert.Equal(t, kernel.Quantity(1), level)

	riceLevel, err := l.IngredientStock("Rice")
	require.NoError(t, err)
	assert.Equal(t, kernel.Quantity(3), riceLevel)

	l.Close()
	<-done
	assert.Equal(t, StatusIdle, k.Status())
}

func TestKitchenReportsStatusWhileCooking(t *testing.T) {
	l := testLedgerWithMaki(t)
	k := NewKitchen("staff-1", l, time.Hour, time.Hour, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		k.Run(ctx)
	}()

	require.NoError(t, l.SetDishRestockLevels("Maki", 1, 0))
	require.NoError(t, l.SetDishStock("Maki", 0))

	waitFor(t, time.Second, func() bool { return k.Status() == "Making Dish: Maki" })

	// Cancellation aborts without crediting the portion.
	cancel()
	<-done

	level, err := l.DishStock("Maki")
	require.NoError(t, err)
	assert.Zero(t, level.Int())
}
