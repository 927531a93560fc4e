package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services/ledger"
)

func testDeliveryOrder(t *testing.T, distance kernel.Distance) *order.Order {
	t.Helper()
	postcode, err := account.NewPostcode("AB1 2CD", distance)
	require.NoError(t, err)
	line, err := order.NewLine("Maki", 350, 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "alice", postcode, []order.Line{line})
	require.NoError(t, err)
	return o
}

// Postcode distance 30, agent speed 15, scale 10ms: the trip must take
// (30/15)*10ms = 20ms of simulated transit.
func TestDeliveryTransitTimeScalesWithDistanceAndSpeed(t *testing.T) {
	postcode, err := account.NewPostcode("AB1 2CD", 30)
	require.NoError(t, err)

	transit := postcode.Distance().TransitTime(15, 10*time.Millisecond)

	assert.Equal(t, 20*time.Millisecond, transit)
}

func TestDeliveryCompletesOrder(t *testing.T) {
	l := ledger.NewLedger()
	o := testDeliveryOrder(t, 1)
	require.NoError(t, l.EnqueueOrder(o))

	var trips atomic.Int32
	d := NewDelivery("drone-1", l, 100, time.Millisecond, func() { trips.Add(1) }, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(ctx)
	}()

	waitFor(t, time.Second, func() bool { return trips.Load() >= 1 })

	assert.Equal(t, order.Delivered, o.Status())
	assert.True(t, o.IsCompleted())

	l.Close()
	<-done
}

func TestDeliveryFetchReplenishesIngredient(t *testing.T) {
	l := ledger.NewLedger()

	acme, err := menu.NewSupplier("Acme", 1)
	require.NoError(t, err)
	rice, err := menu.NewIngredient("Rice", "kg", acme)
	require.NoError(t, err)
	require.NoError(t, l.AddIngredient(rice, 5, 20))
	require.NoError(t, l.SetIngredientStock("Rice", 3))

	var trips atomic.Int32
	d := NewDelivery("drone-1", l, 100, time.Millisecond, func() { trips.Add(1) }, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(ctx)
	}()

	waitFor(t, time.Second, func() bool { return trips.Load() >= 1 })

	level, err := l.IngredientStock("Rice")
	require.NoError(t, err)
	assert.Equal(t, kernel.Quantity(25), level)

	l.Close()
	<-done
}

func TestDeliveryAbortedTripIsDropped(t *testing.T) {
	l := ledger.NewLedger()
	o := testDeliveryOrder(t, 1000)
	require.NoError(t, l.EnqueueOrder(o))

	d := NewDelivery("drone-1", l, 1, time.Second, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(ctx)
	}()

	waitFor(t, time.Second, func() bool { return o.Status() == order.BeingDelivered })

	cancel()
	<-done

	// The trip never completed and is not re-enqueued.
	assert.False(t, o.IsCompleted())
	_, _, deliver := l.QueueLengths()
	assert.Zero(t, deliver)
}
