package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/domain/services/ledger"
)

// Delivery is a delivery agent: a goroutine that drains both the order
// delivery queue and the ingredient fetch queue, orders first. Transit time
// for a trip is (distance / speed) * scale, slept for real on the agent's
// goroutine.
type Delivery struct {
	name   string
	speed  float64
	scale  time.Duration
	ledger *ledger.Ledger
	notify func()
	log    *slog.Logger

	mu     sync.Mutex
	status string
}

// NewDelivery creates a delivery agent moving at the given speed. notify is
// called after every completed trip and may be nil.
func NewDelivery(name string, l *ledger.Ledger, speed float64, scale time.Duration, notify func(), log *slog.Logger) *Delivery {
	return &Delivery{
		name:   name,
		speed:  speed,
		scale:  scale,
		ledger: l,
		notify: notify,
		log:    log.With("component", "delivery", "agent", name),
		status: StatusIdle,
	}
}

// Name returns the agent's identity.
func (d *Delivery) Name() string {
	return d.name
}

// Speed returns the agent's configured speed.
func (d *Delivery) Speed() float64 {
	return d.speed
}

// Status returns the agent's current human-readable status.
func (d *Delivery) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Run drains delivery work until the ledger is closed or the context is
// cancelled. An interrupted trip is dropped, not re-enqueued: the job was
// already dequeued and simulated work is at-most-once.
func (d *Delivery) Run(ctx context.Context) {
	defer d.setStatus(StatusIdle)

	for {
		job, ok := d.ledger.NextDelivery(ctx)
		if !ok {
			d.log.Info("delivery agent stopping")
			return
		}

		if job.Order != nil {
			if !d.deliverOrder(ctx, job) {
				return
			}
		} else {
			if !d.fetchIngredient(ctx, job) {
				return
			}
		}

		d.setStatus(StatusIdle)

		if d.notify != nil {
			d.notify()
		}
	}
}

func (d *Delivery) deliverOrder(ctx context.Context, job ledger.DeliveryJob) bool {
	o := job.Order
	d.setStatus("Delivering Order")

	if err := o.BeginDelivery(); err != nil {
		// Already picked up or cancelled mid-queue; drop it.
		d.log.Warn("skipping order", "order", o.ID().String(), "error", err)
		return true
	}

	transit := o.Postcode().Distance().TransitTime(d.speed, d.scale)
	d.log.Info("delivering order", "order", o.ID().String(), "transit", transit)

	if !sleepCtx(ctx, transit) {
		d.log.Info("delivery aborted", "order", o.ID().String())
		return false
	}

	if err := o.Complete(); err != nil {
		d.log.Warn("could not complete order", "order", o.ID().String(), "error", err)
	}
	return true
}

func (d *Delivery) fetchIngredient(ctx context.Context, job ledger.DeliveryJob) bool {
	ingredient := job.Ingredient
	d.setStatus("Getting Ingredients: " + ingredient.Name())

	transit := ingredient.Supplier().Distance().TransitTime(d.speed, d.scale)
	d.log.Info("fetching ingredient", "ingredient", ingredient.Name(), "supplier", ingredient.Supplier().Name(), "transit", transit)

	if !sleepCtx(ctx, transit) {
		d.log.Info("fetch aborted", "ingredient", ingredient.Name())
		return false
	}

	if err := d.ledger.ReplenishIngredient(ingredient.Name()); err != nil {
		d.log.Warn("could not replenish ingredient", "ingredient", ingredient.Name(), "error", err)
	}
	return true
}

func (d *Delivery) setStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = status
}
