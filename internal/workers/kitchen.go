package workers

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"restaurant/internal/core/domain/services/ledger"
)

// StatusIdle is the status string reported by an agent with no work in hand.
const StatusIdle = "Idle"

// Kitchen is a kitchen agent: a goroutine that drains the cook queue,
// consumes recipe ingredients through the ledger and credits finished
// portions back. Cooking latency is simulated with a real sleep drawn from
// the configured range; the sleep is the unit of work, which is what limits
// kitchen throughput.
type Kitchen struct {
	name    string
	ledger  *ledger.Ledger
	minCook time.Duration
	maxCook time.Duration
	notify  func()
	log     *slog.Logger

	mu     sync.Mutex
	status string
}

// NewKitchen creates a kitchen agent. notify is called after every finished
// cook and may be nil.
func NewKitchen(name string, l *ledger.Ledger, minCook, maxCook time.Duration, notify func(), log *slog.Logger) *Kitchen {
	if maxCook < minCook {
		maxCook = minCook
	}
	return &Kitchen{
		name:    name,
		ledger:  l,
		minCook: minCook,
		maxCook: maxCook,
		notify:  notify,
		log:     log.With("component", "kitchen", "agent", name),
		status:  StatusIdle,
	}
}

// Name returns the agent's identity.
func (k *Kitchen) Name() string {
	return k.name
}

// Status returns the agent's current human-readable status.
func (k *Kitchen) Status() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.status
}

// Run drains the cook queue until the ledger is closed or the context is
// cancelled. Cancellation mid-cook aborts without crediting the portion;
// ingredients consumed at dequeue time are not rolled back, matching the
// at-most-once semantics of simulated work.
func (k *Kitchen) Run(ctx context.Context) {
	defer k.setStatus(StatusIdle)

	for {
		dish, ok := k.ledger.NextCook(ctx)
		if !ok {
			k.log.Info("kitchen agent stopping")
			return
		}

		k.setStatus("Making Dish: " + dish.Name())
		k.log.Info("cooking", "dish", dish.Name())

		if !sleepCtx(ctx, k.cookTime()) {
			k.log.Info("cook aborted", "dish", dish.Name())
			return
		}

		if err := k.ledger.AddDishStock(dish.Name()); err != nil {
			// The dish was removed from the catalog mid-cook.
			k.log.Warn("could not credit finished dish", "dish", dish.Name(), "error", err)
		}
		k.setStatus(StatusIdle)

		if k.notify != nil {
			k.notify()
		}
	}
}

func (k *Kitchen) cookTime() time.Duration {
	if k.maxCook == k.minCook {
		return k.minCook
	}
	return k.minCook + rand.N(k.maxCook-k.minCook)
}

func (k *Kitchen) setStatus(status string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.status = status
}

// sleepCtx sleeps for d and reports false when ctx is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
