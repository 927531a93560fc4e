package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/pkg/errs"
)

// AgentStatus is one row of a pool status report. Speed is zero for kitchen
// agents.
type AgentStatus struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Status string  `json:"status"`
	Speed  float64 `json:"speed,omitempty"`
}

type kitchenSlot struct {
	agent  *Kitchen
	cancel context.CancelFunc
}

type deliverySlot struct {
	agent  *Delivery
	cancel context.CancelFunc
}

// Pool owns the kitchen and delivery agents and their shared lifecycle.
// Agents may be added or removed before or after Start; removal cancels the
// agent's context, which releases it from a queue wait or aborts its current
// trip. Stop closes the ledger to release blocked agents, cancels in-flight
// trips and waits for every goroutine to exit.
type Pool struct {
	ledger  *ledger.Ledger
	minCook time.Duration
	maxCook time.Duration
	scale   time.Duration
	notify  func()
	log     *slog.Logger

	mu         sync.Mutex
	kitchens   []*kitchenSlot
	deliveries []*deliverySlot
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewPool creates an empty agent pool. notify is passed to every agent and
// may be nil.
func NewPool(l *ledger.Ledger, minCook, maxCook, scale time.Duration, notify func(), log *slog.Logger) *Pool {
	return &Pool{
		ledger:  l,
		minCook: minCook,
		maxCook: maxCook,
		scale:   scale,
		notify:  notify,
		log:     log,
	}
}

// AddKitchen creates a kitchen agent. If the pool is already started the
// agent begins draining work immediately.
func (p *Pool) AddKitchen(name string) *Kitchen {
	k := NewKitchen(name, p.ledger, p.minCook, p.maxCook, p.notify, p.log)

	p.mu.Lock()
	defer p.mu.Unlock()

	slot := &kitchenSlot{agent: k}
	p.kitchens = append(p.kitchens, slot)
	if p.ctx != nil {
		slot.cancel = p.spawnLocked(k.Run)
	}
	return k
}

// AddDelivery creates a delivery agent with the given speed. If the pool is
// already started the agent begins draining work immediately.
func (p *Pool) AddDelivery(name string, speed float64) *Delivery {
	d := NewDelivery(name, p.ledger, speed, p.scale, p.notify, p.log)

	p.mu.Lock()
	defer p.mu.Unlock()

	slot := &deliverySlot{agent: d}
	p.deliveries = append(p.deliveries, slot)
	if p.ctx != nil {
		slot.cancel = p.spawnLocked(d.Run)
	}
	return d
}

// RemoveKitchen dismisses a kitchen agent by name. A running agent is
// interrupted: it leaves its queue wait, or aborts the cook in hand without
// crediting the portion.
func (p *Pool) RemoveKitchen(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, slot := range p.kitchens {
		if slot.agent.Name() == name {
			if slot.cancel != nil {
				slot.cancel()
			}
			p.kitchens = append(p.kitchens[:i], p.kitchens[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("kitchen agent", name)
}

// RemoveDelivery dismisses a delivery agent by name. A running agent is
// interrupted: it leaves its queue wait, or aborts the trip in hand.
func (p *Pool) RemoveDelivery(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, slot := range p.deliveries {
		if slot.agent.Name() == name {
			if slot.cancel != nil {
				slot.cancel()
			}
			p.deliveries = append(p.deliveries[:i], p.deliveries[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("delivery agent", name)
}

// Start launches every registered agent. It is a no-op when already started.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx != nil {
		return
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	for _, slot := range p.kitchens {
		slot.cancel = p.spawnLocked(slot.agent.Run)
	}
	for _, slot := range p.deliveries {
		slot.cancel = p.spawnLocked(slot.agent.Run)
	}
	p.log.Info("agent pool started", "kitchens", len(p.kitchens), "deliveries", len(p.deliveries))
}

// Stop shuts the pool down: the ledger is closed so queue waits return,
// in-flight trips are cancelled and the call blocks until every agent
// goroutine has exited.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.ctx == nil {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	p.ctx, p.cancel = nil, nil
	p.mu.Unlock()

	p.ledger.Close()
	cancel()
	p.wg.Wait()
	p.log.Info("agent pool stopped")
}

// Statuses reports every agent's current status, kitchens first.
func (p *Pool) Statuses() []AgentStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]AgentStatus, 0, len(p.kitchens)+len(p.deliveries))
	for _, slot := range p.kitchens {
		out = append(out, AgentStatus{Name: slot.agent.Name(), Kind: "kitchen", Status: slot.agent.Status()})
	}
	for _, slot := range p.deliveries {
		out = append(out, AgentStatus{Name: slot.agent.Name(), Kind: "delivery", Status: slot.agent.Status(), Speed: slot.agent.Speed()})
	}
	return out
}

// Roster returns the kitchen agent names and the delivery agent speeds, the
// shape the persistence boundary stores.
func (p *Pool) Roster() ([]string, []float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	staff := make([]string, 0, len(p.kitchens))
	for _, slot := range p.kitchens {
		staff = append(staff, slot.agent.Name())
	}
	speeds := make([]float64, 0, len(p.deliveries))
	for _, slot := range p.deliveries {
		speeds = append(speeds, slot.agent.Speed())
	}
	return staff, speeds
}

// spawnLocked launches an agent loop on its own cancellable context and
// returns the cancel. Callers hold p.mu with p.ctx set.
func (p *Pool) spawnLocked(run func(context.Context)) context.CancelFunc {
	ctx, cancel := context.WithCancel(p.ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		run(ctx)
	}()
	return cancel
}
