// Package workers runs the autonomous fulfilment agents: kitchen agents that
// cook queued dishes and delivery agents that fetch ingredients and deliver
// orders. Agents share the inventory ledger, block on its condition variables
// when idle, and simulate their business latency with real sleeps on their
// own goroutines.
package workers
