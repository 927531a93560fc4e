// Package ledger implements the inventory ledger: the shared, synchronized
// authority over dish and ingredient catalogs, stock records and the three
// work queues (dishes to cook, ingredients to fetch, orders to deliver).
//
// The ledger is the only state touched by more than one goroutine class.
// Kitchen and delivery agents block on its condition variables; the command
// dispatcher mutates stock through its synchronized operations. Stock writes
// that cross strictly below an item's restock threshold enqueue replacement
// work: one cook request per missing dish portion, exactly one fetch request
// per qualifying ingredient write.
package ledger
