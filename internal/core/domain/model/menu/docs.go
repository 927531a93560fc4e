// Package menu holds the catalog side of the domain: suppliers, ingredients
// and dishes with their recipes. Catalog entities are identified by name and
// carry no stock state; stock levels and restock bookkeeping live in the
// ledger service.
package menu
