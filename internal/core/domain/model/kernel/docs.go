// Package kernel provides the core domain primitives used throughout the
// fulfilment model.
//
// The package includes:
//   - UUID: a value object for order identities
//   - Quantity: integer counts of stock, recipe and basket units
//   - Money: fixed-point currency in cents for prices and order costs
//   - Distance: floating transit cost for suppliers and postcodes
//
// Each numeric role gets its own type on purpose: keeping quantities, prices
// and distances distinct makes unit mistakes a compile error instead of a
// runtime surprise.
package kernel
