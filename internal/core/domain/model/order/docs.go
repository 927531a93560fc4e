// Package order models checked-out customer orders and their one-way
// delivery lifecycle.
package order
