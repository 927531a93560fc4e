// Package account models the customer side of the domain: served postcodes
// and registered users with their checkout baskets.
package account
