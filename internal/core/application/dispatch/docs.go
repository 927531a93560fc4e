// Package dispatch serializes protocol commands onto a single executor
// goroutine and maps domain results to wire DTOs.
package dispatch
