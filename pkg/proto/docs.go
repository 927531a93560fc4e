// Package proto defines the textual wire protocol between clients and the
// fulfilment server.
//
// Each connection starts with a handshake assigning the client its stable
// identity ("CONNECTED:<id>"). Requests are a colon-separated header line
// tagged with the command, optionally followed by one JSON payload line for
// commands that carry structured data. Replies are a single JSON line. The
// stream is strictly request/reply: a client keeps at most one request
// outstanding per connection.
package proto
