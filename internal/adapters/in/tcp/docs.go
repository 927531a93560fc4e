// Package tcp is the inbound transport adapter: a line-oriented TCP
// multiplexer that decodes protocol requests, tags them with the
// connection's identity and hands them to the command executor.
package tcp
