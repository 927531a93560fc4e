// Package flatfile persists server snapshots as a line-oriented description
// file, the bulk load/save boundary used at startup and shutdown.
package flatfile
