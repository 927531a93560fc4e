// Package snapshot captures live server state into storage-neutral
// snapshots and replays them, backing startup load, autosave and shutdown
// persist.
package snapshot
