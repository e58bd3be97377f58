// Package store persists profile entities in SQLite and enforces the
// pipeline's core invariants: dedup key uniqueness, forward-only status
// flags, and the stage ordering guarantee (an image is never recorded before
// its prompt).
//
// All operations are serialized single-writer calls; the only atomicity the
// pipeline relies on is the store's check-then-insert and per-row updates.
package store
