// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Implementations live under
// internal/platform (postgres and memory) and are expected to make each
// single create, update, patch or delete call atomic.
package store
