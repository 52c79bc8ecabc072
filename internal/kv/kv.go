// Package kv defines the key-value persistence contract the booking core
// runs on: string keys holding JSON-encoded collections. Drivers exist for
// MySQL, Redis and process memory; callers never see which one is active.
package kv

// Store is the persistence contract. Get reports (value, found); a missing
// key is not an error. Set overwrites. Clear wipes every key the store owns.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Clear() error
	Close() error
}
