// Package state defines the durable client-state contract. The persisted
// session is what lets a restarted portal client pick up where it left off
// without signing in again.
package state

// Fixed keys under which session fields are persisted. They are part of the
// storage contract; changing them breaks compatibility with existing state.
const (
	KeyAccessToken = "access_token"
	KeyUserID      = "user_id"
	KeyRole        = "role"
	KeyUsername    = "username"
)

// Storage reads and writes the whole key set at once so callers never observe
// a partially written session.
type Storage interface {
	ReadAll() (map[string]string, error)
	WriteAll(values map[string]string) error
	Clear() error
}
