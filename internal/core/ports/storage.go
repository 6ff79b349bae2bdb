package ports

import "context"

// Storage keys for the two paired session entries. They are written and
// cleared together; one without the other reads as "no session".
const (
	StorageKeyCredential = "user"
	StorageKeyToken      = "token"
)

// StorageEvent signals that a key changed (written or removed) in the
// shared backing store, possibly by another process.
type StorageEvent struct {
	Key string
}

// CredentialStorage is the durable client-side store for session state.
// Implementations must deliver Watch events for changes made through any
// handle on the same underlying store, so that two "tabs" sharing it
// converge without a reload.
type CredentialStorage interface {
	// Get returns the raw value for key, or domain.ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set writes the raw value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	// Watch returns a channel of change events. The channel is closed when
	// ctx is cancelled. Events may coalesce but must not be dropped for
	// the last write.
	Watch(ctx context.Context) (<-chan StorageEvent, error)
}
