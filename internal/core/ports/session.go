package ports

import (
	"context"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// SessionReader is the read side of the session store, consumed by the
// route guard and by view code.
type SessionReader interface {
	// Ready reports whether Initialize has completed. Guard decisions must
	// not be made before Ready returns true.
	Ready() bool
	// Snapshot returns the current in-memory session projection.
	Snapshot() domain.Snapshot
}

// SessionService is the full session store contract.
type SessionService interface {
	SessionReader

	// Initialize loads the persisted credential, if any. It always
	// terminates in a definite state and never returns a storage parse
	// failure: malformed state reads as "no session".
	Initialize(ctx context.Context) error
	// Login performs the signin exchange and persists the credential.
	Login(ctx context.Context, email, password string) (*domain.Credential, error)
	// Logout clears durable and in-memory state. Idempotent.
	Logout(ctx context.Context) error
	// Register forwards a signup payload without touching session state.
	Register(ctx context.Context, input SignUpInput) (*domain.User, error)
}

// SessionObserver receives the forced-logout broadcast emitted by the
// request pipeline when it detects credential expiry. The broadcast
// carries no payload beyond "session invalidated".
type SessionObserver interface {
	SessionExpired()
}

// Navigator performs a soft navigation to a named route, preserving
// in-memory state that does not depend on identity.
type Navigator interface {
	NavigateTo(route string)
}
