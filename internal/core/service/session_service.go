package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
)

// SessionService is the single source of truth for "who is logged in".
// It owns the durable credential entries, the in-memory snapshot, the
// cross-tab watch loop, and the reaction to the pipeline's forced-logout
// broadcast. Construct one per logical tab; instances sharing the same
// CredentialStorage converge through Watch events.
type SessionService struct {
	storage  ports.CredentialStorage
	api      ports.AuthAPI
	nav      ports.Navigator
	log      zerolog.Logger
	validate *validator.Validate

	mu    sync.RWMutex
	snap  domain.Snapshot
	ready bool
	subs  []func()
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// NewSessionService wires a session store. nav may be nil when the caller
// handles redirection itself (tests, one-shot commands).
func NewSessionService(storage ports.CredentialStorage, api ports.AuthAPI, nav ports.Navigator, log zerolog.Logger) *SessionService {
	return &SessionService{
		storage:  storage,
		api:      api,
		nav:      nav,
		log:      log,
		validate: validator.New(),
	}
}

// Initialize loads the persisted credential and settles the store into a
// definite state. Malformed or half-present storage reads as "no session"
// and is never surfaced as an error. Always sets ready, so the route
// guard can distinguish "still loading" from "confirmed absent".
func (s *SessionService) Initialize(ctx context.Context) error {
	cred := s.readStoredCredential(ctx)

	s.mu.Lock()
	s.snap = domain.Snapshot{Credential: cred}
	s.ready = true
	s.mu.Unlock()

	if cred != nil {
		s.log.Debug().Str("email", cred.Email).Str("role", string(cred.Role)).Msg("session restored")
	} else {
		s.log.Debug().Msg("no persisted session")
	}
	return nil
}

// readStoredCredential returns the stored credential, or nil for absent,
// malformed, or partial state. The bare token entry must agree with the
// blob; a lingering half is treated as no session.
func (s *SessionService) readStoredCredential(ctx context.Context) *domain.Credential {
	raw, err := s.storage.Get(ctx, ports.StorageKeyCredential)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.log.Warn().Err(err).Msg("credential read failed, treating as no session")
		}
		return nil
	}

	var cred domain.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		s.log.Warn().Err(err).Msg("malformed stored credential, treating as no session")
		return nil
	}
	if !cred.Complete() {
		return nil
	}

	token, err := s.storage.Get(ctx, ports.StorageKeyToken)
	if err != nil || token != cred.Token {
		return nil
	}
	return &cred
}

// Login exchanges credentials through the request pipeline, persists the
// returned Credential and updates the snapshot. Errors from the exchange
// are propagated untouched so the caller can render them.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Credential, error) {
	if err := s.validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !cred.Complete() {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.persist(ctx, cred); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snap = domain.Snapshot{Credential: cred}
	s.mu.Unlock()

	s.log.Info().Str("email", cred.Email).Str("role", string(cred.Role)).Msg("logged in")
	return cred, nil
}

func (s *SessionService) persist(ctx context.Context, cred *domain.Credential) error {
	blob, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, ports.StorageKeyCredential, string(blob)); err != nil {
		return err
	}
	return s.storage.Set(ctx, ports.StorageKeyToken, cred.Token)
}

// Logout clears both durable entries and resets the snapshot. Calling it
// with no active session is a no-op.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.storage.Delete(ctx, ports.StorageKeyCredential, ports.StorageKeyToken); err != nil {
		return err
	}

	s.mu.Lock()
	was := s.snap.Authenticated()
	s.snap = domain.Snapshot{}
	s.mu.Unlock()

	if was {
		s.log.Info().Msg("logged out")
	}
	return nil
}

// Register forwards the signup payload and returns the raw result. It
// never mutates session state: a successful registration is not a login.
func (s *SessionService) Register(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	return s.api.SignUp(ctx, input)
}

// Ready reports whether Initialize has completed.
func (s *SessionService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Snapshot returns the current session projection.
func (s *SessionService) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// OnForcedLogout registers fn to run after a forced logout has been
// applied. Subscriptions are not removable; the store lives as long as
// the process.
func (s *SessionService) OnForcedLogout(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// SessionExpired implements ports.SessionObserver. The pipeline has
// already cleared durable storage; here the in-memory state is dropped,
// subscribers are notified and a soft navigation to the login view is
// performed. Safe to call repeatedly.
func (s *SessionService) SessionExpired() {
	s.mu.Lock()
	was := s.snap.Authenticated()
	s.snap = domain.Snapshot{}
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if was {
		s.log.Warn().Msg("session expired, forcing logout")
	}
	for _, fn := range subs {
		fn()
	}
	if s.nav != nil {
		s.nav.NavigateTo(PathLogin)
	}
}

// StartWatch launches the cross-tab synchronisation loop. On any change
// to the session keys made through another handle on the same storage,
// the snapshot is re-derived so two tabs never disagree for longer than
// one event delivery. Returns after the watch channel is established;
// the loop stops when ctx is cancelled.
func (s *SessionService) StartWatch(ctx context.Context) error {
	events, err := s.storage.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for ev := range events {
			if ev.Key != ports.StorageKeyCredential && ev.Key != ports.StorageKeyToken {
				continue
			}
			cred := s.readStoredCredential(ctx)

			s.mu.Lock()
			s.snap = domain.Snapshot{Credential: cred}
			s.mu.Unlock()

			s.log.Debug().Str("key", ev.Key).Bool("authenticated", cred != nil).Msg("session re-derived from storage change")
		}
	}()
	return nil
}
