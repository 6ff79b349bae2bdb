package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
	"github.com/ia-technology/catalog-console/internal/infrastructure/storage/memory"
)

type stubAuthAPI struct {
	cred    *domain.Credential
	signInE error
	user    *domain.User
	signUpE error
	signIns int
}

func (s *stubAuthAPI) SignIn(_ context.Context, email, password string) (*domain.Credential, error) {
	s.signIns++
	if s.signInE != nil {
		return nil, s.signInE
	}
	return s.cred, nil
}

func (s *stubAuthAPI) SignUp(_ context.Context, input ports.SignUpInput) (*domain.User, error) {
	if s.signUpE != nil {
		return nil, s.signUpE
	}
	return s.user, nil
}

type recordingNavigator struct {
	targets []string
}

func (n *recordingNavigator) NavigateTo(route string) {
	n.targets = append(n.targets, route)
}

func testCredential() *domain.Credential {
	return &domain.Credential{
		Token:  "tok-abc",
		ID:     7,
		Email:  "marie@ia-technology.test",
		Nom:    "Curie",
		Prenom: "Marie",
		Role:   domain.RoleModerateur,
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestInitialize_EmptyStorage(t *testing.T) {
	svc := NewSessionService(memory.New(), &stubAuthAPI{}, nil, zerolog.Nop())

	if svc.Ready() {
		t.Fatalf("store must not be ready before Initialize")
	}
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if !svc.Ready() {
		t.Fatalf("expected ready after Initialize")
	}
	if svc.Snapshot().Authenticated() {
		t.Fatalf("expected no session")
	}
}

func TestInitialize_MalformedCredential(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	for _, raw := range []string{"{not json", `"a string"`, `{"token":123}`} {
		_ = store.Set(ctx, ports.StorageKeyCredential, raw)
		_ = store.Set(ctx, ports.StorageKeyToken, "whatever")

		svc := NewSessionService(store, &stubAuthAPI{}, nil, zerolog.Nop())
		if err := svc.Initialize(ctx); err != nil {
			t.Fatalf("malformed value %q: Initialize returned error: %v", raw, err)
		}
		if !svc.Ready() {
			t.Fatalf("malformed value %q: expected ready", raw)
		}
		if svc.Snapshot().Authenticated() {
			t.Fatalf("malformed value %q: expected no session", raw)
		}
	}
}

func TestInitialize_LingeringHalfIsNoSession(t *testing.T) {
	ctx := context.Background()
	cred := testCredential()
	blob, _ := json.Marshal(cred)

	// Credential blob without the token entry.
	store := memory.New()
	_ = store.Set(ctx, ports.StorageKeyCredential, string(blob))
	svc := NewSessionService(store, &stubAuthAPI{}, nil, zerolog.Nop())
	_ = svc.Initialize(ctx)
	if svc.Snapshot().Authenticated() {
		t.Fatalf("credential without token entry should read as no session")
	}

	// Token entry disagreeing with the blob.
	store = memory.New()
	_ = store.Set(ctx, ports.StorageKeyCredential, string(blob))
	_ = store.Set(ctx, ports.StorageKeyToken, "a-different-token")
	svc = NewSessionService(store, &stubAuthAPI{}, nil, zerolog.Nop())
	_ = svc.Initialize(ctx)
	if svc.Snapshot().Authenticated() {
		t.Fatalf("mismatched token entry should read as no session")
	}
}

func TestLogin_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	cred := testCredential()
	svc := NewSessionService(store, &stubAuthAPI{cred: cred}, nil, zerolog.Nop())
	_ = svc.Initialize(ctx)

	got, err := svc.Login(ctx, cred.Email, "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if got.Token != cred.Token {
		t.Fatalf("unexpected token: %q", got.Token)
	}
	if !svc.Snapshot().Authenticated() {
		t.Fatalf("expected authenticated snapshot")
	}

	tok, err := store.Get(ctx, ports.StorageKeyToken)
	if err != nil || tok != cred.Token {
		t.Fatalf("bare token entry missing or wrong: %q %v", tok, err)
	}

	// Round-trip: a fresh store over the same storage restores every field.
	restored := NewSessionService(store, &stubAuthAPI{}, nil, zerolog.Nop())
	_ = restored.Initialize(ctx)
	snap := restored.Snapshot()
	if !snap.Authenticated() {
		t.Fatalf("expected restored session")
	}
	if *snap.Credential != *cred {
		t.Fatalf("restored credential mismatch: %+v != %+v", snap.Credential, cred)
	}
}

func TestLogin_ErrorPropagatesUntouched(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("backend said no")
	svc := NewSessionService(memory.New(), &stubAuthAPI{signInE: wantErr}, nil, zerolog.Nop())
	_ = svc.Initialize(ctx)

	if _, err := svc.Login(ctx, "a@b.fr", "pw"); !errors.Is(err, wantErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if svc.Snapshot().Authenticated() {
		t.Fatalf("failed login must not create a session")
	}
}

func TestLogin_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	api := &stubAuthAPI{cred: testCredential()}
	svc := NewSessionService(memory.New(), api, nil, zerolog.Nop())
	_ = svc.Initialize(ctx)

	if _, err := svc.Login(ctx, "not-an-email", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "a@b.fr", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
	if api.signIns != 0 {
		t.Fatalf("invalid input must not reach the backend")
	}
}

func TestLogoutThenStorageEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewSessionService(store, &stubAuthAPI{cred: testCredential()}, nil, zerolog.Nop())
	_ = svc.Initialize(ctx)

	if _, err := svc.Login(ctx, "marie@ia-technology.test", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	for _, key := range []string{ports.StorageKeyCredential, ports.StorageKeyToken} {
		if _, err := store.Get(ctx, key); !errors.Is(err, domain.ErrKeyNotFound) {
			t.Fatalf("expected %s cleared, got err=%v", key, err)
		}
	}
	if svc.Snapshot().Authenticated() {
		t.Fatalf("expected no session after logout")
	}

	// Idempotent: logging out again is a no-op.
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestRegister_DoesNotLogIn(t *testing.T) {
	ctx := context.Background()
	api := &stubAuthAPI{user: &domain.User{ID: 9, Email: "new@x.fr", Nom: "N", Prenom: "P", Role: domain.RoleUtilisateur}}
	svc := NewSessionService(memory.New(), api, nil, zerolog.Nop())
	_ = svc.Initialize(ctx)

	user, err := svc.Register(ctx, ports.SignUpInput{Nom: "N", Prenom: "P", Email: "new@x.fr", Password: "longenough"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID != 9 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if svc.Snapshot().Authenticated() {
		t.Fatalf("registration must not create a session")
	}
}

func TestCrossTabSync(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shared := memory.New()
	cred := testCredential()

	tabA := NewSessionService(shared, &stubAuthAPI{cred: cred}, nil, zerolog.Nop())
	tabB := NewSessionService(shared, &stubAuthAPI{}, nil, zerolog.Nop())
	_ = tabA.Initialize(ctx)
	_ = tabB.Initialize(ctx)
	if err := tabB.StartWatch(ctx); err != nil {
		t.Fatalf("StartWatch: %v", err)
	}

	// Login in tab A propagates to tab B without a reload.
	if _, err := tabA.Login(ctx, cred.Email, "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	waitFor(t, "tab B to see the session", func() bool {
		return tabB.Snapshot().Authenticated()
	})
	if got := tabB.Snapshot().Credential.Email; got != cred.Email {
		t.Fatalf("tab B sees wrong credential: %q", got)
	}

	// Logout in tab A clears tab B too.
	if err := tabA.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	waitFor(t, "tab B to drop the session", func() bool {
		return !tabB.Snapshot().Authenticated()
	})
}

func TestSessionExpired_ClearsAndNavigates(t *testing.T) {
	ctx := context.Background()
	nav := &recordingNavigator{}
	svc := NewSessionService(memory.New(), &stubAuthAPI{cred: testCredential()}, nav, zerolog.Nop())
	_ = svc.Initialize(ctx)
	if _, err := svc.Login(ctx, "marie@ia-technology.test", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	var notified atomic.Int32
	svc.OnForcedLogout(func() { notified.Add(1) })

	svc.SessionExpired()

	if svc.Snapshot().Authenticated() {
		t.Fatalf("expected session cleared")
	}
	if notified.Load() != 1 {
		t.Fatalf("expected one subscriber notification, got %d", notified.Load())
	}
	if len(nav.targets) != 1 || nav.targets[0] != PathLogin {
		t.Fatalf("expected soft navigation to %s, got %v", PathLogin, nav.targets)
	}

	// Repeated delivery stays safe.
	svc.SessionExpired()
	if svc.Snapshot().Authenticated() {
		t.Fatalf("still expected no session")
	}
}
