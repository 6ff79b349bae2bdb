package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
	"github.com/ia-technology/catalog-console/internal/infrastructure/storage/memory"
)

type countingObserver struct {
	n atomic.Int32
}

func (c *countingObserver) SessionExpired() { c.n.Add(1) }

func storageWithToken(t *testing.T, token string) *memory.Storage {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	if err := store.Set(ctx, ports.StorageKeyCredential, `{"token":"`+token+`","email":"u@x.fr","role":"UTILISATEUR"}`); err != nil {
		t.Fatalf("seed credential: %v", err)
	}
	if err := store.Set(ctx, ports.StorageKeyToken, token); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	return store
}

func newTestClient(t *testing.T, baseURL string, store ports.CredentialStorage, obs ports.SessionObserver) *Client {
	t.Helper()
	c, err := New(baseURL, 0, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.SetObserver(obs)
	return c
}

func TestPipeline_AttachesBearerToken(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/api", storageWithToken(t, "tok-1"), nil)
	if err := client.do(context.Background(), http.MethodGet, "/things", nil, nil, nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != "Bearer tok-1" {
		t.Fatalf("unexpected authorization headers: %v", seen)
	}
}

func TestPipeline_NoTokenSendsUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected authorization header: %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/api", memory.New(), nil)
	if err := client.do(context.Background(), http.MethodGet, "/public/publications", nil, nil, nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}
}

func TestPipeline_ExpiryBroadcastsExactlyOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := storageWithToken(t, "tok-2")
	obs := &countingObserver{}
	client := newTestClient(t, srv.URL+"/api", store, obs)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		err := client.do(ctx, http.MethodGet, "/publications", nil, nil, nil)
		if !errors.Is(err, domain.ErrSessionExpired) {
			t.Fatalf("request %d: expected session-expired error, got %v", i, err)
		}
	}

	if got := obs.n.Load(); got != 1 {
		t.Fatalf("expected exactly one broadcast, got %d", got)
	}
	for _, key := range []string{ports.StorageKeyCredential, ports.StorageKeyToken} {
		if _, err := store.Get(ctx, key); !errors.Is(err, domain.ErrKeyNotFound) {
			t.Fatalf("expected %s cleared, got err=%v", key, err)
		}
	}
}

func TestPipeline_SigninIsExemptFromExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	obs := &countingObserver{}
	client := newTestClient(t, srv.URL+"/api", memory.New(), obs)

	_, err := client.SignIn(context.Background(), "a@b.fr", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid-credentials error, got %v", err)
	}
	if obs.n.Load() != 0 {
		t.Fatalf("signin rejection must not broadcast forced logout")
	}
}

func TestPipeline_ForbiddenPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	store := storageWithToken(t, "tok-3")
	obs := &countingObserver{}
	client := newTestClient(t, srv.URL+"/api", store, obs)

	err := client.do(context.Background(), http.MethodGet, "/users", nil, nil, nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("403 must not look like expiry")
	}
	if obs.n.Load() != 0 {
		t.Fatalf("403 must not broadcast forced logout")
	}
	if _, err := store.Get(context.Background(), ports.StorageKeyToken); err != nil {
		t.Fatalf("403 must not clear storage: %v", err)
	}
}

func TestPipeline_NetworkErrorPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately: every request now fails at the transport

	obs := &countingObserver{}
	client := newTestClient(t, srv.URL+"/api", memory.New(), obs)

	err := client.do(context.Background(), http.MethodGet, "/things", nil, nil, nil)
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure must not be an APIError: %v", err)
	}
	if obs.n.Load() != 0 {
		t.Fatalf("transport failure must not broadcast forced logout")
	}
}
