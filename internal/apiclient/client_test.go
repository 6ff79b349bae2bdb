package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/infrastructure/storage/memory"
)

func TestAPIError_SentinelMapping(t *testing.T) {
	cases := []struct {
		status int
		target error
	}{
		{http.StatusUnauthorized, domain.ErrSessionExpired},
		{http.StatusUnauthorized, domain.ErrInvalidCredentials},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusConflict, domain.ErrUserExists},
	}
	for _, c := range cases {
		err := &APIError{Status: c.status, Message: "x"}
		if !errors.Is(err, c.target) {
			t.Fatalf("status %d should match %v", c.status, c.target)
		}
	}

	if errors.Is(&APIError{Status: http.StatusForbidden}, domain.ErrSessionExpired) {
		t.Fatalf("403 must not match session expiry")
	}
	if errors.Is(&APIError{Status: http.StatusBadRequest}, domain.ErrNotFound) {
		t.Fatalf("400 should match no sentinel")
	}
}

func TestClient_DecodesJSONAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public/publications/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("keyword") != "deep" {
			t.Errorf("missing keyword param: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"titre":"Deep Nets"}]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/api", memory.New(), nil)
	pubs, err := client.SearchPublicPublications(context.Background(), PublicationSearch{Keyword: "deep"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(pubs) != 1 || pubs[0].Titre != "Deep Nets" {
		t.Fatalf("unexpected result: %+v", pubs)
	}
}

func TestClient_ErrorEnvelopeMessageKeptVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"user already exists"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/api", memory.New(), nil)
	err := client.do(context.Background(), http.MethodPost, "/auth/signup", nil, map[string]string{}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "user already exists" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClient_NonEnvelopeErrorBodyDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/api", memory.New(), nil)
	err := client.do(context.Background(), http.MethodGet, "/things", nil, nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Message != "" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}
