package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
)

func TestGetSetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Get(ctx, "token"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("get on empty store: %v, want ErrKeyNotFound", err)
	}

	if err := s.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := s.Get(ctx, "token")
	if err != nil || v != "abc" {
		t.Fatalf("get = %q, %v", v, err)
	}

	if err := s.Delete(ctx, "token", "user"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "token"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("get after delete: %v, want ErrKeyNotFound", err)
	}

	// Deleting absent keys is a no-op.
	if err := s.Delete(ctx, "token"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestWatchFansOutToAllWatchers(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("watch a: %v", err)
	}
	b, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("watch b: %v", err)
	}

	if err := s.Set(ctx, "user", "{}"); err != nil {
		t.Fatalf("set: %v", err)
	}

	for name, ch := range map[string]<-chan ports.StorageEvent{"a": a, "b": b} {
		select {
		case ev := <-ch:
			if ev.Key != "user" {
				t.Fatalf("watcher %s got key %q, want user", name, ev.Key)
			}
		case <-time.After(time.Second):
			t.Fatalf("watcher %s got no event", name)
		}
	}
}

func TestWatchDeleteOnlyNotifiesRemovedKeys(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}

	events, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := s.Delete(ctx, "token", "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Key != "token" {
			t.Fatalf("got key %q, want token", ev.Key)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event for removed key")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected event for key %q", ev.Key)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	select {
	case _, open := <-events:
		if open {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed after cancel")
	}

	// Writes after cancellation must not panic on the removed watcher.
	if err := s.Set(context.Background(), "token", "abc"); err != nil {
		t.Fatalf("set after cancel: %v", err)
	}
}
