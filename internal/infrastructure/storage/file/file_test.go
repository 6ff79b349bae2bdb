package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

func TestPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := a.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := a.Set(ctx, "user", `{"email":"x@y.fr"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A second process opening the same directory sees the entries.
	b, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	v, err := b.Get(ctx, "token")
	if err != nil || v != "abc" {
		t.Fatalf("get = %q, %v", v, err)
	}
}

func TestDeleteRemovesFileWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete(ctx, "token", "user"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, fileName)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("session file should be gone, stat err = %v", err)
	}
	if _, err := s.Get(ctx, "token"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("get after delete: %v, want ErrKeyNotFound", err)
	}
}

func TestCorruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	if _, err := s.Get(ctx, "token"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("get on corrupt file: %v, want ErrKeyNotFound", err)
	}

	// Writing replaces the corrupt document.
	if err := s.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("set over corrupt file: %v", err)
	}
	v, err := s.Get(ctx, "token")
	if err != nil || v != "abc" {
		t.Fatalf("get = %q, %v", v, err)
	}
}

func TestWatchSeesOtherInstanceWrites(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	b, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	events, err := a.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := b.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Key != "token" {
			t.Fatalf("got key %q, want token", ev.Key)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no event for cross-instance write")
	}

	// Removing the file emits an event for the vanished key.
	if err := b.Delete(ctx, "token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	select {
	case ev := <-events:
		if ev.Key != "token" {
			t.Fatalf("got key %q, want token", ev.Key)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no event for cross-instance delete")
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
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
	case <-time.After(3 * time.Second):
		t.Fatalf("channel not closed after cancel")
	}
}
