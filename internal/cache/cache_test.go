package cache

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)

	payload := []byte(`{"some":"payload"}`)
	if err := store.Put("geocode:berlin", payload); err != nil {
		t.Fatal(err)
	}

	got, ok := store.Get("geocode:berlin", time.Hour)
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload mismatch: %s", got)
	}
}

func TestStore_Miss(t *testing.T) {
	store := openTestStore(t)
	if _, ok := store.Get("never-stored", time.Hour); ok {
		t.Error("expected a miss for an unknown key")
	}
}

func TestStore_Expiry(t *testing.T) {
	store := openTestStore(t)
	if err := store.Put("k", []byte("v")); err != nil {
		t.Fatal(err)
	}

	// Timestamps have second granularity, so wait one tick past the TTL.
	time.Sleep(1100 * time.Millisecond)
	if _, ok := store.Get("k", time.Second); ok {
		t.Error("entry older than maxAge should be a miss")
	}
}

func TestStore_Upsert(t *testing.T) {
	store := openTestStore(t)
	if err := store.Put("k", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("k", []byte("new")); err != nil {
		t.Fatal(err)
	}

	got, ok := store.Get("k", time.Hour)
	if !ok || string(got) != "new" {
		t.Errorf("expected the replacement payload, got %q (hit=%v)", got, ok)
	}
}
