package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"iot-capstone/backend/internal/platform/storeerr"
	"iot-capstone/backend/internal/session/domain"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	expires := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	created, err := store.CreateSession(ctx, &domain.Session{
		Handle:             "h1",
		ExpiresAt:          expires,
		AntiCSRFToken:      "csrf",
		HashedSessionToken: "hashed",
		UserID:             "u1",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if created.Handle != "h1" {
		t.Errorf("created.Handle = %q, want %q", created.Handle, "h1")
	}

	got, err := store.GetSession(ctx, "h1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Handle != "h1" {
		t.Errorf("got.Handle = %q, want %q", got.Handle, "h1")
	}
	if !got.ExpiresAt.Equal(expires) {
		t.Errorf("got.ExpiresAt = %v, want %v", got.ExpiresAt, expires)
	}
	if got.AntiCSRFToken != "csrf" || got.HashedSessionToken != "hashed" || got.UserID != "u1" {
		t.Errorf("got = %+v, want fields preserved from create", got)
	}
}

func TestMemoryStore_CreateConflict(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.CreateSession(ctx, &domain.Session{Handle: "dup"}); err != nil {
		t.Fatalf("first CreateSession: %v", err)
	}
	_, err := store.CreateSession(ctx, &domain.Session{Handle: "dup"})
	if !errors.Is(err, storeerr.ErrConflict) {
		t.Errorf("duplicate CreateSession error = %v, want ErrConflict", err)
	}
}

func TestMemoryStore_GetDefaultsEmptyData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.CreateSession(ctx, &domain.Session{Handle: "h1"}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	got, err := store.GetSession(ctx, "h1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.PrivateData != "{}" {
		t.Errorf("PrivateData = %q, want %q", got.PrivateData, "{}")
	}
	if got.PublicData != "{}" {
		t.Errorf("PublicData = %q, want %q", got.PublicData, "{}")
	}
}

// A session stored without an expiry gets "now" on every read, so two
// reads at different times see different expiries. Kept on purpose; see
// DESIGN.md.
func TestMemoryStore_GetDefaultsExpiryPerRead(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if _, err := store.CreateSession(ctx, &domain.Session{Handle: "h1"}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	first := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	times := []time.Time{first, second}
	i := 0
	store.now = func() time.Time { t := times[i]; i++; return t }

	got1, err := store.GetSession(ctx, "h1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	got2, err := store.GetSession(ctx, "h1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if !got1.ExpiresAt.Equal(first) || !got2.ExpiresAt.Equal(second) {
		t.Errorf("ExpiresAt = %v then %v, want read-time defaults %v then %v",
			got1.ExpiresAt, got2.ExpiresAt, first, second)
	}
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.GetSession(ctx, "missing")
	if !errors.Is(err, storeerr.ErrNotFound) {
		t.Errorf("GetSession error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_UpdateReflectedByGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if _, err := store.CreateSession(ctx, &domain.Session{Handle: "h1", UserID: "u1"}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	updated, err := store.UpdateSession(ctx, "h1", `{"userId":"u1","role":"user"}`)
	if err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	if updated.Handle != "h1" {
		t.Errorf("updated.Handle = %q, want %q", updated.Handle, "h1")
	}
	if updated.Data != `{"userId":"u1","role":"user"}` {
		t.Errorf("updated.Data = %q, want the new blob", updated.Data)
	}

	got, err := store.GetSession(ctx, "h1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Data != `{"userId":"u1","role":"user"}` {
		t.Errorf("got.Data = %q, want the updated blob", got.Data)
	}
}

func TestMemoryStore_UpdateMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.UpdateSession(ctx, "missing", "{}")
	if !errors.Is(err, storeerr.ErrNotFound) {
		t.Errorf("UpdateSession error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if _, err := store.CreateSession(ctx, &domain.Session{Handle: "h1", UserID: "u1"}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	deleted, err := store.DeleteSession(ctx, "h1")
	if err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if deleted.Handle != "h1" || deleted.UserID != "u1" {
		t.Errorf("deleted = %+v, want last-known value with forced handle", deleted)
	}

	if _, err := store.GetSession(ctx, "h1"); !errors.Is(err, storeerr.ErrNotFound) {
		t.Errorf("GetSession after delete error = %v, want ErrNotFound", err)
	}
	if _, err := store.DeleteSession(ctx, "h1"); !errors.Is(err, storeerr.ErrNotFound) {
		t.Errorf("second DeleteSession error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ListSessionsByUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	seed := []struct{ handle, user string }{
		{"a1", "alice"},
		{"b1", "bob"},
		{"a2", "alice"},
		{"c1", "carol"},
		{"a3", "alice"},
	}
	for _, s := range seed {
		if _, err := store.CreateSession(ctx, &domain.Session{Handle: s.handle, UserID: s.user}); err != nil {
			t.Fatalf("CreateSession(%s): %v", s.handle, err)
		}
	}

	got, err := store.ListSessionsByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListSessionsByUser: %v", err)
	}
	want := []string{"a1", "a2", "a3"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.Handle != want[i] {
			t.Errorf("got[%d].Handle = %q, want %q (insertion order, stored handle preserved)", i, s.Handle, want[i])
		}
		if s.UserID != "alice" {
			t.Errorf("got[%d].UserID = %q, want %q", i, s.UserID, "alice")
		}
	}

	empty, err := store.ListSessionsByUser(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListSessionsByUser(nobody): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListSessionsByUser(nobody) = %v, want empty slice", empty)
	}
}
