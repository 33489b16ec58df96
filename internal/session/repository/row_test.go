package repository

import (
	"database/sql"
	"testing"
	"time"
)

// The handle returned by single-handle operations always equals the lookup
// argument, even when the stored handle differs (stale or corrupted row).
func TestSessionRow_HandleOverride(t *testing.T) {
	r := &sessionRow{
		handle: "stored-handle",
		userID: sql.NullString{String: "u1", Valid: true},
	}

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	if got := r.getSession("input-handle", now); got.Handle != "input-handle" {
		t.Errorf("getSession Handle = %q, want %q", got.Handle, "input-handle")
	}
	if got := r.session("input-handle"); got.Handle != "input-handle" {
		t.Errorf("session Handle = %q, want %q", got.Handle, "input-handle")
	}
}

func TestSessionRow_GetDefaults(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		row         sessionRow
		wantExpires time.Time
		wantPrivate string
		wantPublic  string
	}{
		{
			name:        "all absent",
			row:         sessionRow{handle: "h"},
			wantExpires: now,
			wantPrivate: "{}",
			wantPublic:  "{}",
		},
		{
			name: "empty strings treated as absent",
			row: sessionRow{
				handle:      "h",
				privateData: sql.NullString{String: "", Valid: true},
				publicData:  sql.NullString{String: "", Valid: true},
			},
			wantExpires: now,
			wantPrivate: "{}",
			wantPublic:  "{}",
		},
		{
			name: "present values pass through",
			row: sessionRow{
				handle:      "h",
				expiresAt:   sql.NullTime{Time: now.Add(time.Hour), Valid: true},
				privateData: sql.NullString{String: `{"a":1}`, Valid: true},
				publicData:  sql.NullString{String: `{"b":2}`, Valid: true},
			},
			wantExpires: now.Add(time.Hour),
			wantPrivate: `{"a":1}`,
			wantPublic:  `{"b":2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.row.getSession("h", now)
			if !got.ExpiresAt.Equal(tt.wantExpires) {
				t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, tt.wantExpires)
			}
			if got.PrivateData != tt.wantPrivate {
				t.Errorf("PrivateData = %q, want %q", got.PrivateData, tt.wantPrivate)
			}
			if got.PublicData != tt.wantPublic {
				t.Errorf("PublicData = %q, want %q", got.PublicData, tt.wantPublic)
			}
		})
	}
}

// session (no defaults) leaves absent values zero; used by create, update,
// delete, and list results.
func TestSessionRow_NoDefaultsOutsideGet(t *testing.T) {
	r := &sessionRow{handle: "h"}
	got := r.session("h")
	if !got.ExpiresAt.IsZero() {
		t.Errorf("ExpiresAt = %v, want zero", got.ExpiresAt)
	}
	if got.PrivateData != "" || got.PublicData != "" {
		t.Errorf("data = (%q, %q), want empty passthrough", got.PrivateData, got.PublicData)
	}
}
