// Package repository defines persistence for auth sessions.
//
// The auth layer depends on the exact read contract of Store: on
// GetSession a missing expiry defaults to the time of the call, missing
// private/public data default to the empty JSON object, and the returned
// handle always equals the lookup argument regardless of what is stored.
// Any conforming implementation can be substituted.
package repository

import (
	"context"

	"iot-capstone/backend/internal/session/domain"
)

// Store defines persistence for sessions. Implementations perform exactly
// one durable-store round trip per operation; failures propagate
// immediately and are classified with the storeerr sentinels.
type Store interface {
	// GetSession returns the session for handle with read-time defaults
	// applied. Returns storeerr.ErrNotFound when no row matches.
	GetSession(ctx context.Context, handle string) (*domain.Session, error)
	// CreateSession inserts the session as provided by the caller (the
	// caller generates the handle and tokens upstream) and returns the
	// inserted record with Handle forced to the input value. Returns
	// storeerr.ErrConflict when the handle already exists.
	CreateSession(ctx context.Context, s *domain.Session) (*domain.Session, error)
	// UpdateSession replaces the opaque data blob for handle and returns
	// the updated record with Handle forced to the input value. Returns
	// storeerr.ErrNotFound when no row matched.
	UpdateSession(ctx context.Context, handle, data string) (*domain.Session, error)
	// DeleteSession removes the session and returns its last-known value
	// with Handle forced to the input. Returns storeerr.ErrNotFound when
	// absent.
	DeleteSession(ctx context.Context, handle string) (*domain.Session, error)
	// ListSessionsByUser returns all sessions owned by userID in insertion
	// order, each keeping its stored handle. The slice is fully
	// materialized; an owner with no sessions yields an empty slice.
	ListSessionsByUser(ctx context.Context, userID string) ([]*domain.Session, error)
}
