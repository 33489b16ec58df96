package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"iot-capstone/backend/internal/platform/storeerr"
	"iot-capstone/backend/internal/session/domain"
)

// pgUniqueViolation is the Postgres error code for a unique constraint violation.
const pgUniqueViolation = "23505"

const sessionColumns = "handle, expires_at, anti_csrf_token, hashed_session_token, user_id, private_data, public_data, data"

// PostgresStore implements Store over the sessions table using
// parameterized queries. Every operation is a single round trip.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresStore returns a session store that uses the given db for persistence.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// GetSession returns the session for handle with read-time defaults applied.
func (s *PostgresStore) GetSession(ctx context.Context, handle string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE handle = $1", handle)
	r, err := scanSessionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storeerr.ErrNotFound
		}
		return nil, storeerr.Unavailable(err)
	}
	return r.getSession(handle, s.now()), nil
}

// CreateSession inserts the session and returns the stored record with
// Handle forced to the input value.
func (s *PostgresStore) CreateSession(ctx context.Context, in *domain.Session) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"INSERT INTO sessions (handle, expires_at, anti_csrf_token, hashed_session_token, user_id, private_data, public_data, data) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING "+sessionColumns,
		in.Handle, nullTime(in.ExpiresAt), nullString(in.AntiCSRFToken),
		nullString(in.HashedSessionToken), nullString(in.UserID),
		nullString(in.PrivateData), nullString(in.PublicData), nullString(in.Data))
	r, err := scanSessionRow(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, storeerr.ErrConflict
		}
		return nil, storeerr.Unavailable(err)
	}
	return r.session(in.Handle), nil
}

// UpdateSession replaces the opaque data blob for handle.
func (s *PostgresStore) UpdateSession(ctx context.Context, handle, data string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"UPDATE sessions SET data = $1 WHERE handle = $2 RETURNING "+sessionColumns,
		data, handle)
	r, err := scanSessionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storeerr.ErrNotFound
		}
		return nil, storeerr.Unavailable(err)
	}
	return r.session(handle), nil
}

// DeleteSession removes the session and returns its last-known value.
func (s *PostgresStore) DeleteSession(ctx context.Context, handle string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"DELETE FROM sessions WHERE handle = $1 RETURNING "+sessionColumns, handle)
	r, err := scanSessionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storeerr.ErrNotFound
		}
		return nil, storeerr.Unavailable(err)
	}
	return r.session(handle), nil
}

// ListSessionsByUser returns all sessions owned by userID in insertion order.
func (s *PostgresStore) ListSessionsByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE user_id = $1 ORDER BY created_at, handle", userID)
	if err != nil {
		return nil, storeerr.Unavailable(err)
	}
	defer rows.Close()

	out := []*domain.Session{}
	for rows.Next() {
		r, err := scanSessionRow(rows)
		if err != nil {
			return nil, storeerr.Unavailable(err)
		}
		out = append(out, r.session(r.handle))
	}
	if err := rows.Err(); err != nil {
		return nil, storeerr.Unavailable(err)
	}
	return out, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSessionRow(sc scanner) (*sessionRow, error) {
	var r sessionRow
	err := sc.Scan(&r.handle, &r.expiresAt, &r.antiCSRFToken,
		&r.hashedSessionToken, &r.userID, &r.privateData, &r.publicData, &r.data)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
