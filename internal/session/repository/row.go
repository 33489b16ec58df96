package repository

import (
	"database/sql"
	"time"

	"iot-capstone/backend/internal/session/domain"
)

// emptyObject is the serialization substituted for absent private/public data on read.
const emptyObject = "{}"

// sessionRow is the stored shape of a session before the read contract is
// applied. Optional columns are nullable; both the Postgres and the
// in-memory store map through it so the two stay semantically identical.
type sessionRow struct {
	handle             string
	expiresAt          sql.NullTime
	antiCSRFToken      sql.NullString
	hashedSessionToken sql.NullString
	userID             sql.NullString
	privateData        sql.NullString
	publicData         sql.NullString
	data               sql.NullString
}

// getSession applies the read-time contract for GetSession: the handle is
// forced to the lookup argument, a missing expiry defaults to now
// (defaulting happens on read, not on write), and missing or empty
// private/public data default to the empty JSON object.
func (r *sessionRow) getSession(handle string, now time.Time) *domain.Session {
	s := r.session(handle)
	if !r.expiresAt.Valid {
		s.ExpiresAt = now
	}
	if s.PrivateData == "" {
		s.PrivateData = emptyObject
	}
	if s.PublicData == "" {
		s.PublicData = emptyObject
	}
	return s
}

// session maps the row to a domain session with Handle forced to the given
// value and no further defaulting. Used for create/update/delete results
// and, with the stored handle, for list results.
func (r *sessionRow) session(handle string) *domain.Session {
	s := &domain.Session{Handle: handle}
	if r.expiresAt.Valid {
		s.ExpiresAt = r.expiresAt.Time
	}
	if r.antiCSRFToken.Valid {
		s.AntiCSRFToken = r.antiCSRFToken.String
	}
	if r.hashedSessionToken.Valid {
		s.HashedSessionToken = r.hashedSessionToken.String
	}
	if r.userID.Valid {
		s.UserID = r.userID.String
	}
	if r.privateData.Valid {
		s.PrivateData = r.privateData.String
	}
	if r.publicData.Valid {
		s.PublicData = r.publicData.String
	}
	if r.data.Valid {
		s.Data = r.data.String
	}
	return s
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
