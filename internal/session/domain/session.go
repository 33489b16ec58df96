package domain

import "time"

// Session represents one authenticated browser session as stored for the
// auth layer. Handle is the opaque primary key, supplied by the caller at
// creation and never mutated afterwards.
type Session struct {
	Handle             string
	ExpiresAt          time.Time
	AntiCSRFToken      string
	HashedSessionToken string
	UserID             string
	PrivateData        string // serialized JSON object
	PublicData         string // serialized JSON object
	Data               string // opaque blob replaced wholesale by UpdateSession
}
