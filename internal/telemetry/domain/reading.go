package domain

import "time"

// Reading represents one telemetry sample from a sensor. Ordering is by
// arrival; the surrogate ID is assigned by the store.
type Reading struct {
	ID        int64     `json:"id"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

// AlertLevel classifies a derived alert event. The set is closed; further
// levels are reserved.
type AlertLevel string

// AlertHigh is broadcast when a reading meets or exceeds the configured
// threshold.
const AlertHigh AlertLevel = "HIGH"
