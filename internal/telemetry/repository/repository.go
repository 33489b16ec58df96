// Package repository defines persistence for telemetry readings.
package repository

import (
	"context"

	"iot-capstone/backend/internal/telemetry/domain"
)

// Store defines persistence for readings. The reading table is
// append-only; rows are never updated or deleted.
type Store interface {
	// SaveReading persists the reading. It sets r.ID and r.CreatedAt from
	// the stored row on success.
	SaveReading(ctx context.Context, r *domain.Reading) error
	// ListReadings returns all stored readings in arrival order.
	ListReadings(ctx context.Context) ([]*domain.Reading, error)
}
