package repository

import (
	"context"
	"database/sql"

	"iot-capstone/backend/internal/platform/storeerr"
	"iot-capstone/backend/internal/telemetry/domain"
)

// PostgresStore implements Store over the temperature_readings table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a reading store that uses the given db for persistence.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SaveReading inserts the reading and captures the stored representation.
func (s *PostgresStore) SaveReading(ctx context.Context, r *domain.Reading) error {
	row := s.db.QueryRowContext(ctx,
		"INSERT INTO temperature_readings (reading) VALUES ($1) RETURNING id, created_at",
		r.Value)
	if err := row.Scan(&r.ID, &r.CreatedAt); err != nil {
		return storeerr.Unavailable(err)
	}
	return nil
}

// ListReadings returns all stored readings ordered by arrival.
func (s *PostgresStore) ListReadings(ctx context.Context) ([]*domain.Reading, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, reading, created_at FROM temperature_readings ORDER BY id")
	if err != nil {
		return nil, storeerr.Unavailable(err)
	}
	defer rows.Close()

	out := []*domain.Reading{}
	for rows.Next() {
		var r domain.Reading
		if err := rows.Scan(&r.ID, &r.Value, &r.CreatedAt); err != nil {
			return nil, storeerr.Unavailable(err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeerr.Unavailable(err)
	}
	return out, nil
}
