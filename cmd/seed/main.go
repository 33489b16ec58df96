// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user's sessions already exist.
package main

import (
	"context"
	"log"
	"time"

	"iot-capstone/backend/internal/auth"
	"iot-capstone/backend/internal/config"
	"iot-capstone/backend/internal/db"
	sessiondomain "iot-capstone/backend/internal/session/domain"
	sessionrepo "iot-capstone/backend/internal/session/repository"
	telemetrydomain "iot-capstone/backend/internal/telemetry/domain"
	telemetryrepo "iot-capstone/backend/internal/telemetry/repository"
)

const devUserID = "dev-user-001"

// seedReadings spans both sides of the default alert threshold so the
// dashboard chart has something to show.
var seedReadings = []float64{18.5, 22.0, 25.5, 29.0, 31.9, 32.0, 36.5, 41.0}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessions := sessionrepo.NewPostgresStore(conn)
	existing, err := sessions.ListSessionsByUser(ctx, devUserID)
	if err != nil {
		log.Fatalf("seed: list sessions: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("seed: dev user %s already has %d session(s); skipping", devUserID, len(existing))
		return
	}

	for i := 0; i < 2; i++ {
		antiCSRF, err := auth.NewAntiCSRFToken()
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		_, hash, err := auth.NewSessionToken()
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		created, err := sessions.CreateSession(ctx, &sessiondomain.Session{
			Handle:             auth.NewHandle(),
			ExpiresAt:          time.Now().Add(cfg.SessionLifetime()),
			AntiCSRFToken:      antiCSRF,
			HashedSessionToken: hash,
			UserID:             devUserID,
		})
		if err != nil {
			log.Fatalf("seed: create session: %v", err)
		}
		log.Printf("seed: session %s", created.Handle)
	}

	readings := telemetryrepo.NewPostgresStore(conn)
	for _, v := range seedReadings {
		if err := readings.SaveReading(ctx, &telemetrydomain.Reading{Value: v}); err != nil {
			log.Fatalf("seed: save reading: %v", err)
		}
	}
	log.Printf("seed: %d readings inserted", len(seedReadings))
}
