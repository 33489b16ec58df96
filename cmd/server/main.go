// Server runs the capstone backend: session endpoints, readings API,
// Stripe checkout, and the websocket telemetry channel.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iot-capstone/backend/internal/config"
	"iot-capstone/backend/internal/db"
	"iot-capstone/backend/internal/hub"
	"iot-capstone/backend/internal/httpserver"
	"iot-capstone/backend/internal/payments"
	sessionrepo "iot-capstone/backend/internal/session/repository"
	"iot-capstone/backend/internal/telemetry"
	telemetryotel "iot-capstone/backend/internal/telemetry/otel"
	"iot-capstone/backend/internal/telemetry/producer"
	telemetryrepo "iot-capstone/backend/internal/telemetry/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	providers, err := telemetryotel.NewProviders(ctx, cfg.OTLPEndpoint, "capstone-backend", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()

	var database *sql.DB
	var sessions sessionrepo.Store
	var readings telemetryrepo.Store
	if cfg.DatabaseURL != "" {
		database, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer database.Close()
		sessions = sessionrepo.NewPostgresStore(database)
		readings = telemetryrepo.NewPostgresStore(database)
	} else {
		log.Println("DATABASE_URL not set; using in-memory stores")
		sessions = sessionrepo.NewMemoryStore()
		readings = telemetryrepo.NewMemoryStore()
	}

	kafkaProducer := producer.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.KafkaTopic)
	mirror := telemetry.MultiEmitter{
		telemetryotel.NewEventEmitter(providers.LoggerProvider),
	}
	if kafkaProducer != nil {
		mirror = append(mirror, kafkaProducer)
		log.Printf("telemetry mirror enabled: topic %s", cfg.KafkaTopic)
	}

	h := hub.New(cfg.CORSOrigin)
	pipe := telemetry.NewPipeline(readings, h, cfg.AlertThreshold, mirror)
	h.HandleEvent(telemetry.EventReading, pipe.HandleReading)
	h.HandleEvent(telemetry.EventAlert, pipe.HandleAlert)
	go h.Run()

	checkout := payments.NewStripeCheckout(cfg.StripeSecretKey, cfg.StripeSuccessURL, cfg.StripeCancelURL)
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Sessions:     sessions,
		Readings:     readings,
		Hub:          h,
		Checkout:     stripeOrNil(checkout),
		DB:           database,
		CORSOrigin:   cfg.CORSOrigin,
		CookiePrefix: cfg.CookiePrefix,
		SessionTTL:   cfg.SessionLifetime(),
		Instrument:   cfg.OTLPEndpoint != "",
	})
	srv := httpserver.New(cfg.HTTPAddr, router)

	go func() {
		log.Printf("http server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	h.Close()

	// Let in-flight async mirror emits finish before closing their sinks.
	time.Sleep(telemetry.ShutdownDrainDuration)
	if err := kafkaProducer.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("otel shutdown: %v", err)
	}
	log.Println("server stopped")
}

// stripeOrNil avoids putting a typed nil into the CheckoutCreator interface.
func stripeOrNil(c *payments.StripeCheckout) payments.CheckoutCreator {
	if c == nil {
		return nil
	}
	return c
}
