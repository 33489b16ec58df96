package httpserver

import (
	"database/sql"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"iot-capstone/backend/internal/auth"
	"iot-capstone/backend/internal/hub"
	"iot-capstone/backend/internal/payments"
	sessionrepo "iot-capstone/backend/internal/session/repository"
	telemetryrepo "iot-capstone/backend/internal/telemetry/repository"
)

// RouterConfig holds the collaborators and settings for the HTTP router.
type RouterConfig struct {
	Sessions sessionrepo.Store
	Readings telemetryrepo.Store
	Hub      *hub.Hub
	// Checkout is nil when payments are disabled.
	Checkout payments.CheckoutCreator
	// DB backs the readiness check; nil skips the ping.
	DB *sql.DB

	CORSOrigin   string
	CookiePrefix string
	SessionTTL   time.Duration

	// Instrument enables otelhttp wrapping of the router.
	Instrument bool
}

// NewRouter builds the route table with the standard middleware chain:
// Recover -> CORS -> RequestLog -> session resolution -> handler. The
// websocket route skips request logging so the response writer stays
// hijackable for the upgrade.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := &handlers{
		sessions:     cfg.Sessions,
		readings:     cfg.Readings,
		checkout:     cfg.Checkout,
		db:           cfg.DB,
		cookiePrefix: cfg.CookiePrefix,
		sessionTTL:   cfg.SessionTTL,
		now:          time.Now,
	}

	resolve := Middleware(auth.Middleware(cfg.Sessions, cfg.CookiePrefix))
	web := func(fn http.HandlerFunc) http.Handler {
		return Chain(fn, Recover(), CORS(cfg.CORSOrigin), RequestLog(), resolve)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", web(h.root))
	mux.Handle("GET /temp", web(h.temp))
	mux.Handle("GET /create_session", web(h.createSession))
	mux.Handle("GET /clear_session", web(h.clearSession))
	mux.Handle("GET /sessions", web(h.listSessions))
	mux.Handle("GET /stripe", web(h.stripeCheckout))
	mux.Handle("GET /stripe/success", web(h.stripeSuccess))
	mux.Handle("GET /stripe/cancel", web(h.stripeCancel))
	mux.Handle("GET /healthz", Chain(http.HandlerFunc(h.healthz), Recover()))
	mux.Handle("GET /ws", Chain(http.HandlerFunc(cfg.Hub.ServeWS), Recover()))

	if cfg.Instrument {
		return otelhttp.NewHandler(mux, "httpserver")
	}
	return mux
}
