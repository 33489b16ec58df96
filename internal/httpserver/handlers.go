package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"iot-capstone/backend/internal/auth"
	"iot-capstone/backend/internal/payments"
	"iot-capstone/backend/internal/platform/storeerr"
	sessiondomain "iot-capstone/backend/internal/session/domain"
	sessionrepo "iot-capstone/backend/internal/session/repository"
	telemetryrepo "iot-capstone/backend/internal/telemetry/repository"
)

// handlers serves the dashboard API routes.
type handlers struct {
	sessions     sessionrepo.Store
	readings     telemetryrepo.Store
	checkout     payments.CheckoutCreator
	db           *sql.DB
	cookiePrefix string
	sessionTTL   time.Duration
	now          func() time.Time
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode response: %v", err)
	}
}

// root answers 200 once the auth middleware has resolved the request.
func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// temp returns every stored reading in arrival order.
func (h *handlers) temp(w http.ResponseWriter, r *http.Request) {
	readings, err := h.readings.ListReadings(r.Context())
	if err != nil {
		log.Printf("http: list readings: %v", err)
		http.Error(w, "reading store unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

// sessionResponse is the client-visible shape of a session.
type sessionResponse struct {
	Handle     string    `json:"handle"`
	UserID     string    `json:"userId,omitempty"`
	ExpiresAt  time.Time `json:"expiresAt"`
	PublicData string    `json:"publicData,omitempty"`
}

func toSessionResponse(s *sessiondomain.Session) sessionResponse {
	return sessionResponse{
		Handle:     s.Handle,
		UserID:     s.UserID,
		ExpiresAt:  s.ExpiresAt,
		PublicData: s.PublicData,
	}
}

// createSession issues a fresh session for the userId query parameter and
// sets the session cookie. Handle and tokens are generated server side.
func (h *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	created, err := h.issueSession(r, userID, "")
	if err != nil {
		log.Printf("http: create session: %v", err)
		http.Error(w, "could not create session", http.StatusServiceUnavailable)
		return
	}
	h.setSessionCookie(w, created.Handle, created.ExpiresAt)
	writeJSON(w, http.StatusOK, toSessionResponse(created))
}

// issueSession generates credentials and persists a new session.
func (h *handlers) issueSession(r *http.Request, userID, data string) (*sessiondomain.Session, error) {
	antiCSRF, err := auth.NewAntiCSRFToken()
	if err != nil {
		return nil, err
	}
	_, hash, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}
	return h.sessions.CreateSession(r.Context(), &sessiondomain.Session{
		Handle:             auth.NewHandle(),
		ExpiresAt:          h.now().Add(h.sessionTTL),
		AntiCSRFToken:      antiCSRF,
		HashedSessionToken: hash,
		UserID:             userID,
		Data:               data,
	})
}

func (h *handlers) setSessionCookie(w http.ResponseWriter, handle string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName(h.cookiePrefix),
		Value:    handle,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSession deletes the session row and expires the cookie. A request
// without a session just gets the expired cookie back.
func (h *handlers) clearSession(w http.ResponseWriter, r *http.Request) {
	cookieName := auth.CookieName(h.cookiePrefix)
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		if _, err := h.sessions.DeleteSession(r.Context(), cookie.Value); err != nil && !errors.Is(err, storeerr.ErrNotFound) {
			log.Printf("http: delete session: %v", err)
			http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Write([]byte("OK"))
}

// listSessions returns the sessions owned by the current user.
func (h *handlers) listSessions(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.FromContext(r.Context())
	if !ok || sess.UserID == "" {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}
	owned, err := h.sessions.ListSessionsByUser(r.Context(), sess.UserID)
	if err != nil {
		log.Printf("http: list sessions: %v", err)
		http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
		return
	}
	out := make([]sessionResponse, 0, len(owned))
	for _, s := range owned {
		out = append(out, toSessionResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// stripeCheckout creates a checkout session for the amount query
// parameter (cents) and returns its id and hosted page URL.
func (h *handlers) stripeCheckout(w http.ResponseWriter, r *http.Request) {
	if h.checkout == nil {
		http.Error(w, "payments disabled", http.StatusServiceUnavailable)
		return
	}
	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		http.Error(w, "amount must be a positive integer", http.StatusBadRequest)
		return
	}
	checkout, err := h.checkout.CreateCheckout(r.Context(), amount)
	if err != nil {
		log.Printf("http: create checkout: %v", err)
		http.Error(w, "could not create checkout", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, checkout)
}

// stripeSuccess records the completed payment as a "payed" session for
// the returning customer.
func (h *handlers) stripeSuccess(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if sess, ok := auth.FromContext(r.Context()); ok {
		userID = sess.UserID
	}
	created, err := h.issueSession(r, userID, `{"role":"payed"}`)
	if err != nil {
		log.Printf("http: create payed session: %v", err)
		http.Error(w, "could not record payment", http.StatusServiceUnavailable)
		return
	}
	h.setSessionCookie(w, created.Handle, created.ExpiresAt)
	w.Write([]byte("payment successful"))
}

func (h *handlers) stripeCancel(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("payment canceled"))
}

// healthz reports readiness; the DB ping is the only dependency check.
func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			log.Printf("http: healthz ping: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
