package api

import (
	"errors"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samudev/portfolio-backend/auth"
	"github.com/samudev/portfolio-backend/errs"
)

// accessGate guards the privileged routes. It waits for the identity session
// to initialize before deciding anything, then requires a valid session token
// whose subject is the current admin principal. Every failure path is a
// denial, never an error propagated past the gate.
type accessGate struct {
	session     *auth.Session
	tokenSecret []byte
	loginPath   string
	responder   Responder
}

func newAccessGate(session *auth.Session, tokenSecret []byte) accessGate {
	logger := log.With().Str("handlerName", "accessGate").Logger()
	return accessGate{
		session:     session,
		tokenSecret: tokenSecret,
		loginPath:   "/auth/login",
		responder:   NewResponder(logger),
	}
}

func (g accessGate) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// never decide before the session's first provider callback;
		// deciding early would deny a legitimately signed-in admin
		if err := g.session.WaitInitialized(r.Context()); err != nil {
			g.deny(w, r, errs.NewUnauthorizedError("session not initialized"))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			g.deny(w, r, errs.NewMissingTokenError())
			return
		}

		email, err := auth.GetEmailFromToken(strings.TrimPrefix(authHeader, "Bearer "), g.tokenSecret)
		if err != nil {
			g.deny(w, r, err)
			return
		}

		if !g.session.IsAdmin() {
			g.deny(w, r, errs.NewNotAdminError(email))
			return
		}

		principal := g.session.Current()
		if principal == nil || !strings.EqualFold(principal.Email, email) {
			g.deny(w, r, errs.NewUnauthorizedError("token does not match the current session"))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithPrincipalEmail(r.Context(), principal.Email)))
	})
}

// deny records the originally requested destination so sign-in can return the
// caller there.
func (g accessGate) deny(w http.ResponseWriter, r *http.Request, cause error) {
	apiErr := errs.Unauthorized
	errors.As(cause, &apiErr)
	status := apiErr.StatusCode
	message := apiErr.Error()

	log.Warn().
		Str("path", r.URL.Path).
		Str("reason", message).
		Msg("Access gate denied request")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	g.responder.WriteJSON(w, map[string]interface{}{
		"error":     message,
		"status":    "denied",
		"loginUrl":  g.loginPath,
		"returnUrl": r.URL.RequestURI(),
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
