package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samudev/portfolio-backend/auth"
	"github.com/samudev/portfolio-backend/errs"
)

type authHandler struct {
	responder     Responder
	logger        zerolog.Logger
	session       *auth.Session
	tokenSecret   []byte
	tokenValidity time.Duration
}

func newAuthHandler(session *auth.Session, tokenSecret []byte, tokenValidity time.Duration) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		session:       session,
		tokenSecret:   tokenSecret,
		tokenValidity: tokenValidity,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login signs the principal in and mints a session token for the admin surface
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		principal, err := h.session.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := auth.GenerateToken(principal.Email, h.tokenSecret, h.tokenValidity)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("could not mint session token", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"token":     token,
			"principal": principal,
			"isAdmin":   h.session.IsAdmin(),
		})
	}
}

// logout clears the session. Local sign-out always succeeds; a remote
// provider failure is reported alongside, never instead.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"status": "signed-out",
		}
		if err := h.session.SignOut(r.Context()); err != nil {
			response["warning"] = err.Error()
		}
		h.responder.WriteJSON(w, response)
	}
}

// getSession reports the current identity state for the header UI
func (h authHandler) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]interface{}{
			"initialized":   h.session.Initialized(),
			"authenticated": h.session.IsAuthenticated(),
			"isAdmin":       h.session.IsAdmin(),
			"principal":     h.session.Current(),
		})
	}
}
