package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samudev/portfolio-backend/database"
	"github.com/samudev/portfolio-backend/errs"
	"github.com/samudev/portfolio-backend/services"
)

type adminHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projects     database.RecordStore
	snapshotPath string
}

func newAdminHandler(projects database.RecordStore, snapshotPath string) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projects:     projects,
		snapshotPath: snapshotPath,
	}
}

// migrateSnapshot imports the static JSON snapshot into the live store,
// keeping snapshot ids. Per-project failures are counted, not fatal.
func (h adminHandler) migrateSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.snapshotPath == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("no snapshot path configured"))
			return
		}

		source, err := database.NewStatic(h.snapshotPath)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("could not load snapshot", err))
			return
		}

		result, err := services.MigrateSnapshot(r.Context(), source.Projects(), h.projects)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}
