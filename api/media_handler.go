package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samudev/portfolio-backend/blob"
	"github.com/samudev/portfolio-backend/errs"
	"github.com/samudev/portfolio-backend/models"
)

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	blobs     blob.Store
}

func newMediaHandler(blobs blob.Store) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blobs:     blobs,
	}
}

// listMedia lists a project's stored blobs, optionally narrowed by kind
func (h mediaHandler) listMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		kind := models.MediaKind(r.URL.Query().Get("kind"))
		switch kind {
		case "", models.MediaImage, models.MediaVideo:
		default:
			h.responder.WriteError(w, errs.NewBadRequestError("kind must be image or video"))
			return
		}

		entries, err := h.blobs.List(r.Context(), projectID, kind)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"entries": entries,
			"total":   len(entries),
		})
	}
}

// deleteMedia removes one stored blob by path. The record keeps whatever URLs
// it has; pruning the media list is a separate project update.
func (h mediaHandler) deleteMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("path"))
			return
		}

		if err := h.blobs.Delete(r.Context(), path); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "media deleted successfully",
		})
	}
}
