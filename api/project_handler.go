package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samudev/portfolio-backend/blob"
	"github.com/samudev/portfolio-backend/database"
	"github.com/samudev/portfolio-backend/errs"
	"github.com/samudev/portfolio-backend/models"
	"github.com/samudev/portfolio-backend/services"
)

const maxUploadMemory = 64 << 20 // 64MB before multipart spills to disk

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  database.RecordStore
	blobs     blob.Store
}

func newProjectHandler(projects database.RecordStore, blobs blob.Store) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		blobs:     blobs,
	}
}

// ProjectCollection represents multiple projects
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

// CategoryGroup is one category with its display-sorted projects.
type CategoryGroup struct {
	Category models.Category  `json:"category"`
	Projects []models.Project `json:"projects"`
}

// ProjectDetail is the single-project payload. MediaURLs is the flattened URL
// list the edit form pre-seeds its media fields from.
type ProjectDetail struct {
	models.Project
	MediaURLs []string `json:"mediaUrls"`
}

// getAllProjects retrieves every project, no ordering guarantee
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.GetAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		project, err := h.projects.GetByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ProjectDetail{
			Project:   *project,
			MediaURLs: project.FlattenMedia(),
		})
	}
}

// getProjectsByCategory retrieves a category's projects in display order
func (h projectHandler) getProjectsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := models.Category(chi.URLParam(r, "category"))
		if !category.Valid() {
			h.responder.WriteError(w, errs.NewInvalidCategoryError(string(category)))
			return
		}

		projects, err := h.projects.GetByCategory(r.Context(), category)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		models.SortForDisplay(projects)
		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getGroupedProjects partitions all projects by every category they belong to,
// each group display-sorted, groups in the site's category order
func (h projectHandler) getGroupedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grouped, err := h.projects.GetGroupedByCategory(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		groups := make([]CategoryGroup, 0, len(grouped))
		for _, category := range models.CategoryDisplayOrder {
			projects, ok := grouped[category]
			if !ok {
				continue
			}
			models.SortForDisplay(projects)
			groups = append(groups, CategoryGroup{Category: category, Projects: projects})
		}

		h.responder.WriteJSON(w, groups)
	}
}

// createProject creates a new project, optionally uploading staged media in
// the same request (multipart). Upload failures never abort the batch; the
// outcome reports success and failure counts distinctly.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, staged, cleanup, err := h.readMutationRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer cleanup()

		session := services.NewEditSession(h.projects, h.blobs)
		if err := session.BeginCreate(draft); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		session.Stage(staged...)

		result := session.Submit(r.Context())
		h.writeResult(w, result, http.StatusCreated)
	}
}

// updateProject merges the supplied fields into an existing project and
// appends any newly uploaded media after its current list
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		patch, staged, cleanup, err := h.readMutationPatch(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer cleanup()

		session := services.NewEditSession(h.projects, h.blobs)
		if err := session.BeginEdit(r.Context(), projectID, patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		session.Stage(staged...)

		result := session.Submit(r.Context())
		h.writeResult(w, result, http.StatusOK)
	}
}

// deleteProject deletes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		if err := h.projects.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// readMutationRequest decodes a create request: either plain JSON, or a
// multipart form with a "project" JSON field plus "images"/"videos" files.
func (h projectHandler) readMutationRequest(r *http.Request) (models.Project, []services.StagedFile, func(), error) {
	var draft models.Project

	if !isMultipart(r) {
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			return draft, nil, noopCleanup, errs.NewBadRequestError("malformed request body")
		}
		return draft, nil, noopCleanup, nil
	}

	raw, staged, cleanup, err := h.readMultipart(r)
	if err != nil {
		return draft, nil, cleanup, err
	}
	if err := json.Unmarshal(raw, &draft); err != nil {
		cleanup()
		h.logger.Error().Err(err).Msg("Failed to decode project form field")
		return draft, nil, noopCleanup, errs.NewBadRequestError("malformed project field")
	}
	return draft, staged, cleanup, nil
}

// readMutationPatch decodes an update request, keeping the partial fields as
// raw JSON so only the supplied fields merge into the stored record.
func (h projectHandler) readMutationPatch(r *http.Request) (json.RawMessage, []services.StagedFile, func(), error) {
	if !isMultipart(r) {
		var patch json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project patch body")
			return nil, nil, noopCleanup, errs.NewBadRequestError("malformed request body")
		}
		return patch, nil, noopCleanup, nil
	}

	return h.readMultipart(r)
}

// readMultipart extracts the "project" JSON field and stages every uploaded
// file, tagged by the form field it arrived under.
func (h projectHandler) readMultipart(r *http.Request) (json.RawMessage, []services.StagedFile, func(), error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, noopCleanup, errs.NewBadRequestError("malformed multipart form")
	}

	raw := json.RawMessage(r.FormValue("project"))
	if len(raw) == 0 {
		return nil, nil, noopCleanup, errs.NewMissingRequiredFieldError("project")
	}

	var staged []services.StagedFile
	var opened []multipart.File

	stageAll := func(headers []*multipart.FileHeader, kind models.MediaKind) error {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				return errs.NewBadRequestError("unreadable file: " + header.Filename)
			}
			opened = append(opened, file)
			staged = append(staged, services.StagedFile{
				File: blob.File{
					Name:        header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Content:     file,
				},
				Kind: kind,
			})
		}
		return nil
	}

	cleanup := func() {
		for _, file := range opened {
			file.Close()
		}
	}

	if form := r.MultipartForm; form != nil {
		if err := stageAll(form.File["images"], models.MediaImage); err != nil {
			cleanup()
			return nil, nil, noopCleanup, err
		}
		if err := stageAll(form.File["videos"], models.MediaVideo); err != nil {
			cleanup()
			return nil, nil, noopCleanup, err
		}
	}

	return raw, staged, cleanup, nil
}

// writeResult maps the orchestrator outcome onto an HTTP response. Partial
// failures still persisted, so they respond with the success status and both
// counts; a failed session never persisted anything.
func (h projectHandler) writeResult(w http.ResponseWriter, result services.Result, successStatus int) {
	switch result.State {
	case services.StateDone:
		h.responder.WriteJSONStatus(w, successStatus, result)
	case services.StatePartialFailure:
		h.responder.WriteJSONStatus(w, successStatus, result)
	default:
		h.responder.WriteJSONStatus(w, http.StatusBadGateway, result)
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func noopCleanup() {}
