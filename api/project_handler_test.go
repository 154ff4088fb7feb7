package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samudev/portfolio-backend/errs"
	"github.com/samudev/portfolio-backend/models"
)

// stubRecordStore serves a fixed project set; mutations are rejected since the
// read handlers under test never reach them.
type stubRecordStore struct {
	projects map[string]models.Project
}

func (s stubRecordStore) GetAll(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	for _, p := range s.projects {
		out = append(out, p)
	}
	return out, nil
}

func (s stubRecordStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, errs.NewNotFound("project")
	}
	return &p, nil
}

func (s stubRecordStore) GetByCategory(ctx context.Context, category models.Category) ([]models.Project, error) {
	var out []models.Project
	for _, p := range s.projects {
		if p.HasCategory(category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s stubRecordStore) GetGroupedByCategory(ctx context.Context) (map[models.Category][]models.Project, error) {
	all, _ := s.GetAll(ctx)
	return models.GroupByCategory(all), nil
}

func (s stubRecordStore) Create(ctx context.Context, project *models.Project) (string, error) {
	return "", errs.NewReadOnlyStoreError("create")
}

func (s stubRecordStore) CreateWithID(ctx context.Context, id string, project *models.Project) error {
	return errs.NewReadOnlyStoreError("create")
}

func (s stubRecordStore) Update(ctx context.Context, id string, patch json.RawMessage) (*models.Project, error) {
	return nil, errs.NewReadOnlyStoreError("update")
}

func (s stubRecordStore) Delete(ctx context.Context, id string) error {
	return errs.NewReadOnlyStoreError("delete")
}

func projectRouter(store stubRecordStore) *chi.Mux {
	handler := newProjectHandler(store, nil)
	r := chi.NewRouter()
	r.Get("/project/{projectID}", handler.getProject())
	return r
}

func TestGetProjectIncludesFlattenedMediaURLs(t *testing.T) {
	store := stubRecordStore{projects: map[string]models.Project{
		"p-1": {
			ID:       "p-1",
			Title:    "Neon Drift",
			Year:     2024,
			Category: []models.Category{models.CategoryVR},
			Images: []models.MediaItem{
				{Kind: models.MediaImage, URL: "https://cdn.example.com/a.png"},
				{Kind: models.MediaVideo, URL: "https://cdn.example.com/b.mp4"},
			},
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/project/p-1", nil)
	rec := httptest.NewRecorder()
	projectRouter(store).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Title     string   `json:"title"`
		MediaURLs []string `json:"mediaUrls"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Neon Drift", detail.Title)
	assert.Equal(t, []string{
		"https://cdn.example.com/a.png",
		"https://cdn.example.com/b.mp4",
	}, detail.MediaURLs)
}

func TestGetProjectNotFound(t *testing.T) {
	store := stubRecordStore{projects: map[string]models.Project{}}

	req := httptest.NewRequest(http.MethodGet, "/project/missing", nil)
	rec := httptest.NewRecorder()
	projectRouter(store).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
