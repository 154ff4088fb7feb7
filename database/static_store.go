package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samudev/portfolio-backend/errs"
	"github.com/samudev/portfolio-backend/models"
)

// StaticStore serves a read-only snapshot of projects from a JSON file, the
// same shape the site shipped as a bundled asset. Every mutating operation
// fails with a read-only store error.
type StaticStore struct {
	projects []models.Project
}

// NewStatic loads the snapshot once at construction.
func NewStatic(path string) (Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Database{}, fmt.Errorf("reading project snapshot: %w", err)
	}

	var projects []models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return Database{}, fmt.Errorf("parsing project snapshot: %w", err)
	}

	return Database{projects: &StaticStore{projects: projects}}, nil
}

// NewStaticFromProjects builds a snapshot store from an in-memory list.
func NewStaticFromProjects(projects []models.Project) *StaticStore {
	return &StaticStore{projects: projects}
}

func (s *StaticStore) GetAll(ctx context.Context) ([]models.Project, error) {
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out, nil
}

func (s *StaticStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	for _, project := range s.projects {
		if project.ID == id {
			found := project
			return &found, nil
		}
	}
	return nil, errs.NewNotFound("project")
}

func (s *StaticStore) GetByCategory(ctx context.Context, category models.Category) ([]models.Project, error) {
	var matched []models.Project
	for _, project := range s.projects {
		if project.HasCategory(category) {
			matched = append(matched, project)
		}
	}
	return matched, nil
}

func (s *StaticStore) GetGroupedByCategory(ctx context.Context) (map[models.Category][]models.Project, error) {
	return models.GroupByCategory(s.projects), nil
}

func (s *StaticStore) Create(ctx context.Context, project *models.Project) (string, error) {
	return "", errs.NewReadOnlyStoreError("create")
}

func (s *StaticStore) CreateWithID(ctx context.Context, id string, project *models.Project) error {
	return errs.NewReadOnlyStoreError("create")
}

func (s *StaticStore) Update(ctx context.Context, id string, patch json.RawMessage) (*models.Project, error) {
	return nil, errs.NewReadOnlyStoreError("update")
}

func (s *StaticStore) Delete(ctx context.Context, id string) error {
	return errs.NewReadOnlyStoreError("delete")
}
