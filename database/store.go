package database

import (
	"context"
	"encoding/json"

	"github.com/samudev/portfolio-backend/models"
)

// RecordStore is the persistence contract for Project entities. Two backends
// implement it: the live Postgres store and a read-only static snapshot. The
// backend is chosen once at construction, never per call.
type RecordStore interface {
	GetAll(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	GetByCategory(ctx context.Context, category models.Category) ([]models.Project, error)
	GetGroupedByCategory(ctx context.Context) (map[models.Category][]models.Project, error)

	// Create discards any caller-supplied id and returns the assigned one.
	Create(ctx context.Context, project *models.Project) (string, error)
	// CreateWithID keeps the given id. Only the snapshot migration uses it.
	CreateWithID(ctx context.Context, id string, project *models.Project) error
	// Update merges the JSON fields present in patch into the stored record
	// and refreshes its update timestamp.
	Update(ctx context.Context, id string, patch json.RawMessage) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

// Database bundles the record store with the supporting repositories.
type Database struct {
	projects RecordStore
	users    *AdminUserRepo
}

func (d Database) Projects() RecordStore {
	return d.projects
}

func (d Database) Users() *AdminUserRepo {
	return d.users
}

// mergeProject applies a JSON patch onto a copy of the stored record. Only
// fields present in the patch change; id and timestamps stay store-managed.
func mergeProject(existing models.Project, patch json.RawMessage) (models.Project, error) {
	merged := existing
	if err := json.Unmarshal(patch, &merged); err != nil {
		return models.Project{}, err
	}
	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return merged, nil
}
