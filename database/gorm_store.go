package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samudev/portfolio-backend/errs"
	"github.com/samudev/portfolio-backend/models"
	"gorm.io/gorm"
)

// GormStore is the live record store backend.
type GormStore struct {
	db *gorm.DB
}

// NewLive wires the live Postgres-backed Database. The caller owns the
// connection; migrations run here so both tables exist before first use.
func NewLive(db *gorm.DB) (Database, error) {
	if err := db.AutoMigrate(&models.Project{}, &models.AdminUser{}); err != nil {
		return Database{}, fmt.Errorf("migrating schema: %w", err)
	}
	return Database{
		projects: &GormStore{db: db},
		users:    NewAdminUserRepo(db),
	}, nil
}

func (s *GormStore) GetAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, errs.NewStoreError("list", "projects", err)
	}
	return projects, nil
}

func (s *GormStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, errs.NewStoreError("find", "project", err)
	}
	return &project, nil
}

func (s *GormStore) GetByCategory(ctx context.Context, category models.Category) ([]models.Project, error) {
	var projects []models.Project
	membership := fmt.Sprintf(`["%s"]`, category)
	err := s.db.WithContext(ctx).Where("category @> ?", membership).Find(&projects).Error
	if err != nil {
		return nil, errs.NewStoreError("list", "projects by category", err)
	}
	return projects, nil
}

func (s *GormStore) GetGroupedByCategory(ctx context.Context) (map[models.Category][]models.Project, error) {
	projects, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.GroupByCategory(projects), nil
}

func (s *GormStore) Create(ctx context.Context, project *models.Project) (string, error) {
	record := *project
	record.ID = uuid.NewString()
	record.CreatedAt = time.Time{}
	record.UpdatedAt = time.Time{}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", errs.NewStoreError("create", "project", err)
	}
	*project = record
	return record.ID, nil
}

func (s *GormStore) CreateWithID(ctx context.Context, id string, project *models.Project) error {
	record := *project
	record.ID = id
	record.CreatedAt = time.Time{}
	record.UpdatedAt = time.Time{}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return errs.NewStoreError("create", "project", err)
	}
	*project = record
	return nil
}

func (s *GormStore) Update(ctx context.Context, id string, patch json.RawMessage) (*models.Project, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := mergeProject(*existing, patch)
	if err != nil {
		return nil, errs.NewBadRequestError("malformed project patch")
	}
	merged.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(&merged).Error; err != nil {
		return nil, errs.NewStoreError("update", "project", err)
	}
	return &merged, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return errs.NewStoreError("delete", "project", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return nil
}
