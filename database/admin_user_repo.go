package database

import (
	"context"
	"errors"

	"github.com/samudev/portfolio-backend/errs"
	"github.com/samudev/portfolio-backend/models"
	"gorm.io/gorm"
)

type AdminUserRepo struct {
	db *gorm.DB
}

func NewAdminUserRepo(db *gorm.DB) *AdminUserRepo {
	return &AdminUserRepo{db}
}

// FindByEmail returns the credential record for an email, or a not-found error.
func (r *AdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("admin user")
	}
	if err != nil {
		return nil, errs.NewStoreError("find", "admin user", err)
	}
	return &user, nil
}

// Add inserts a new credential record.
func (r *AdminUserRepo) Add(ctx context.Context, user *models.AdminUser) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return errs.NewStoreError("create", "admin user", err)
	}
	return nil
}
