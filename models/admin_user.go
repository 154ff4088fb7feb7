package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a credential record for the identity provider. Membership in
// the admin allow-list is decided by configuration, not by this table.
type AdminUser struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email        string    `json:"email" gorm:"type:text;not null;unique"`
	PasswordHash string    `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at"`
}
