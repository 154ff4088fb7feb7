package api

import (
	"time"

	"github.com/samudev/portfolio-backend/auth"
	"github.com/samudev/portfolio-backend/blob"
	"github.com/samudev/portfolio-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, blobs blob.Store, session *auth.Session, tokenSecret []byte, tokenValidity time.Duration, snapshotPath string) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(db.Projects(), blobs),
		mediaHandler:   newMediaHandler(blobs),
		authHandler:    newAuthHandler(session, tokenSecret, tokenValidity),
		adminHandler:   newAdminHandler(db.Projects(), snapshotPath),
	}
}
