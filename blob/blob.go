package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/samudev/portfolio-backend/models"
)

// File is one pending upload. Name is the original client filename; it ends up
// in the object key, so collisions are avoided by the timestamp prefix rather
// than by renaming.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Entry describes one stored object.
type Entry struct {
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// Store is the persistence contract for binary media assets. Uploads resolve
// to publicly addressable URLs; record mutation is always the caller's job.
type Store interface {
	// Upload stores the file under a project/kind-scoped path and returns
	// its public URL. Each upload is independent; batching is the caller's
	// concern.
	Upload(ctx context.Context, ownerID string, file File, kind models.MediaKind) (string, error)
	Delete(ctx context.Context, path string) error
	// List returns the stored entries for an owner, optionally narrowed to
	// one media kind (empty kind means all).
	List(ctx context.Context, ownerID string, kind models.MediaKind) ([]Entry, error)
}

// ObjectKey builds the storage path for a file: {owner}/{kind}/{unix-ms}_{name}.
// The millisecond prefix keeps same-named files from colliding.
func ObjectKey(ownerID string, kind models.MediaKind, name string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d_%s", ownerID, kindFolder(kind), now.UnixMilli(), name)
}

// KeyPrefix is the listing prefix for an owner, optionally narrowed by kind.
func KeyPrefix(ownerID string, kind models.MediaKind) string {
	if kind == "" {
		return ownerID + "/"
	}
	return fmt.Sprintf("%s/%s/", ownerID, kindFolder(kind))
}

func kindFolder(kind models.MediaKind) string {
	if kind == models.MediaVideo {
		return "videos"
	}
	return "images"
}
