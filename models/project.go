package models

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/samudev/portfolio-backend/errs"
)

// Category is the fixed set of groups a project can belong to. A project may
// belong to several at once.
type Category string

const (
	CategoryStandalone Category = "standalone-project"
	CategoryGameJam    Category = "game-jam"
	CategoryVR         Category = "vr"
)

// CategoryDisplayOrder is the order grouped categories are presented in.
var CategoryDisplayOrder = []Category{CategoryStandalone, CategoryVR, CategoryGameJam}

func (c Category) Valid() bool {
	switch c {
	case CategoryStandalone, CategoryGameJam, CategoryVR:
		return true
	}
	return false
}

type Status string

const (
	StatusDone       Status = "done"
	StatusInProgress Status = "in-progress"
	StatusPaused     Status = "paused"
	StatusPrototype  Status = "prototype"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDone, StatusInProgress, StatusPaused, StatusPrototype:
		return true
	}
	return false
}

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaItem is a single image or video reference attached to a project. On the
// wire it is either a structured {kind, url} object or, in legacy records, a
// bare URL string which is normalized to the image variant on read.
type MediaItem struct {
	Kind MediaKind `json:"kind"`
	URL  string    `json:"url"`
}

func (m *MediaItem) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		m.Kind = MediaImage
		m.URL = asString
		return nil
	}

	// Older structured records used "type" instead of "kind".
	var asObject struct {
		Kind MediaKind `json:"kind"`
		Type MediaKind `json:"type"`
		URL  string    `json:"url"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}

	m.Kind = asObject.Kind
	if m.Kind == "" {
		m.Kind = asObject.Type
	}
	if m.Kind == "" {
		m.Kind = MediaImage
	}
	m.URL = asObject.URL
	return nil
}

// Links holds the optional outbound addresses of a project.
type Links struct {
	Repository string `json:"repository,omitempty"`
	Storefront string `json:"storefront,omitempty"`
	Demo       string `json:"demo,omitempty"`
}

// Project represents a portfolio entry. The record store assigns ID and both
// timestamps; everything else is caller-supplied.
type Project struct {
	ID               string      `json:"id" gorm:"type:uuid;primaryKey"`
	Title            string      `json:"title" gorm:"type:text;not null"`
	Engine           string      `json:"engine" gorm:"type:text"`
	Language         string      `json:"language" gorm:"type:text"`
	Year             int         `json:"year" gorm:"not null"`
	Category         []Category  `json:"category" gorm:"serializer:json;type:jsonb"`
	Status           Status      `json:"status" gorm:"type:text"`
	ShortDescription string      `json:"shortDescription" gorm:"type:text"`
	LongDescription  string      `json:"longDescription" gorm:"type:text"`
	Tags             []string    `json:"tags" gorm:"serializer:json;type:jsonb"`
	Images           []MediaItem `json:"images" gorm:"serializer:json;type:jsonb"`
	Video            string      `json:"video,omitempty" gorm:"type:text"`
	Links            Links       `json:"links" gorm:"serializer:json;type:jsonb"`
	Order            *int        `json:"order,omitempty" gorm:"column:display_order"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// Validate checks the caller-supplied fields. It runs before any store or blob
// call so an invalid record never causes a partial state change.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if len(p.Category) == 0 {
		return errs.NewMissingRequiredFieldError("category")
	}
	for _, c := range p.Category {
		if !c.Valid() {
			return errs.NewInvalidCategoryError(string(c))
		}
	}
	if p.Status != "" && !p.Status.Valid() {
		return errs.NewBadRequestError("unknown status: " + string(p.Status))
	}
	if p.Video != "" && !IsValidMediaURL(p.Video) {
		return errs.NewInvalidURLError("video", p.Video)
	}
	return nil
}

// HasCategory reports whether the project belongs to the given category.
func (p *Project) HasCategory(category Category) bool {
	for _, c := range p.Category {
		if c == category {
			return true
		}
	}
	return false
}

// MediaSequence returns the project's full iteration order for display: all
// images in order, then the standalone video (if any) as a synthetic trailing
// video item.
func (p *Project) MediaSequence() []MediaItem {
	items := make([]MediaItem, 0, len(p.Images)+1)
	items = append(items, p.Images...)
	if p.Video != "" {
		items = append(items, MediaItem{Kind: MediaVideo, URL: p.Video})
	}
	return items
}

// FlattenMedia reduces the media list to bare URLs for the edit form.
func (p *Project) FlattenMedia() []string {
	urls := make([]string, 0, len(p.Images))
	for _, item := range p.Images {
		urls = append(urls, item.URL)
	}
	return urls
}

// knownBadHosts are placeholder services whose URLs are syntactically fine but
// never resolve to real media.
var knownBadHosts = []string{"via.placeholder.com"}

// IsValidMediaURL reports whether a media address is a syntactically valid
// absolute http(s) URL that is not a known placeholder.
func IsValidMediaURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	for _, host := range knownBadHosts {
		if strings.Contains(raw, host) {
			return false
		}
	}
	return true
}
