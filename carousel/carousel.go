// Package carousel holds the view-state machine for cycling through a
// project's media. It is pure: no I/O, no store access, just index arithmetic
// over a resolved media list.
package carousel

import (
	"github.com/samudev/portfolio-backend/models"
)

// Carousel cycles through an ordered media list, skipping images whose URLs
// have been reported as failed. Videos are always considered displayable since
// failure detection only applies to image decode errors.
type Carousel struct {
	items      []models.MediaItem
	selected   int
	failedURLs map[string]struct{}
}

// New builds a carousel over a project's media sequence (images in order, then
// the standalone video, if any, as a trailing item).
func New(project *models.Project) *Carousel {
	return FromItems(project.MediaSequence())
}

func FromItems(items []models.MediaItem) *Carousel {
	return &Carousel{
		items:      items,
		failedURLs: make(map[string]struct{}),
	}
}

func (c *Carousel) Len() int {
	return len(c.items)
}

func (c *Carousel) SelectedIndex() int {
	return c.selected
}

// Selected returns the current item, or false when the list is empty.
func (c *Carousel) Selected() (models.MediaItem, bool) {
	if len(c.items) == 0 {
		return models.MediaItem{}, false
	}
	return c.items[c.selected], true
}

// Next advances the selection, wrapping past the end.
func (c *Carousel) Next() {
	if len(c.items) == 0 {
		return
	}
	c.selected = (c.selected + 1) % len(c.items)
}

// Previous steps the selection back, wrapping past the start.
func (c *Carousel) Previous() {
	if len(c.items) == 0 {
		return
	}
	c.selected = (c.selected - 1 + len(c.items)) % len(c.items)
}

// Select jumps directly to index i; out-of-range values are ignored.
func (c *Carousel) Select(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.selected = i
}

// MarkFailed records a URL that did not resolve. If the current selection is
// an image with that URL, the selection advances forward to the next
// displayable item; it stays put when nothing else is displayable.
func (c *Carousel) MarkFailed(url string) {
	c.failedURLs[url] = struct{}{}

	current, ok := c.Selected()
	if !ok || current.Kind == models.MediaVideo {
		return
	}
	if _, failed := c.failedURLs[current.URL]; !failed {
		return
	}

	for step := 1; step < len(c.items); step++ {
		candidate := (c.selected + step) % len(c.items)
		if c.Displayable(c.items[candidate]) {
			c.selected = candidate
			return
		}
	}
}

// Displayable reports whether an item can be shown: videos always, images only
// with a syntactically valid URL that has not been marked failed. Pure over
// (item, failedURLs).
func (c *Carousel) Displayable(item models.MediaItem) bool {
	if item.Kind == models.MediaVideo {
		return true
	}
	if !models.IsValidMediaURL(item.URL) {
		return false
	}
	_, failed := c.failedURLs[item.URL]
	return !failed
}
