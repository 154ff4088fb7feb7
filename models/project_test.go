package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samudev/portfolio-backend/errs"
)

func TestMediaItemUnmarshalBareString(t *testing.T) {
	var item MediaItem
	require.NoError(t, json.Unmarshal([]byte(`"https://cdn.example.com/shot.png"`), &item))

	assert.Equal(t, MediaImage, item.Kind)
	assert.Equal(t, "https://cdn.example.com/shot.png", item.URL)
}

func TestMediaItemUnmarshalStructured(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind MediaKind
	}{
		{"kind key", `{"kind":"video","url":"https://cdn.example.com/clip.mp4"}`, MediaVideo},
		{"legacy type key", `{"type":"video","url":"https://cdn.example.com/clip.mp4"}`, MediaVideo},
		{"missing kind defaults to image", `{"url":"https://cdn.example.com/clip.mp4"}`, MediaImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item MediaItem
			require.NoError(t, json.Unmarshal([]byte(tt.in), &item))
			assert.Equal(t, tt.kind, item.Kind)
			assert.Equal(t, "https://cdn.example.com/clip.mp4", item.URL)
		})
	}
}

func TestMediaItemUnmarshalMixedList(t *testing.T) {
	raw := `["https://cdn.example.com/a.png",{"kind":"video","url":"https://cdn.example.com/b.mp4"}]`

	var items []MediaItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 2)

	assert.Equal(t, MediaImage, items[0].Kind)
	assert.Equal(t, MediaVideo, items[1].Kind)
}

func TestProjectValidate(t *testing.T) {
	valid := Project{
		Title:    "Neon Drift",
		Year:     2024,
		Category: []Category{CategoryVR},
		Status:   StatusDone,
	}
	assert.NoError(t, valid.Validate())

	missingTitle := valid
	missingTitle.Title = "   "
	err := missingTitle.Validate()
	assert.True(t, errs.IsMissingRequiredField(err))

	missingCategory := valid
	missingCategory.Category = nil
	err = missingCategory.Validate()
	assert.True(t, errs.IsMissingRequiredField(err))

	badCategory := valid
	badCategory.Category = []Category{"arcade"}
	err = badCategory.Validate()
	assert.True(t, errs.IsInvalidCategory(err))

	badVideo := valid
	badVideo.Video = "not-a-url"
	err = badVideo.Validate()
	assert.True(t, errs.IsInvalidURL(err))
}

func TestIsValidMediaURL(t *testing.T) {
	assert.True(t, IsValidMediaURL("https://cdn.example.com/a.png"))
	assert.True(t, IsValidMediaURL("http://cdn.example.com/a.png"))

	assert.False(t, IsValidMediaURL(""))
	assert.False(t, IsValidMediaURL("ftp://cdn.example.com/a.png"))
	assert.False(t, IsValidMediaURL("/relative/path.png"))
	assert.False(t, IsValidMediaURL("https://via.placeholder.com/300"))
}

func TestMediaSequenceAppendsTrailingVideo(t *testing.T) {
	project := Project{
		Images: []MediaItem{
			{Kind: MediaImage, URL: "https://cdn.example.com/a.png"},
			{Kind: MediaImage, URL: "https://cdn.example.com/b.png"},
		},
		Video: "https://cdn.example.com/trailer.mp4",
	}

	sequence := project.MediaSequence()
	require.Len(t, sequence, 3)
	assert.Equal(t, MediaVideo, sequence[2].Kind)
	assert.Equal(t, "https://cdn.example.com/trailer.mp4", sequence[2].URL)

	project.Video = ""
	assert.Len(t, project.MediaSequence(), 2)
}

func TestFlattenMedia(t *testing.T) {
	project := Project{
		Images: []MediaItem{
			{Kind: MediaImage, URL: "https://cdn.example.com/a.png"},
			{Kind: MediaVideo, URL: "https://cdn.example.com/b.mp4"},
		},
	}

	assert.Equal(t, []string{
		"https://cdn.example.com/a.png",
		"https://cdn.example.com/b.mp4",
	}, project.FlattenMedia())
}
