package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	cfg := map[string]string{"NAME": "value", "EMPTY": ""}

	assert.Equal(t, "value", GetString(cfg, "NAME", "fallback"))
	assert.Equal(t, "", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(cfg, "MISSING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "NAME", "fallback"))
}

func TestGetInt(t *testing.T) {
	cfg := map[string]string{"PORT": "8080", "BAD": "eight"}

	assert.Equal(t, 8080, GetInt(cfg, "PORT", 3000))
	assert.Equal(t, 3000, GetInt(cfg, "BAD", 3000))
	assert.Equal(t, 3000, GetInt(cfg, "MISSING", 3000))
	assert.Equal(t, 3000, GetInt(nil, "PORT", 3000))
}

func TestGetBool(t *testing.T) {
	cfg := map[string]string{"ON": "true", "OFF": "0", "BAD": "yep"}

	assert.True(t, GetBool(cfg, "ON", false))
	assert.False(t, GetBool(cfg, "OFF", true))
	assert.True(t, GetBool(cfg, "BAD", true))
	assert.False(t, GetBool(cfg, "MISSING", false))
}

func TestGetStrings(t *testing.T) {
	cfg := map[string]string{
		"ADMINS": "a@example.com, b@example.com ,,c@example.com",
		"ONE":    "solo@example.com",
		"BLANK":  "",
		"COMMAS": ", ,",
	}

	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, GetStrings(cfg, "ADMINS"))
	assert.Equal(t, []string{"solo@example.com"}, GetStrings(cfg, "ONE"))
	assert.Nil(t, GetStrings(cfg, "BLANK"))
	assert.Empty(t, GetStrings(cfg, "COMMAS"))
	assert.Nil(t, GetStrings(cfg, "MISSING"))
	assert.Nil(t, GetStrings(nil, "ADMINS"))
}
