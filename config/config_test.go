package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CRICKTLE_ADDR", "")
	t.Setenv("CRICKTLE_MAX_ATTEMPTS", "")
	t.Setenv("CRICKTLE_SUGGESTION_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data/players.json", cfg.PlayersFile)
	assert.Equal(t, 6, cfg.MaxAttempts)
	assert.Equal(t, 8, cfg.SuggestionLimit)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CRICKTLE_ADDR", ":9999")
	t.Setenv("CRICKTLE_MAX_ATTEMPTS", "10")
	t.Setenv("CRICKTLE_SUGGESTION_LIMIT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 10, cfg.MaxAttempts)
	assert.Equal(t, 3, cfg.SuggestionLimit)
}

func TestLoadSnapsBackBadValues(t *testing.T) {
	t.Setenv("CRICKTLE_MAX_ATTEMPTS", "-1")
	t.Setenv("CRICKTLE_SUGGESTION_LIMIT", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.MaxAttempts)
	assert.Equal(t, 8, cfg.SuggestionLimit)
}
