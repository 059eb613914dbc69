package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "auth.json", `{"BOT_TOKEN": "123456:abcDEF", "CHANNEL_ID": "-1001234567890"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "123456:abcDEF", cfg.BotToken)
	assert.Equal(t, "-1001234567890", cfg.ChannelID)
	assert.Equal(t, "hotwatch.log", cfg.EventLog)
	assert.Equal(t, "https://ipinfo.io/json", cfg.LookupURL)
	assert.Equal(t, []string{"ip", "neigh"}, cfg.NeighborCommand)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigNumericChannel(t *testing.T) {
	path := writeFile(t, "auth.json", `{"BOT_TOKEN": "1:x", "CHANNEL_ID": 987654321}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "987654321", cfg.ChannelID)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, "auth.yaml", `
BOT_TOKEN: "1:x"
CHANNEL_ID: "@hotspot_alerts"
event_log: /var/log/hotwatch/events.log
neighbor_command: ["ip", "-4", "neigh", "show"]
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/log/hotwatch/events.log", cfg.EventLog)
	assert.Equal(t, []string{"ip", "-4", "neigh", "show"}, cfg.NeighborCommand)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "auth.json"))
		assert.ErrorContains(t, err, "failed to read credentials file")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "auth.json", `{"BOT_TOKEN": `))
		assert.Error(t, err)
	})

	t.Run("missing channel", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "auth.json", `{"BOT_TOKEN": "1:x"}`))
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.ErrorContains(t, err, "channel_id is required")
	})
}
