package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/wordscramble/internal/words"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordscramble.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8080", cfg.ServerAddress())
	assert.Equal(t, words.PolicyHalt, cfg.Policy())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
game {
  language             = "en-GB"
  word_list            = "/tmp/roots.txt"
  dictionary           = "/tmp/dict.txt"
  on_missing_word_list = "fallback"
  fallback_word        = "watermelon"
  seed                 = 42
}

ui {
  log_level = "debug"
  log_file  = "play.log"
  no_color  = true
}

server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "warn"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "en-GB", cfg.Game.Language)
	assert.Equal(t, "/tmp/roots.txt", cfg.Game.WordList)
	assert.Equal(t, "/tmp/dict.txt", cfg.Game.Dictionary)
	assert.Equal(t, words.PolicyFallback, cfg.Policy())
	assert.Equal(t, "watermelon", cfg.Game.FallbackWord)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "play.log", cfg.UI.LogFile)
	assert.True(t, cfg.UI.NoColor)
	assert.Equal(t, "0.0.0.0:9090", cfg.ServerAddress())
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
game {}
ui {}
server {
  port = 9000
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Game.Language)
	assert.Equal(t, "halt", cfg.Game.OnMissingWordList)
	assert.Equal(t, words.DefaultFallback, cfg.Game.FallbackWord)
	assert.Equal(t, "warn", cfg.UI.LogLevel)
	assert.Equal(t, "wordscramble.log", cfg.UI.LogFile)
	assert.Equal(t, "localhost:9000", cfg.ServerAddress())
}

func TestLoadPartialConfig(t *testing.T) {
	path := writeConfig(t, `
game {
  on_missing_word_list = "fallback"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, words.PolicyFallback, cfg.Policy())
	assert.Equal(t, Default().UI, cfg.UI)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoadInvalidHCL(t *testing.T) {
	path := writeConfig(t, `game { language = `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad language", func(c *Config) { c.Game.Language = "!!" }},
		{"bad policy", func(c *Config) { c.Game.OnMissingWordList = "crash" }},
		{"bad ui log level", func(c *Config) { c.UI.LogLevel = "loud" }},
		{"bad server log level", func(c *Config) { c.Server.LogLevel = "trace" }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, lvl)

	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)
}
