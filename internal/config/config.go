package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/wordscramble/internal/dictionary"
	"github.com/lox/wordscramble/internal/words"
)

// Config represents the complete wordscramble configuration
type Config struct {
	Game   *GameSettings   `hcl:"game,block"`
	UI     *UISettings     `hcl:"ui,block"`
	Server *ServerSettings `hcl:"server,block"`
}

// GameSettings controls how sessions are seeded and validated
type GameSettings struct {
	Language          string `hcl:"language,optional"`
	WordList          string `hcl:"word_list,optional"`
	Dictionary        string `hcl:"dictionary,optional"`
	OnMissingWordList string `hcl:"on_missing_word_list,optional"`
	FallbackWord      string `hcl:"fallback_word,optional"`
	Seed              int64  `hcl:"seed,optional"`
}

// UISettings contains terminal interface settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	NoColor  bool   `hcl:"no_color,optional"`
}

// ServerSettings contains remote play server settings
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			Language:          dictionary.DefaultLanguage,
			OnMissingWordList: string(words.PolicyHalt),
			FallbackWord:      words.DefaultFallback,
		},
		UI: &UISettings{
			LogLevel: "warn",
			LogFile:  "wordscramble.log",
		},
		Server: &ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults, and so does any block or attribute left out of the file.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.UI == nil {
		c.UI = defaults.UI
	}
	if c.Server == nil {
		c.Server = defaults.Server
	}

	if c.Game.Language == "" {
		c.Game.Language = defaults.Game.Language
	}
	if c.Game.OnMissingWordList == "" {
		c.Game.OnMissingWordList = defaults.Game.OnMissingWordList
	}
	if c.Game.FallbackWord == "" {
		c.Game.FallbackWord = defaults.Game.FallbackWord
	}

	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}

	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaults.Server.LogLevel
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := dictionary.BaseLanguage(c.Game.Language); err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}
	if _, err := words.ParsePolicy(c.Game.OnMissingWordList); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	if _, err := ParseLogLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	return nil
}

// Policy returns the parsed missing word list policy.
func (c *Config) Policy() words.Policy {
	p, err := words.ParsePolicy(c.Game.OnMissingWordList)
	if err != nil {
		return words.PolicyHalt
	}
	return p
}

// ServerAddress returns the full server address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// ParseLogLevel maps a config level name to a log level.
func ParseLogLevel(level string) (log.Level, error) {
	switch level {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}
