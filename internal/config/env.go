package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides holds raw env values that take precedence over the file.
type envOverrides struct {
	Language          string `env:"WORDSCRAMBLE_LANGUAGE"`
	WordList          string `env:"WORDSCRAMBLE_WORD_LIST"`
	Dictionary        string `env:"WORDSCRAMBLE_DICTIONARY"`
	OnMissingWordList string `env:"WORDSCRAMBLE_ON_MISSING_WORD_LIST"`
	Seed              int64  `env:"WORDSCRAMBLE_SEED"`
	LogFile           string `env:"WORDSCRAMBLE_LOG_FILE"`
	ServerAddress     string `env:"WORDSCRAMBLE_SERVER_ADDRESS"`
	ServerPort        int    `env:"WORDSCRAMBLE_SERVER_PORT"`
}

// ApplyEnv overrides settings from WORDSCRAMBLE_* environment variables.
// Unset variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString(&c.Game.Language, o.Language)
	setString(&c.Game.WordList, o.WordList)
	setString(&c.Game.Dictionary, o.Dictionary)
	setString(&c.Game.OnMissingWordList, o.OnMissingWordList)
	setString(&c.UI.LogFile, o.LogFile)
	setString(&c.Server.Address, o.ServerAddress)
	if o.Seed != 0 {
		c.Game.Seed = o.Seed
	}
	if o.ServerPort != 0 {
		c.Server.Port = o.ServerPort
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
