// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Wordle     WordleConfig     `toml:"wordle"`
	Falling    FallingConfig    `toml:"falling"`
	Dictionary DictionaryConfig `toml:"dictionary"`
	TTS        TTSConfig        `toml:"tts"`
	Log        LogConfig        `toml:"log"`
	Serve      ServeConfig      `toml:"serve"`
}

// WordleConfig maps word-guess settings.
type WordleConfig struct {
	Lang   *string `toml:"lang"`
	MinLen *int    `toml:"min-len"`
	MaxLen *int    `toml:"max-len"`
}

// FallingConfig maps falling-words settings.
type FallingConfig struct {
	Lang          *string  `toml:"lang"`
	Lives         *int     `toml:"lives"`
	MinSpeed      *float64 `toml:"min-speed"`
	MaxSpeed      *float64 `toml:"max-speed"`
	Spacing       *float64 `toml:"spacing"`
	CollectorStep *float64 `toml:"collector-step"`
}

// DictionaryConfig maps dictionary source settings.
type DictionaryConfig struct {
	Source     *string `toml:"source"`
	SourceLang *string `toml:"source-lang"`
	TargetLang *string `toml:"target-lang"`
}

// TTSConfig maps text-to-speech settings.
type TTSConfig struct {
	Enabled *bool   `toml:"enabled"`
	URL     *string `toml:"url"`
	Voice   *string `toml:"voice"`
	Timeout *string `toml:"timeout"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	Path  *string `toml:"path"`
}

// ServeConfig maps dictionary server settings.
type ServeConfig struct {
	Addr       *string  `toml:"addr"`
	RPS        *float64 `toml:"rps"`
	Burst      *int     `toml:"burst"`
	TrustProxy *bool    `toml:"trust-proxy"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
