// Package config loads the spellcheck command's TOML configuration.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// EnvPath names the environment variable holding the default config path.
const EnvPath = "SPELLCHECK_CONFIG"

// Config is the command configuration.
type Config struct {
	// Language is the tag used when -lang is not given.
	Language string `toml:"language"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// EnchantLibrary overrides the libenchant name or path.
	EnchantLibrary string `toml:"enchant_library"`
	// WasmModule, when set, serves every platform from this guest module
	// instead of the native backend.
	WasmModule       string `toml:"wasm_module"`
	MemoryLimitPages uint32 `toml:"memory_limit_pages"`
	DictionaryDir    string `toml:"dictionary_dir"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Language: "en-US",
		LogLevel: "warn",
	}
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads the configuration at path. An empty path falls back to
// $SPELLCHECK_CONFIG. A missing file is not an error: defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML over the defaults. Unknown keys are rejected.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
