package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParse(t *testing.T) {
	cfg, err := Parse("test.toml", []byte(`
language = "fr-FR"
log_level = "debug"
enchant_library = "/opt/lib/libenchant-2.so.2"
wasm_module = "hunspell.wasm"
memory_limit_pages = 512
dictionary_dir = "/usr/share/hunspell"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Config{
		Language:         "fr-FR",
		LogLevel:         "debug",
		EnchantLibrary:   "/opt/lib/libenchant-2.so.2",
		WasmModule:       "hunspell.wasm",
		MemoryLimitPages: 512,
		DictionaryDir:    "/usr/share/hunspell",
	}
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
	if level, _ := cfg.Level(); level != zapcore.DebugLevel {
		t.Fatalf("Level = %v", level)
	}
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg, err := Parse("test.toml", []byte(`wasm_module = "a.wasm"`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Language != "en-US" || cfg.LogLevel != "warn" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `language = `},
		{"unknown key", `langauge = "en-US"`},
		{"wrong type", `memory_limit_pages = "many"`},
		{"bad level", `log_level = "loud"`},
		{"empty language", `language = ""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.toml", []byte(tt.data))
			var pe *ParseError
			if !stderrors.As(err, &pe) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if pe.Path != "bad.toml" {
				t.Fatalf("Path = %q", pe.Path)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spellcheck.toml")
	if err := os.WriteFile(path, []byte(`language = "de-DE"`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != "de-DE" {
		t.Fatalf("Language = %q", cfg.Language)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.toml")
	if err := os.WriteFile(path, []byte(`log_level = "error"`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_NoPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	if err != nil || cfg != Default() {
		t.Fatalf("Load = %+v, %v", cfg, err)
	}
}
