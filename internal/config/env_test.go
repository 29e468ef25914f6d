package config

import (
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/talgya/hexworks/internal/registry"
)

type envTestConfig struct {
	Port int `env:"HEXWORKS_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("HEXWORKS_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ContentRoot != "resources" || cfg.Namespace != "hexworks" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Locale.String() != "en-US" {
		t.Fatalf("locale = %v", cfg.Locale)
	}
	if cfg.Duplicates != registry.OverwriteDuplicates || cfg.Strict {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.MapRadius != 8 || cfg.Seed != 42 || cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HEXWORKS_CONTENT_ROOT", "/srv/content")
	t.Setenv("HEXWORKS_LOCALE", "de-DE")
	t.Setenv("HEXWORKS_DUPLICATES", "reject")
	t.Setenv("HEXWORKS_STRICT", "true")
	t.Setenv("HEXWORKS_MAP_RADIUS", "3")
	t.Setenv("HEXWORKS_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale.String() != language.MustParse("de-DE").String() {
		t.Fatalf("locale = %v", cfg.Locale)
	}
	if cfg.Duplicates != registry.RejectDuplicates || !cfg.Strict || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("cfg = %+v", cfg)
	}

	rc := cfg.Resource()
	if rc.Root != "/srv/content" || rc.Duplicates != registry.RejectDuplicates || rc.CheckFunction != nil {
		t.Fatalf("resource config = %+v", rc)
	}
	if gen := cfg.Generation(); gen.Radius != 3 || gen.Seed != 42 {
		t.Fatalf("generation = %+v", gen)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for key, value := range map[string]string{
		"HEXWORKS_DUPLICATES": "merge",
		"HEXWORKS_MAP_RADIUS": "-1",
		"HEXWORKS_LOCALE":     "not a locale!",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%q accepted", key, value)
			}
		})
	}
}
