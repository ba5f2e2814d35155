package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataProvider != "yahoo" {
		t.Errorf("default provider = %q, want yahoo", cfg.DataProvider)
	}
	if !cfg.CacheEnabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.ResultsDir == "" || cfg.DataCacheDir == "" {
		t.Error("directory defaults not populated")
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RESULTS_DIR", filepath.Join(dir, "results"))
	t.Setenv("DATA_PROVIDER", "Finnhub")
	t.Setenv("LEVLAB_FINNHUB_API_KEY", "test-key")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("LEVLAB_DEBUG", "true")

	cfg := DefaultConfig()

	if cfg.ResultsDir != filepath.Join(dir, "results") {
		t.Errorf("results dir = %q", cfg.ResultsDir)
	}
	if cfg.ChartsDir != filepath.Join(dir, "results", "charts") {
		t.Errorf("charts dir should follow results dir, got %q", cfg.ChartsDir)
	}
	if cfg.DataProvider != "finnhub" {
		t.Errorf("provider = %q, want finnhub (normalized)", cfg.DataProvider)
	}
	if cfg.FinnhubAPIKey != "test-key" {
		t.Errorf("api key = %q", cfg.FinnhubAPIKey)
	}
	if cfg.CacheEnabled {
		t.Error("cache override not applied")
	}
	if !cfg.Debug {
		t.Error("debug override not applied")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RESULTS_DIR", filepath.Join(dir, "results"))
	t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("DATA_CACHE_DIR", filepath.Join(dir, "data", "cache"))

	cfg := DefaultConfig()
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
}
