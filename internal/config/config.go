package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds directory layout and data-provider settings. Values come
// from defaults, then a .env file, then process environment variables.
type Config struct {
	ProjectDir   string `json:"project_dir"`
	ResultsDir   string `json:"results_dir"`
	ChartsDir    string `json:"charts_dir"`
	DataDir      string `json:"data_dir"`
	DataCacheDir string `json:"data_cache_dir"`
	RunDBPath    string `json:"run_db_path"`

	// DataProvider selects the market-data backend: "yahoo" or "finnhub".
	DataProvider  string `json:"data_provider"`
	FinnhubAPIKey string `json:"finnhub_api_key"`

	CacheEnabled bool `json:"cache_enabled"`
	Debug        bool `json:"debug"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir:   currentDir,
		ResultsDir:   filepath.Join(currentDir, "results"),
		ChartsDir:    filepath.Join(currentDir, "results", "charts"),
		DataDir:      filepath.Join(currentDir, "data"),
		DataCacheDir: filepath.Join(currentDir, "data", "cache"),
		RunDBPath:    filepath.Join(currentDir, "data", "levlab.db"),

		DataProvider: "yahoo",

		CacheEnabled: true,
		Debug:        false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("RESULTS_DIR"); val != "" {
		c.ResultsDir = val
		c.ChartsDir = filepath.Join(val, "charts")
	}
	if val := os.Getenv("CHARTS_DIR"); val != "" {
		c.ChartsDir = val
	}
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.DataDir = val
		c.RunDBPath = filepath.Join(val, "levlab.db")
	}
	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}
	if val := os.Getenv("LEVLAB_RUN_DB"); val != "" {
		c.RunDBPath = val
	}

	if val := os.Getenv("DATA_PROVIDER"); val != "" {
		c.DataProvider = strings.ToLower(strings.TrimSpace(val))
	}
	if val := os.Getenv("LEVLAB_FINNHUB_API_KEY"); val != "" {
		c.FinnhubAPIKey = val
	}

	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if cache, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = cache
		}
	}
	if val := os.Getenv("LEVLAB_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ResultsDir, c.ChartsDir, c.DataDir, c.DataCacheDir}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}
