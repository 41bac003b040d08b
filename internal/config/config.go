package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "https://api.carbonintensity.org.uk/intensity"
	DefaultChunkDays    = 30
	DefaultPause        = 900 * time.Millisecond
	DefaultTimeout      = 30 * time.Second
	DefaultRawDir       = "data/raw"
	DefaultProcessedDir = "data/processed"
	DefaultPort         = "8501"
)

// DefaultSearchDirs are the processed-snapshot locations the dashboard checks, in order.
var DefaultSearchDirs = []string{"data/processed", "notebooks/data/processed"}

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

type FetcherConfig struct {
	BaseURL string `yaml:"base_url"`
	// Upstream limit on how much time one request may cover.
	ChunkDays int `yaml:"chunk_days"`
	// Courtesy pause after each chunk request, e.g. "900ms".
	Pause        time.Duration `yaml:"pause"`
	Timeout      time.Duration `yaml:"timeout"`
	RawDir       string        `yaml:"raw_dir"`
	ProcessedDir string        `yaml:"processed_dir"`
}

type DashboardConfig struct {
	Port           string   `yaml:"port"`
	SearchDirs     []string `yaml:"search_dirs"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Fetcher: FetcherConfig{
			BaseURL:      DefaultBaseURL,
			ChunkDays:    DefaultChunkDays,
			Pause:        DefaultPause,
			Timeout:      DefaultTimeout,
			RawDir:       DefaultRawDir,
			ProcessedDir: DefaultProcessedDir,
		},
		Dashboard: DashboardConfig{
			Port:       DefaultPort,
			SearchDirs: append([]string(nil), DefaultSearchDirs...),
		},
	}
}

// Load builds the effective config: defaults, then the YAML file (if path is
// non-empty), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		fileCfg, err := LoadUnchecked(path)
		if err != nil {
			return nil, err
		}
		c = Merge(c, fileCfg)
	}
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads a YAML config without applying defaults or validation.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &c, nil
}

// LoadEnv loads a .env file from the working directory when one exists.
// A missing file is not an error.
func LoadEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// ApplyEnv overlays environment variables onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CI_API_BASE_URL"); v != "" {
		c.Fetcher.BaseURL = v
	}
	if v := os.Getenv("CI_PAUSE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Fetcher.Pause = d
		}
	}
	if v := os.Getenv("API_PORT"); v != "" {
		c.Dashboard.Port = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.Dashboard.AllowedOrigins = splitList(v)
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.Fetcher.BaseURL) == "" {
		return errors.New("fetcher.base_url is required")
	}
	if c.Fetcher.ChunkDays <= 0 {
		return fmt.Errorf("fetcher.chunk_days must be positive, got %d", c.Fetcher.ChunkDays)
	}
	if c.Fetcher.Pause < 0 {
		return fmt.Errorf("fetcher.pause must not be negative, got %s", c.Fetcher.Pause)
	}
	if c.Fetcher.RawDir == "" || c.Fetcher.ProcessedDir == "" {
		return errors.New("fetcher.raw_dir and fetcher.processed_dir are required")
	}
	if len(c.Dashboard.SearchDirs) == 0 {
		return errors.New("dashboard.search_dirs must list at least one directory")
	}
	return nil
}

// ChunkSize is the fetch window length as a duration.
func (f FetcherConfig) ChunkSize() time.Duration {
	return time.Duration(f.ChunkDays) * 24 * time.Hour
}

// Merge overlays non-zero fields from override onto base.
func Merge(base, override *Config) *Config {
	out := *base
	out.Dashboard.SearchDirs = append([]string(nil), base.Dashboard.SearchDirs...)
	if override == nil {
		return &out
	}
	f := override.Fetcher
	if f.BaseURL != "" {
		out.Fetcher.BaseURL = f.BaseURL
	}
	if f.ChunkDays != 0 {
		out.Fetcher.ChunkDays = f.ChunkDays
	}
	// Note: a zero pause can't be expressed in YAML this way; use CI_PAUSE=0s or --pause 0s.
	if f.Pause != 0 {
		out.Fetcher.Pause = f.Pause
	}
	if f.Timeout != 0 {
		out.Fetcher.Timeout = f.Timeout
	}
	if f.RawDir != "" {
		out.Fetcher.RawDir = f.RawDir
	}
	if f.ProcessedDir != "" {
		out.Fetcher.ProcessedDir = f.ProcessedDir
	}
	d := override.Dashboard
	if d.Port != "" {
		out.Dashboard.Port = d.Port
	}
	if len(d.SearchDirs) > 0 {
		out.Dashboard.SearchDirs = append([]string(nil), d.SearchDirs...)
	}
	if len(d.AllowedOrigins) > 0 {
		out.Dashboard.AllowedOrigins = append([]string(nil), d.AllowedOrigins...)
	}
	return &out
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
