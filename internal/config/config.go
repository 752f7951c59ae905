// Package config provides runtime configuration for the storefront:
// defaults, an optional YAML file, then environment overrides, in that
// order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"vitrineshop.org/vitrine-web/internal/viewport"
)

// Breakpoint is one row of the viewport table in the config file.
type Breakpoint struct {
	MinWidth int `yaml:"min_width"`
	PageSize int `yaml:"page_size"`
}

type fileConfig struct {
	Addr             string       `yaml:"addr"`
	CatalogBaseURL   string       `yaml:"catalog_base_url"`
	StateDir         string       `yaml:"state_dir"`
	TemplatesDir     string       `yaml:"templates_dir"`
	PublicDir        string       `yaml:"public_dir"`
	DebounceMs       int          `yaml:"debounce_ms"`
	WriteDelayMs     int          `yaml:"write_delay_ms"`
	CheckoutDelayMs  int          `yaml:"checkout_delay_ms"`
	SuggestLimit     int          `yaml:"suggest_limit"`
	DefaultWidth     int          `yaml:"default_width"`
	Breakpoints      []Breakpoint `yaml:"breakpoints"`
	FallbackPageSize int          `yaml:"fallback_page_size"`
}

// Config holds the resolved configuration.
type Config struct {
	Addr           string
	CatalogBaseURL string
	StateDir       string
	TemplatesDir   string
	PublicDir      string
	DebounceWindow time.Duration
	WriteDelay     time.Duration
	CheckoutDelay  time.Duration
	SuggestLimit   int
	DefaultWidth   int
	Viewport       viewport.Resolver
}

// Load resolves configuration. path may be empty; a missing file at an
// explicit path is an error, otherwise defaults apply.
func Load(path string) (Config, error) {
	cfg := Config{
		Addr:           ":8080",
		CatalogBaseURL: "https://dummyjson.com",
		StateDir:       "state",
		TemplatesDir:   "templates",
		PublicDir:      "public",
		DebounceWindow: 200 * time.Millisecond,
		WriteDelay:     100 * time.Millisecond,
		CheckoutDelay:  2 * time.Second,
		SuggestLimit:   8,
		DefaultWidth:   1300,
		Viewport:       viewport.Default(),
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		applyFile(&cfg, fc)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.CatalogBaseURL != "" {
		cfg.CatalogBaseURL = fc.CatalogBaseURL
	}
	if fc.StateDir != "" {
		cfg.StateDir = fc.StateDir
	}
	if fc.TemplatesDir != "" {
		cfg.TemplatesDir = fc.TemplatesDir
	}
	if fc.PublicDir != "" {
		cfg.PublicDir = fc.PublicDir
	}
	if fc.DebounceMs > 0 {
		cfg.DebounceWindow = time.Duration(fc.DebounceMs) * time.Millisecond
	}
	if fc.WriteDelayMs > 0 {
		cfg.WriteDelay = time.Duration(fc.WriteDelayMs) * time.Millisecond
	}
	if fc.CheckoutDelayMs > 0 {
		cfg.CheckoutDelay = time.Duration(fc.CheckoutDelayMs) * time.Millisecond
	}
	if fc.SuggestLimit > 0 {
		cfg.SuggestLimit = fc.SuggestLimit
	}
	if fc.DefaultWidth > 0 {
		cfg.DefaultWidth = fc.DefaultWidth
	}
	if len(fc.Breakpoints) > 0 {
		table := make([]viewport.Breakpoint, 0, len(fc.Breakpoints))
		for _, bp := range fc.Breakpoints {
			table = append(table, viewport.Breakpoint{MinWidth: bp.MinWidth, PageSize: bp.PageSize})
		}
		cfg.Viewport.Breakpoints = table
	}
	if fc.FallbackPageSize > 0 {
		cfg.Viewport.Fallback = fc.FallbackPageSize
	}
}

func applyEnv(cfg *Config) {
	// PORT is honored for platform runners; VITRINE_ADDR wins when both set.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	cfg.Addr = getenv("VITRINE_ADDR", cfg.Addr)
	cfg.CatalogBaseURL = getenv("VITRINE_CATALOG_URL", cfg.CatalogBaseURL)
	cfg.StateDir = getenv("VITRINE_STATE_DIR", cfg.StateDir)
	cfg.TemplatesDir = getenv("VITRINE_TEMPLATES_DIR", cfg.TemplatesDir)
	cfg.PublicDir = getenv("VITRINE_PUBLIC_DIR", cfg.PublicDir)
	cfg.DebounceWindow = durenvms("VITRINE_DEBOUNCE_MS", cfg.DebounceWindow)
	cfg.WriteDelay = durenvms("VITRINE_WRITE_DELAY_MS", cfg.WriteDelay)
	cfg.CheckoutDelay = durenvms("VITRINE_CHECKOUT_DELAY_MS", cfg.CheckoutDelay)
	cfg.SuggestLimit = atoienv("VITRINE_SUGGEST_LIMIT", cfg.SuggestLimit)
	cfg.DefaultWidth = atoienv("VITRINE_DEFAULT_WIDTH", cfg.DefaultWidth)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func durenvms(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
