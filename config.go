package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL   = "http://www.sokolskuhrov.cz"
	defaultUserAgent = "Mozilla/5.0 (compatible; SokolSkuhrov-Migration/1.0)"
	defaultDelay     = "1s"
	defaultWorkers   = 2
	defaultMaxPages  = 100
)

// Settings represents the YAML configuration for a migration run.
type Settings struct {
	BaseURL      string `yaml:"base_url"`
	UserAgent    string `yaml:"user_agent"`
	RequestDelay string `yaml:"request_delay"` // Go duration, e.g. "1s"
	Workers      int    `yaml:"workers"`
	MaxPages     int    `yaml:"max_pages"`
}

// Delay returns the inter-request delay, defaulting to one second when the
// configured value does not parse.
func (s *Settings) Delay() time.Duration {
	d, err := time.ParseDuration(s.RequestDelay)
	if err != nil {
		return time.Second
	}
	return d
}

func defaultSettings() *Settings {
	return &Settings{
		BaseURL:      defaultBaseURL,
		UserAgent:    defaultUserAgent,
		RequestDelay: defaultDelay,
		Workers:      defaultWorkers,
		MaxPages:     defaultMaxPages,
	}
}

// loadSettings reads settings from path, falling back to the defaults when
// the file does not exist.
func loadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultSettings(), nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	settings := defaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	if settings.Workers < 1 {
		log.Printf("Warning: workers is %d, defaulting to 1 (minimum)", settings.Workers)
		settings.Workers = 1
	}
	if settings.MaxPages < 1 {
		log.Printf("Warning: max_pages is %d, defaulting to %d", settings.MaxPages, defaultMaxPages)
		settings.MaxPages = defaultMaxPages
	}

	return settings, nil
}

// getConfigPath returns the path to a config file in the .scrape directory.
func getConfigPath(filename string) string {
	return filepath.Join(".scrape", filename)
}
