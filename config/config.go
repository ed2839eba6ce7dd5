// Package config provides the deployment configuration for the medscan-sheets
// gateway: a YAML file with .env/environment overrides, so that the gateway
// and the separately hosted OCR front-end can share a single .env.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

// Config holds the gateway configuration.
type Config struct {
	// HTTP server configuration
	HTTP HTTPConfig `json:"http" yaml:"http"`

	// Sheets is the spreadsheet backing the row store
	Sheets SheetsConfig `json:"sheets" yaml:"sheets"`

	// OCR holds the front-end passthrough values (not used by the gateway
	// itself, carried so one .env can configure both processes)
	OCR OCRConfig `json:"ocr" yaml:"ocr"`

	// Debug enables debug logging
	Debug bool `json:"debug" yaml:"debug"`
}

// HTTPConfig holds the gateway HTTP server configuration.
type HTTPConfig struct {
	// Addr is the listen address for the append/read endpoint
	Addr string `json:"addr" yaml:"addr"`
}

// SheetsConfig identifies the spreadsheet and the credentials to reach it.
type SheetsConfig struct {
	// URL is the spreadsheet URL (or a bare spreadsheet ID)
	URL string `json:"url" yaml:"url"`

	// Worksheet is the tab holding the vitals table
	Worksheet string `json:"worksheet" yaml:"worksheet"`

	// Credentials is the path to the Google API 'credentials.json' file
	Credentials string `json:"credentials" yaml:"credentials"`

	// Workdir is the directory for working files (cached OAuth tokens)
	Workdir string `json:"workdir" yaml:"workdir"`
}

// OCRConfig holds the OCR provider settings for the front-end deployment.
type OCRConfig struct {
	// APIKey is the OCR.space API key
	APIKey string `json:"api_key" yaml:"api_key"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr: ":5000",
		},
		Sheets: SheetsConfig{
			Worksheet:   "Vitals",
			Credentials: "/usr/local/etc/medscan/.google/credentials.json",
			Workdir:     "/usr/local/etc/medscan",
		},
	}
}

// Load reads the configuration from an optional YAML file, layered over the
// defaults, then applies .env and environment variable overrides. A missing
// .env file is not an error.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	godotenv.Load()

	if strings.TrimSpace(path) != "" {
		bytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read configuration file '%s' (%v)", path, err)
		}

		if err := yaml.Unmarshal(bytes, config); err != nil {
			return nil, fmt.Errorf("unable to parse configuration file '%s' (%v)", path, err)
		}
	}

	config.applyEnv()

	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.HTTP.Addr = ":" + v
	}

	if v := os.Getenv("GATEWAY_ADDR"); v != "" {
		c.HTTP.Addr = v
	}

	if v := os.Getenv("SHEET_ID"); v != "" {
		c.Sheets.URL = v
	}

	if v := os.Getenv("SHEET_URL"); v != "" {
		c.Sheets.URL = v
	}

	if v := os.Getenv("SHEET_WORKSHEET"); v != "" {
		c.Sheets.Worksheet = v
	}

	if v := os.Getenv("GOOGLE_CREDENTIALS"); v != "" {
		c.Sheets.Credentials = v
	}

	if v := os.Getenv("MEDSCAN_WORKDIR"); v != "" {
		c.Sheets.Workdir = v
	}

	if v := os.Getenv("OCR_API_KEY"); v != "" {
		c.OCR.APIKey = v
	}

	if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		c.Debug = true
	}
}

// SpreadsheetId resolves the configured URL to a spreadsheet ID. A bare ID is
// accepted as-is.
func (c *Config) SpreadsheetId() (string, error) {
	v := strings.TrimSpace(c.Sheets.URL)
	if v == "" {
		return "", fmt.Errorf("missing spreadsheet URL/ID")
	}

	if match := spreadsheetURL.FindStringSubmatch(v); len(match) > 1 {
		return match[1], nil
	}

	if strings.Contains(v, "/") {
		return "", fmt.Errorf("invalid spreadsheet URL '%s' - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'", v)
	}

	return v, nil
}

// EditURL returns the spreadsheet edit URL for the configured spreadsheet, or
// an empty string if none is configured.
func (c *Config) EditURL() string {
	id, err := c.SpreadsheetId()
	if err != nil {
		return ""
	}

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", id)
}
