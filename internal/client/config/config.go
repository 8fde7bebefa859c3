package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/expenses/internal/common"
)

// S3 describes the optional bucket exported PDFs are uploaded to. An empty
// Bucket means exports stay on the local disk.
type S3 struct {
	Bucket          string
	Region          string
	Endpoint        string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

func (s S3) Enabled() bool {
	return s.Bucket != ""
}

// Config holds runtime settings for the expenses CLI.
type Config struct {
	APIBaseURL       string
	PublicBaseURL    string
	IdentityClientID string
	DatabasePath     string

	SessionTimeout      time.Duration
	ExpiryCheckInterval time.Duration
	RequestTimeout      time.Duration

	LogLevel  string
	Currency  string
	ExportDir string
	S3        S3
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.PublicBaseURL = "http://localhost:5173"
	c.DatabasePath = "expenses.db"
	c.SessionTimeout = common.SessionTimeout
	c.ExpiryCheckInterval = common.ExpiryCheckInterval
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.Currency = "USD"
	c.ExportDir = "exports"
}

// Load builds a Config from defaults, the environment (including a dotenv
// file), an optional JSON file and finally args. Later sources take
// precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on invalid input since there is
// nothing sensible to run without a configuration.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
