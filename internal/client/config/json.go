package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/expenses/internal/flagx"
	"github.com/dmitrijs2005/expenses/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept either strings like "30s" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	PublicBaseURL       string         `json:"public_base_url"`
	IdentityClientID    string         `json:"google_client_id"`
	DatabasePath        string         `json:"database_path"`
	ExpiryCheckInterval timex.Duration `json:"expiry_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	LogLevel            string         `json:"log_level"`
	Currency            string         `json:"currency"`
	ExportDir           string         `json:"export_dir"`
	S3                  *JsonS3        `json:"s3"`
}

type JsonS3 struct {
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint"`
	Prefix          string `json:"prefix"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Only
// fields present in the file replace what earlier stages set.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.PublicBaseURL, jc.PublicBaseURL)
	setString(&cfg.IdentityClientID, jc.IdentityClientID)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.Currency, jc.Currency)
	setString(&cfg.ExportDir, jc.ExportDir)
	setDuration(&cfg.ExpiryCheckInterval, jc.ExpiryCheckInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)

	if jc.S3 != nil {
		setString(&cfg.S3.Bucket, jc.S3.Bucket)
		setString(&cfg.S3.Region, jc.S3.Region)
		setString(&cfg.S3.Endpoint, jc.S3.Endpoint)
		setString(&cfg.S3.Prefix, jc.S3.Prefix)
		setString(&cfg.S3.AccessKeyID, jc.S3.AccessKeyID)
		setString(&cfg.S3.SecretAccessKey, jc.S3.SecretAccessKey)
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
