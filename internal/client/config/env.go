package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/expenses/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Environment variables understood by parseEnv.
const (
	EnvAPIBaseURL       = "EXPENSES_API_BASE_URL"
	EnvPublicBaseURL    = "EXPENSES_PUBLIC_BASE_URL"
	EnvIdentityClientID = "EXPENSES_GOOGLE_CLIENT_ID"
	EnvDatabasePath     = "EXPENSES_DB_PATH"
	EnvRequestTimeout   = "EXPENSES_REQUEST_TIMEOUT"
	EnvLogLevel         = "EXPENSES_LOG_LEVEL"
	EnvCurrency         = "EXPENSES_CURRENCY"
	EnvExportDir        = "EXPENSES_EXPORT_DIR"
	EnvS3Bucket         = "EXPENSES_S3_BUCKET"
	EnvS3Region         = "EXPENSES_S3_REGION"
	EnvS3Endpoint       = "EXPENSES_S3_ENDPOINT"
	EnvS3Prefix         = "EXPENSES_S3_PREFIX"
	EnvS3AccessKeyID    = "EXPENSES_S3_ACCESS_KEY_ID"
	EnvS3SecretKey      = "EXPENSES_S3_SECRET_ACCESS_KEY"
)

type lookupFunc func(key string) (string, bool)

// parseEnv overlays cfg with environment variables. Values from the dotenv
// file (-env, or ./.env when present) are used only where the process
// environment has no value of its own.
func parseEnv(cfg *Config, args []string, lookup lookupFunc) error {
	dotenv, err := readDotenv(flagx.EnvFileFlag(args))
	if err != nil {
		return err
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	fields := map[string]*string{
		EnvAPIBaseURL:       &cfg.APIBaseURL,
		EnvPublicBaseURL:    &cfg.PublicBaseURL,
		EnvIdentityClientID: &cfg.IdentityClientID,
		EnvDatabasePath:     &cfg.DatabasePath,
		EnvLogLevel:         &cfg.LogLevel,
		EnvCurrency:         &cfg.Currency,
		EnvExportDir:        &cfg.ExportDir,
		EnvS3Bucket:         &cfg.S3.Bucket,
		EnvS3Region:         &cfg.S3.Region,
		EnvS3Endpoint:       &cfg.S3.Endpoint,
		EnvS3Prefix:         &cfg.S3.Prefix,
		EnvS3AccessKeyID:    &cfg.S3.AccessKeyID,
		EnvS3SecretKey:      &cfg.S3.SecretAccessKey,
	}
	for key, dst := range fields {
		if v, ok := get(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := get(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = d
	}

	return nil
}

// readDotenv reads path, or the default file when path is empty. A missing
// default file is not an error; a missing explicit one is.
func readDotenv(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return values, nil
}
