// Package config loads runtime configuration for the expenses CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed EXPENSES_, falling back to a dotenv file
//     (./.env, or the path given with -env).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations are timex.Duration values, so "30s" and 30000000000 are both
// accepted:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "public_base_url": "http://localhost:5173",
//	  "google_client_id": "1234.apps.googleusercontent.com",
//	  "expiry_check_interval": "30s",
//	  "s3": {"bucket": "reports", "region": "eu-north-1"}
//	}
//
// The session timeout is fixed at 24h and is not read from any source.
package config
