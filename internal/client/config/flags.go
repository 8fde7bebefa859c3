package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/expenses/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags:
//
//	-a string   backend API base URL
//	-p string   public base URL used in share links
//	-g string   identity provider client id
//	-d string   SQLite database path
//	-i int      session expiry check interval (seconds)
//	-l string   log level
//	-o string   PDF export directory
//	-b string   S3 bucket for PDF exports
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-p", "-g", "-d", "-i", "-l", "-o", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.PublicBaseURL, "p", cfg.PublicBaseURL, "public base URL for share links")
	fs.StringVar(&cfg.IdentityClientID, "g", cfg.IdentityClientID, "identity provider client id")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	checkInterval := fs.Int("i", int(cfg.ExpiryCheckInterval.Seconds()), "session expiry check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "PDF export directory")
	fs.StringVar(&cfg.S3.Bucket, "b", cfg.S3.Bucket, "S3 bucket for PDF exports")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.ExpiryCheckInterval = time.Duration(*checkInterval) * time.Second
	return nil
}
