package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultHTTPTimeout = 30 * time.Second

// Config holds everything read from the key-value config file.
type Config struct {
	APIEndpoint string
	AuthToken   string
	CSVFilePath string

	// Optional. Empty disables the audit trail / metrics listener.
	AuditDBConn       string
	MetricsListenAddr string

	HTTPTimeout time.Duration
}

// LoadConfig reads a godotenv-style key=value file. api_endpoint,
// auth_token and csv_file_path are required; everything else has a
// default or is off when absent.
func LoadConfig(path string) (Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Config{
		APIEndpoint:       values["api_endpoint"],
		AuthToken:         values["auth_token"],
		CSVFilePath:       values["csv_file_path"],
		AuditDBConn:       values["audit_db_conn"],
		MetricsListenAddr: values["metrics_listen_addr"],
		HTTPTimeout:       defaultHTTPTimeout,
	}

	for _, req := range []struct{ key, val string }{
		{"api_endpoint", cfg.APIEndpoint},
		{"auth_token", cfg.AuthToken},
		{"csv_file_path", cfg.CSVFilePath},
	} {
		if req.val == "" {
			return Config{}, fmt.Errorf("config file %s: %s is required", path, req.key)
		}
	}

	if raw, ok := values["http_timeout_seconds"]; ok && raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("config file %s: invalid http_timeout_seconds %q", path, raw)
		}
		cfg.HTTPTimeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}
