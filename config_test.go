package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, "api_endpoint=https://zabbix.example.com/api_jsonrpc.php\n"+
		"auth_token=secret\n"+
		"csv_file_path=/data/sites.csv\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://zabbix.example.com/api_jsonrpc.php", cfg.APIEndpoint)
	assert.Equal(t, "secret", cfg.AuthToken)
	assert.Equal(t, "/data/sites.csv", cfg.CSVFilePath)
	assert.Equal(t, defaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Empty(t, cfg.AuditDBConn)
	assert.Empty(t, cfg.MetricsListenAddr)
}

func TestLoadConfigOptionalKeys(t *testing.T) {
	path := writeTempConfig(t, "api_endpoint=https://zabbix.example.com\n"+
		"auth_token=secret\n"+
		"csv_file_path=/data/sites.csv\n"+
		"audit_db_conn=postgres://audit\n"+
		"metrics_listen_addr=:9410\n"+
		"http_timeout_seconds=5\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://audit", cfg.AuditDBConn)
	assert.Equal(t, ":9410", cfg.MetricsListenAddr)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfigMissingRequiredKey(t *testing.T) {
	path := writeTempConfig(t, "api_endpoint=https://zabbix.example.com\n"+
		"csv_file_path=/data/sites.csv\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth_token")
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	path := writeTempConfig(t, "api_endpoint=https://zabbix.example.com\n"+
		"auth_token=secret\n"+
		"csv_file_path=/data/sites.csv\n"+
		"http_timeout_seconds=soon\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http_timeout_seconds")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}
