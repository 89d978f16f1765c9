package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
server:
  host: 127.0.0.1
  port: 8080
database:
  host: localhost
  port: 5432
  user: app
  password: secret
  dbname: events
  sslmode: disable
aws:
  region: us-east-1
  s3_bucket: media-bucket
auth:
  client_id: client-123.apps.googleusercontent.com
session:
  secret: hush
  ttl_days: 7
cors:
  allowed_origins:
    - http://localhost:3000
    - http://localhost:5173
cache:
  ttl_minutes: 5
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "media-bucket", cfg.AWS.S3Bucket)
	assert.Equal(t, "https://accounts.google.com", cfg.Auth.IssuerURL)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
	assert.Len(t, cfg.CORS.AllowedOrigins, 2)
	assert.Equal(t,
		"host=localhost port=5432 user=app password=secret dbname=events sslmode=disable",
		cfg.Database.DSN())
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
