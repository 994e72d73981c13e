package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configDirEnvKey, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("expected default api url, got %q", cfg.APIURL)
	}
	if cfg.DBPath == "" {
		t.Fatal("expected db path default to cwd")
	}
	if cfg.BlobRoot == "" {
		t.Fatal("expected blob root default to cwd")
	}
	if cfg.PublicBaseURL != DefaultAPIURL {
		t.Fatalf("expected public base url to fall back to api url, got %q", cfg.PublicBaseURL)
	}
	if cfg.Uploads.MaxBytes != DefaultUploadMaxBytes {
		t.Fatalf("expected default upload limit, got %d", cfg.Uploads.MaxBytes)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
}

func TestLogLevelEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(logLevelEnvKey, "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env log level, got %q", cfg.LogLevel)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	content := `
api_url = "http://vault.example:9000"
db_path = "/var/lib/docvault/docvault.db"
blob_root = "/var/lib/docvault/blobs"
public_base_url = "https://vault.example/"

[uploads]
max_bytes = 1048576
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configDirEnvKey, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://vault.example:9000" {
		t.Fatalf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.DBPath != "/var/lib/docvault/docvault.db" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.BlobRoot != "/var/lib/docvault/blobs" {
		t.Fatalf("unexpected blob root %q", cfg.BlobRoot)
	}
	if cfg.PublicBaseURL != "https://vault.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.PublicBaseURL)
	}
	if cfg.Uploads.MaxBytes != 1048576 {
		t.Fatalf("unexpected upload limit %d", cfg.Uploads.MaxBytes)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(`api_url = "http://from-file:1"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(apiURLEnvKey, "http://from-env:2")
	t.Setenv(dbPathEnvKey, "/tmp/env.db")
	t.Setenv(blobRootEnvKey, "/tmp/env-blobs")
	t.Setenv(uploadMaxBytesEnvKey, "2048")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://from-env:2" {
		t.Fatalf("expected env to win, got %q", cfg.APIURL)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.BlobRoot != "/tmp/env-blobs" {
		t.Fatalf("unexpected blob root %q", cfg.BlobRoot)
	}
	if cfg.Uploads.MaxBytes != 2048 {
		t.Fatalf("unexpected upload limit %d", cfg.Uploads.MaxBytes)
	}
}

func TestLoadIgnoresBadUploadEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(uploadMaxBytesEnvKey, "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Uploads.MaxBytes != DefaultUploadMaxBytes {
		t.Fatalf("expected default limit for bad env, got %d", cfg.Uploads.MaxBytes)
	}
}

func TestSetKeyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)

	if err := SetKey(path, "api_url", "http://set:3"); err != nil {
		t.Fatalf("set api_url: %v", err)
	}
	if err := SetKey(path, "uploads.max_bytes", "4096"); err != nil {
		t.Fatalf("set uploads.max_bytes: %v", err)
	}

	t.Setenv(configDirEnvKey, dir)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://set:3" {
		t.Fatalf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Uploads.MaxBytes != 4096 {
		t.Fatalf("unexpected upload limit %d", cfg.Uploads.MaxBytes)
	}
}

func TestSetKeyRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	if err := SetKey(path, "nope", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestSetKeyRejectsBadUploadValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	if err := SetKey(path, "uploads.max_bytes", "-1"); err == nil {
		t.Fatal("expected error for non-positive limit")
	}
}

func TestGetKnownKeys(t *testing.T) {
	cfg := Default()
	for _, key := range AllowedKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
	}
	if _, err := cfg.Get("bogus"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestProjectConfigRequiresTrust(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(`api_url = "http://project:4"`), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load without trust: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("expected project config ignored, got %q", cfg.APIURL)
	}
	if cfg.TrustedProjectConfigPath != "" {
		t.Fatal("expected no trusted project config path")
	}

	t.Setenv(trustProjectConfigEnvKey, "1")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load with trust: %v", err)
	}
	if cfg.APIURL != "http://project:4" {
		t.Fatalf("expected project config honored, got %q", cfg.APIURL)
	}
	if cfg.TrustedProjectConfigPath == "" {
		t.Fatal("expected trusted project config path recorded")
	}
}
