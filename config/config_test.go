package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "ENRICH_TIMEOUT_SECONDS", "ENRICH_BATCH_LIMIT",
		"ARTICLE_SOURCE", "ASSET_SOURCE", "S3_BUCKET", "KAFKA_ENABLED", "KAFKA_BOOTSTRAP_SERVERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("port = %q; want %q", cfg.Port, DefaultPort)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Fatalf("timeout = %s; want 3s", cfg.Timeout())
	}
	if cfg.Articles.Source != SourceHTTP || cfg.Assets.Source != SourceHTTP {
		t.Fatalf("unexpected sources %q / %q", cfg.Articles.Source, cfg.Assets.Source)
	}
	if cfg.Kafka.Enabled {
		t.Fatal("kafka should be disabled by default")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "enricher.yaml")
	data := strings.TrimSpace(`
port: "9000"
timeout_seconds: 5
articles:
  source: redis
  redis_addr: redis:6379
assets:
  source: s3
  s3_bucket: media-manifests
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
`)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ENRICH_TIMEOUT_SECONDS", "2")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "broker:9093")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Fatalf("port = %q; want file value", cfg.Port)
	}
	if cfg.TimeoutSeconds != 2 {
		t.Fatalf("timeout = %d; env should win over file", cfg.TimeoutSeconds)
	}
	if cfg.Articles.Source != SourceRedis || cfg.Articles.RedisAddr != "redis:6379" {
		t.Fatalf("unexpected article source %+v", cfg.Articles)
	}
	if cfg.Articles.MongoDatabase != DefaultMongoDatabase {
		t.Fatal("fields absent from the file should keep defaults")
	}
	if cfg.Assets.S3Bucket != "media-manifests" {
		t.Fatalf("bucket = %q", cfg.Assets.S3Bucket)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "broker:9093" {
		t.Fatalf("brokers = %v; want env override", cfg.Kafka.Brokers)
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"static sources", func(c *Config) { c.Articles.Source, c.Assets.Source = SourceStatic, SourceStatic }, true},
		{"unknown article source", func(c *Config) { c.Articles.Source = "postgres" }, false},
		{"mongo assets unsupported", func(c *Config) { c.Assets.Source = SourceMongo }, false},
		{"s3 without bucket", func(c *Config) { c.Assets.Source = SourceS3 }, false},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, false},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled, c.Kafka.Brokers = true, nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v; want ok=%v", err, tt.ok)
			}
		})
	}
}
