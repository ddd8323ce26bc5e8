package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ArticleSourceConfig selects and configures the article repository
type ArticleSourceConfig struct {
	Source          string `yaml:"source"`
	APIURL          string `yaml:"api_url"`
	RedisAddr       string `yaml:"redis_addr"`
	RedisPassword   string `yaml:"redis_password"`
	RedisDB         int    `yaml:"redis_db"`
	RedisKeyPrefix  string `yaml:"redis_key_prefix"`
	MongoURI        string `yaml:"mongo_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`
}

// AssetSourceConfig selects and configures the asset service
type AssetSourceConfig struct {
	Source         string `yaml:"source"`
	APIURL         string `yaml:"api_url"`
	S3Bucket       string `yaml:"s3_bucket"`
	S3Prefix       string `yaml:"s3_prefix"`
	S3Region       string `yaml:"s3_region"`
	S3Profile      string `yaml:"s3_profile"`
	S3UsePathStyle bool   `yaml:"s3_use_path_style"`
}

// KafkaConfig configures the optional enrichment worker
type KafkaConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Brokers       []string `yaml:"brokers"`
	RequestsTopic string   `yaml:"requests_topic"`
	ResultsTopic  string   `yaml:"results_topic"`
	GroupID       string   `yaml:"group_id"`
}

// Config is the full service configuration
type Config struct {
	Port           string              `yaml:"port"`
	TimeoutSeconds int                 `yaml:"timeout_seconds"`
	BatchLimit     int                 `yaml:"batch_limit"`
	StaticCatalog  string              `yaml:"static_catalog"`
	Articles       ArticleSourceConfig `yaml:"articles"`
	Assets         AssetSourceConfig   `yaml:"assets"`
	Kafka          KafkaConfig         `yaml:"kafka"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Port:           DefaultPort,
		TimeoutSeconds: DefaultTimeoutSeconds,
		BatchLimit:     DefaultBatchLimit,
		StaticCatalog:  DefaultStaticCatalog,
		Articles: ArticleSourceConfig{
			Source:          SourceHTTP,
			APIURL:          DefaultArticleAPIURL,
			RedisAddr:       DefaultRedisAddr,
			RedisKeyPrefix:  DefaultRedisKeyPrefix,
			MongoURI:        DefaultMongoURI,
			MongoDatabase:   DefaultMongoDatabase,
			MongoCollection: DefaultMongoCollection,
		},
		Assets: AssetSourceConfig{
			Source: SourceHTTP,
			APIURL: DefaultAssetAPIURL,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(DefaultKafkaBrokers, ","),
			RequestsTopic: DefaultRequestsTopic,
			ResultsTopic:  DefaultResultsTopic,
			GroupID:       DefaultConsumerGroup,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables. A .env file is loaded
// first when present.
func Load() (Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Port, "PORT")
	setInt(&c.TimeoutSeconds, "ENRICH_TIMEOUT_SECONDS")
	setInt(&c.BatchLimit, "ENRICH_BATCH_LIMIT")
	setString(&c.StaticCatalog, "STATIC_CATALOG")

	setString(&c.Articles.Source, "ARTICLE_SOURCE")
	setString(&c.Articles.APIURL, "ARTICLE_API_URL")
	setString(&c.Articles.RedisAddr, "REDIS_ADDR")
	setString(&c.Articles.RedisPassword, "REDIS_PASS")
	setInt(&c.Articles.RedisDB, "REDIS_DB")
	setString(&c.Articles.RedisKeyPrefix, "REDIS_KEY_PREFIX")
	setString(&c.Articles.MongoURI, "MONGO_URI")
	setString(&c.Articles.MongoDatabase, "MONGO_DATABASE")
	setString(&c.Articles.MongoCollection, "MONGO_COLLECTION")

	setString(&c.Assets.Source, "ASSET_SOURCE")
	setString(&c.Assets.APIURL, "ASSET_API_URL")
	setString(&c.Assets.S3Bucket, "S3_BUCKET")
	setString(&c.Assets.S3Prefix, "S3_PREFIX")
	setString(&c.Assets.S3Region, "S3_REGION")
	setString(&c.Assets.S3Profile, "S3_PROFILE")
	setBool(&c.Assets.S3UsePathStyle, "S3_USE_PATH_STYLE")

	setBool(&c.Kafka.Enabled, "KAFKA_ENABLED")
	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BOOTSTRAP_SERVERS")); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
	setString(&c.Kafka.RequestsTopic, "KAFKA_TOPIC_ENRICH_REQUESTS")
	setString(&c.Kafka.ResultsTopic, "KAFKA_TOPIC_ENRICH_RESULTS")
	setString(&c.Kafka.GroupID, "KAFKA_CONSUMER_GROUP_ID")
}

// Validate checks source names and numeric bounds
func (c Config) Validate() error {
	switch c.Articles.Source {
	case SourceHTTP, SourceRedis, SourceMongo, SourceStatic:
	default:
		return fmt.Errorf("unknown article source %q", c.Articles.Source)
	}
	switch c.Assets.Source {
	case SourceHTTP, SourceS3, SourceStatic:
	default:
		return fmt.Errorf("unknown asset source %q", c.Assets.Source)
	}
	if c.Assets.Source == SourceS3 && c.Assets.S3Bucket == "" {
		return fmt.Errorf("asset source %q requires S3_BUCKET", SourceS3)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d seconds", c.TimeoutSeconds)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka enabled without brokers")
	}
	return nil
}

// Timeout is the per-lookup bound
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
