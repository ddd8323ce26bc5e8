package config

// Server Constants
const (
	// DefaultPort is the HTTP API port
	DefaultPort = "8080"

	// DefaultTimeoutSeconds bounds every individual upstream lookup
	DefaultTimeoutSeconds = 3

	// DefaultBatchLimit caps concurrent enrichments for one batch request
	DefaultBatchLimit = 8

	// MaxBatchSize is the largest number of ids accepted in one batch request
	MaxBatchSize = 100
)

// Source Constants
const (
	SourceHTTP   = "http"
	SourceRedis  = "redis"
	SourceMongo  = "mongo"
	SourceS3     = "s3"
	SourceStatic = "static"
)

// Upstream Defaults
const (
	DefaultArticleAPIURL = "http://article-repository:8080"
	DefaultAssetAPIURL   = "http://asset-service:8080"

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "article:"

	DefaultMongoURI        = "mongodb://localhost:27017"
	DefaultMongoDatabase   = "articles"
	DefaultMongoCollection = "article_references"

	DefaultStaticCatalog = "catalog.json"
)

// Kafka Constants
const (
	DefaultKafkaBrokers  = "localhost:9093"
	DefaultRequestsTopic = "article-enrich-requests"
	DefaultResultsTopic  = "article-enrich-results"
	DefaultConsumerGroup = "article-enricher-consumer-group"
)
