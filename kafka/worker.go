// Package kafka serves enrichment requests arriving on a Kafka topic and
// publishes one result per request.
package kafka

import (
	"context"
	"log"
	"strings"

	"richarticles/enrichment"
	sharedKafka "richarticles/shared/kafka"
	"richarticles/types"
)

// Result statuses
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// EnrichRequest asks for one article to be enriched
type EnrichRequest struct {
	RequestID string `json:"request_id"`
	ArticleID string `json:"article_id"`
}

// EnrichResult carries either the article or the failure for one request
type EnrichResult struct {
	RequestID string             `json:"request_id"`
	ArticleID string             `json:"article_id"`
	Status    string             `json:"status"`
	Article   *types.RichArticle `json:"article,omitempty"`
	ErrorKind string             `json:"error_kind,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Enricher is the part of enrichment.Enricher the worker needs
type Enricher interface {
	EnrichArticle(ctx context.Context, articleID string) (*types.RichArticle, error)
}

// Publisher sends a JSON result keyed by article id
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// WorkerConfig holds the worker's Kafka settings
type WorkerConfig struct {
	Brokers       []string
	RequestsTopic string
	GroupID       string
	Enricher      Enricher
	Publisher     Publisher
}

// NewResult builds the result message for an enrichment outcome
func NewResult(req EnrichRequest, article *types.RichArticle, err error) EnrichResult {
	result := EnrichResult{
		RequestID: req.RequestID,
		ArticleID: req.ArticleID,
		Status:    StatusOK,
		Article:   article,
	}
	if err != nil {
		result.Status = StatusFailed
		result.Article = nil
		result.ErrorKind = enrichment.KindOf(err).String()
		result.Error = err.Error()
	}
	return result
}

// NewHandler returns the message handler that enriches each request and
// publishes its result. Enrichment failures are published and marked; a
// failed publish leaves the request unmarked for redelivery.
func NewHandler(enricher Enricher, publisher Publisher) *sharedKafka.TypedMessageHandler[EnrichRequest] {
	return &sharedKafka.TypedMessageHandler[EnrichRequest]{
		Validate: func(msg *EnrichRequest) bool {
			msg.ArticleID = strings.TrimSpace(msg.ArticleID)
			if msg.ArticleID == "" {
				log.Printf("❌ Enrich request %s missing article_id, skipping", msg.RequestID)
				return false
			}
			return true
		},
		Process: func(ctx context.Context, msg *EnrichRequest) error {
			log.Printf("🔎 Enriching article %s (request %s)", msg.ArticleID, msg.RequestID)

			article, err := enricher.EnrichArticle(ctx, msg.ArticleID)
			if err != nil && ctx.Err() != nil {
				// shutting down; leave the request for the next consumer
				return ctx.Err()
			}

			result := NewResult(*msg, article, err)
			if err := publisher.PublishJSON(ctx, msg.ArticleID, result); err != nil {
				log.Printf("❌ Failed to publish result for article %s: %v", msg.ArticleID, err)
				return err
			}

			if result.Status == StatusOK {
				log.Printf("✅ Enriched article %s with %d videos", msg.ArticleID, article.Videos.Len())
			}
			return nil
		},
		AlwaysMark: true,
	}
}

// NewWorker creates the consumer that drives NewHandler
func NewWorker(config WorkerConfig) (*sharedKafka.Consumer, error) {
	return sharedKafka.NewConsumer(sharedKafka.ConsumerConfig{
		Brokers: config.Brokers,
		Topic:   config.RequestsTopic,
		GroupID: config.GroupID,
		Handler: NewHandler(config.Enricher, config.Publisher),
	})
}
