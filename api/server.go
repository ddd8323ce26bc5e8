// Package api exposes the enricher over HTTP.
package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"richarticles/enrichment"
	"richarticles/types"
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

// Enricher is the part of enrichment.Enricher the API serves
type Enricher interface {
	EnrichArticle(ctx context.Context, articleID string) (*types.RichArticle, error)
	EnrichBatch(ctx context.Context, ids []string, limit int) []enrichment.BatchResult
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(enricher Enricher, batchLimit int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	RegisterHealthRoutes(r)
	RegisterEnrichRoutes(r, enricher, batchLimit)
	return r
}

// requestID reuses the caller's X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
