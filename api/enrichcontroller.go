package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"richarticles/config"
	"richarticles/enrichment"
	"richarticles/types"
)

// BatchRequest lists the articles to enrich
type BatchRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// BatchItem is the outcome for one id of a batch
type BatchItem struct {
	ArticleID string             `json:"article_id"`
	Status    int                `json:"status"`
	Article   *types.RichArticle `json:"article,omitempty"`
	ErrorKind string             `json:"error_kind,omitempty"`
	Error     string             `json:"error,omitempty"`
}

type enrichController struct {
	enricher   Enricher
	batchLimit int
}

// RegisterEnrichRoutes registers the enrichment endpoints.
func RegisterEnrichRoutes(r *gin.Engine, enricher Enricher, batchLimit int) {
	ctl := &enrichController{enricher: enricher, batchLimit: batchLimit}

	g := r.Group("/api/articles")
	g.GET("/:id/rich", ctl.handleGetRichArticle)
	g.POST("/enrich", ctl.handleEnrichBatch)
}

// handleGetRichArticle enriches a single article
func (ctl *enrichController) handleGetRichArticle(c *gin.Context) {
	requestID := c.GetString("request_id")
	id := strings.TrimSpace(c.Param("id"))

	article, err := ctl.enricher.EnrichArticle(c.Request.Context(), id)
	if err != nil {
		status := statusFor(err)
		log.Printf("❌ API Error: request %s article %s: %v", requestID, id, err)
		c.JSON(status, gin.H{
			"request_id": requestID,
			"error_kind": enrichment.KindOf(err).String(),
			"error":      err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": requestID,
		"article":    article,
	})
}

// handleEnrichBatch enriches several articles; each id succeeds or fails on its own
func (ctl *enrichController) handleEnrichBatch(c *gin.Context) {
	requestID := c.GetString("request_id")

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"request_id": requestID, "error": err.Error()})
		return
	}
	ids := make([]string, 0, len(req.IDs))
	for _, id := range req.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"request_id": requestID, "error": "ids must not be empty"})
		return
	}
	if len(ids) > config.MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"request_id": requestID, "error": "too many ids"})
		return
	}

	results := ctl.enricher.EnrichBatch(c.Request.Context(), ids, ctl.batchLimit)

	items := make([]BatchItem, len(results))
	failed := 0
	for i, res := range results {
		items[i] = BatchItem{ArticleID: res.ArticleID, Status: http.StatusOK, Article: res.Article}
		if res.Err != nil {
			failed++
			items[i] = BatchItem{
				ArticleID: res.ArticleID,
				Status:    statusFor(res.Err),
				ErrorKind: enrichment.KindOf(res.Err).String(),
				Error:     res.Err.Error(),
			}
		}
	}
	log.Printf("📦 Batch %s: %d enriched, %d failed", requestID, len(items)-failed, failed)

	c.JSON(http.StatusOK, gin.H{
		"request_id": requestID,
		"results":    items,
	})
}

// statusFor maps an enrichment error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, enrichment.ErrMissingReference):
		return http.StatusNotFound
	case errors.Is(err, enrichment.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, enrichment.ErrDependencyFailure):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
