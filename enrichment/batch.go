package enrichment

import (
	"context"

	"golang.org/x/sync/errgroup"

	"richarticles/types"
)

// BatchResult is the outcome for one id of EnrichBatch
type BatchResult struct {
	ArticleID string
	Article   *types.RichArticle
	Err       error
}

// EnrichBatch enriches ids concurrently with at most limit requests in flight
// (unbounded when limit <= 0). Results keep the order of ids; a failed id does
// not affect the others.
func (e *Enricher) EnrichBatch(ctx context.Context, ids []string, limit int) []BatchResult {
	results := make([]BatchResult, len(ids))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, id := range ids {
		g.Go(func() error {
			article, err := e.EnrichArticle(ctx, id)
			results[i] = BatchResult{ArticleID: id, Article: article, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
