package enrichment

import (
	"context"

	"richarticles/types"
)

// Future is the pending outcome of one Enrich call. It resolves exactly once,
// to either a RichArticle or an error.
type Future struct {
	done    chan struct{}
	article *types.RichArticle
	err     error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve must be called exactly once, by the request goroutine
func (f *Future) resolve(article *types.RichArticle, err error) {
	f.article = article
	f.err = err
	close(f.done)
}

// Done is closed once the outcome is available
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the outcome is available or ctx ends. A ctx error says
// nothing about the enrichment, which keeps running.
func (f *Future) Get(ctx context.Context) (*types.RichArticle, error) {
	select {
	case <-f.done:
		return f.article, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
