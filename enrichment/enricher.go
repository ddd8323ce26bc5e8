// Package enrichment builds rich articles from an article reference and the
// media assets it points at.
//
// One Enrich call looks up the reference, then looks up the hero image and
// every video concurrently, and joins them. Each lookup is allowed the
// configured timeout, measured from when that lookup was issued. The first
// lookup that fails or times out ends the request with a single *Error; lookups
// still in flight are abandoned and their contexts cancelled.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"richarticles/types"
)

// DefaultTimeout bounds each individual lookup
const DefaultTimeout = 3 * time.Second

const (
	opArticle = "article"
	opImage   = "image"
	opVideo   = "video"
)

// ArticleRepository resolves article references. A nil reference with a nil
// error means there is no such article.
type ArticleRepository interface {
	ArticleReference(ctx context.Context, id string) (*types.ArticleReference, error)
}

// AssetService resolves media assets by URL. A nil value with a nil error
// means the asset does not exist.
type AssetService interface {
	Image(ctx context.Context, url string) (*types.Image, error)
	Video(ctx context.Context, url string) (*types.Video, error)
}

// Enricher combines an ArticleRepository and an AssetService. It holds no
// per-request state and is safe for concurrent use.
type Enricher struct {
	articles ArticleRepository
	assets   AssetService
	timeout  time.Duration
}

// Option configures an Enricher
type Option func(*Enricher)

// WithTimeout sets the bound applied to each lookup. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(e *Enricher) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// New creates an Enricher bound to the two collaborators
func New(articles ArticleRepository, assets AssetService, opts ...Option) *Enricher {
	e := &Enricher{
		articles: articles,
		assets:   assets,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeout returns the per-lookup bound
func (e *Enricher) Timeout() time.Duration {
	return e.timeout
}

// Enrich starts enriching articleID and returns immediately.
//
// The Future resolves to a complete RichArticle or to exactly one error:
// an *Error matching ErrTimeout, ErrDependencyFailure or ErrMissingReference,
// or ctx.Err() wrapped if the caller cancelled ctx.
func (e *Enricher) Enrich(ctx context.Context, articleID string) *Future {
	f := newFuture()
	go func() {
		reqCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		article, err := e.enrich(reqCtx, articleID)
		if err != nil {
			log.Printf("⚠️  Enrichment failed for article %s: %v", articleID, err)
		}
		f.resolve(article, err)
	}()
	return f
}

// EnrichArticle is the blocking form of Enrich
func (e *Enricher) EnrichArticle(ctx context.Context, articleID string) (*types.RichArticle, error) {
	return e.Enrich(ctx, articleID).Get(ctx)
}

// asset is the settled state of one image or video branch
type asset struct {
	op    string
	url   string
	image *types.Image
	video *types.Video
	err   error
}

func (e *Enricher) enrich(ctx context.Context, articleID string) (*types.RichArticle, error) {
	ref := await(ctx, e.timeout, func(c context.Context) (*types.ArticleReference, error) {
		return e.articles.ArticleReference(c, articleID)
	})
	if ref.err != nil {
		return nil, e.failure(ctx, opArticle, articleID, "", ref.err)
	}
	if ref.value == nil {
		return nil, &Error{Kind: KindMissingReference, Op: opArticle, ArticleID: articleID}
	}
	reference := ref.value

	// Every branch reports once; the buffer lets abandoned branches finish
	// without a reader.
	results := make(chan asset, 1+len(reference.VideoURLs))

	go func(url string) {
		r := await(ctx, e.timeout, func(c context.Context) (*types.Image, error) {
			return e.assets.Image(c, url)
		})
		results <- asset{op: opImage, url: url, image: r.value, err: r.err}
	}(reference.HeroImageURL)

	for _, url := range reference.VideoURLs {
		go func(url string) {
			r := await(ctx, e.timeout, func(c context.Context) (*types.Video, error) {
				return e.assets.Video(c, url)
			})
			results <- asset{op: opVideo, url: url, video: r.value, err: r.err}
		}(url)
	}

	article := &types.RichArticle{
		ID:   reference.ID,
		Name: reference.Name,
	}
	for range cap(results) {
		a := <-results
		if a.err != nil {
			return nil, e.failure(ctx, a.op, articleID, a.url, a.err)
		}
		switch {
		case a.image != nil:
			article.HeroImage = a.image
		case a.video != nil:
			article.Videos.Add(*a.video)
		}
	}
	return article, nil
}

// failure turns a lookup error into the request's terminal error
func (e *Enricher) failure(ctx context.Context, op, articleID, url string, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return fmt.Errorf("enrich article %q: %w", articleID, ctx.Err())
	}
	return classify(op, articleID, url, err)
}

type settled[T any] struct {
	value *T
	err   error
}

// await issues call in its own goroutine and waits at most timeout for it.
// ErrNotFound from call is reported as an absent value.
func await[T any](ctx context.Context, timeout time.Duration, call func(context.Context) (*T, error)) settled[T] {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	done := make(chan settled[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- settled[T]{err: fmt.Errorf("lookup panicked: %v", r)}
			}
		}()
		v, err := call(callCtx)
		if errors.Is(err, ErrNotFound) {
			v, err = nil, nil
		}
		done <- settled[T]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r
	case <-timer.C:
		return settled[T]{err: fmt.Errorf("no result after %s: %w", timeout, context.DeadlineExceeded)}
	case <-ctx.Done():
		return settled[T]{err: ctx.Err()}
	}
}
