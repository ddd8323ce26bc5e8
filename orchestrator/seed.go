package orchestrator

import (
	"context"
	"errors"
	"log"
	"slices"
	"time"

	"richarticles/clients"
)

// SeedTimeout bounds each individual write
const SeedTimeout = 30 * time.Second

// SeedSummary counts what Seed wrote
type SeedSummary struct {
	Articles int
	Images   int
	Videos   int
	Failed   int
}

// Seed copies the catalog into whichever sinks are non-nil. Individual write
// failures are logged and counted; Seed only fails when there is nowhere to
// write or ctx ends.
func Seed(ctx context.Context, catalog *clients.StaticCatalog, articles ArticleSink, assets AssetSink) (SeedSummary, error) {
	var sum SeedSummary
	if catalog == nil {
		return sum, errors.New("no catalog to seed from")
	}
	if articles == nil && assets == nil {
		return sum, errors.New("no writable article or asset store configured")
	}

	log.Println("=== Seeding stores ===")

	write := func(what, key string, fn func(context.Context) error) bool {
		wctx, cancel := context.WithTimeout(ctx, SeedTimeout)
		defer cancel()
		if err := fn(wctx); err != nil {
			log.Printf("  ⚠️  %s %s failed: %v", what, key, err)
			sum.Failed++
			return false
		}
		return true
	}

	if articles != nil {
		for _, id := range sortedKeys(catalog.Articles) {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			ref := catalog.Articles[id]
			if ref.ID == "" {
				ref.ID = id
			}
			if write("article", id, func(c context.Context) error { return articles.Save(c, ref) }) {
				sum.Articles++
			}
		}
	}

	if assets != nil {
		for _, url := range sortedKeys(catalog.Images) {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			img := catalog.Images[url]
			if write("image", url, func(c context.Context) error { return assets.PutImage(c, url, img) }) {
				sum.Images++
			}
		}
		for _, url := range sortedKeys(catalog.Videos) {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			v := catalog.Videos[url]
			if write("video", url, func(c context.Context) error { return assets.PutVideo(c, url, v) }) {
				sum.Videos++
			}
		}
	}

	log.Println("=== Seed Summary ===")
	log.Printf("Articles: %d", sum.Articles)
	log.Printf("Images:   %d", sum.Images)
	log.Printf("Videos:   %d", sum.Videos)
	log.Printf("Failed:   %d", sum.Failed)
	return sum, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
