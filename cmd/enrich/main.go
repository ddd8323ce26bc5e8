// Command enrich enriches articles from the command line, or seeds Redis,
// MongoDB and S3 from a static catalog with -seed.
//
//	enrich -articles static -assets static -catalog catalog.json lisbon-trams
//	enrich -articles redis -assets s3 -seed
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"richarticles/config"
	"richarticles/enrichment"
	"richarticles/orchestrator"
)

func main() {
	configFile := flag.String("config", "", "YAML config file (overrides CONFIG_FILE)")
	articleSource := flag.String("articles", "", "article source: http, redis, mongo or static")
	assetSource := flag.String("assets", "", "asset source: http, s3 or static")
	catalog := flag.String("catalog", "", "static catalog JSON file")
	timeout := flag.Int("timeout", 0, "per-lookup timeout in seconds")
	limit := flag.Int("limit", 0, "maximum concurrent enrichments")
	seed := flag.Bool("seed", false, "copy the static catalog into the configured redis/mongo/s3 stores and exit")
	pretty := flag.Bool("pretty", false, "render a human readable summary instead of JSON")
	flag.Parse()

	if *configFile != "" {
		os.Setenv("CONFIG_FILE", *configFile)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *articleSource != "" {
		cfg.Articles.Source = *articleSource
	}
	if *assetSource != "" {
		cfg.Assets.Source = *assetSource
	}
	if *catalog != "" {
		cfg.StaticCatalog = *catalog
	}
	if *timeout > 0 {
		cfg.TimeoutSeconds = *timeout
	}
	if *limit > 0 {
		cfg.BatchLimit = *limit
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *seed {
		if err := runSeed(ctx, cfg); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		return
	}

	ids := flag.Args()
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "usage: enrich [flags] ARTICLE_ID...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	components, err := orchestrator.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build collaborators: %v", err)
	}
	defer components.Close()

	results := components.Enricher(cfg).EnrichBatch(ctx, ids, cfg.BatchLimit)

	if *pretty {
		fmt.Println(renderResults(results))
	} else {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toOutput(results)); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
	}

	for _, r := range results {
		if r.Err != nil {
			os.Exit(1)
		}
	}
}

// runSeed loads the static catalog and writes it to the configured stores
func runSeed(ctx context.Context, cfg config.Config) error {
	source := cfg
	source.Articles.Source, source.Assets.Source = config.SourceStatic, config.SourceStatic
	src, err := orchestrator.Build(ctx, source)
	if err != nil {
		return err
	}

	dst, err := orchestrator.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = orchestrator.Seed(ctx, src.Catalog, dst.ArticleSink, dst.AssetSink)
	return err
}

type outputItem struct {
	ArticleID string `json:"article_id"`
	Article   any    `json:"article,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

func toOutput(results []enrichment.BatchResult) []outputItem {
	out := make([]outputItem, len(results))
	for i, r := range results {
		out[i] = outputItem{ArticleID: r.ArticleID}
		if r.Err != nil {
			out[i].ErrorKind = enrichment.KindOf(r.Err).String()
			out[i].Error = r.Err.Error()
			continue
		}
		out[i].Article = r.Article
	}
	return out
}
