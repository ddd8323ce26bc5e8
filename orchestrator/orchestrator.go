// Package orchestrator assembles the enricher's collaborators from
// configuration and seeds backing stores from a static catalog.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"richarticles/clients"
	"richarticles/common"
	"richarticles/config"
	"richarticles/enrichment"
	"richarticles/repository"
	"richarticles/storage"
	"richarticles/types"
)

// ArticleSink stores article references
type ArticleSink interface {
	Save(ctx context.Context, ref types.ArticleReference) error
}

// AssetSink stores asset manifests by URL
type AssetSink interface {
	PutImage(ctx context.Context, url string, img types.Image) error
	PutVideo(ctx context.Context, url string, v types.Video) error
}

// Components are the collaborators selected by configuration
type Components struct {
	Articles enrichment.ArticleRepository
	Assets   enrichment.AssetService

	// ArticleSink and AssetSink are set when the selected source is writable
	ArticleSink ArticleSink
	AssetSink   AssetSink

	// Catalog is loaded when either source is static
	Catalog *clients.StaticCatalog

	closers []io.Closer
}

// Build connects the article and asset sources named in cfg
func Build(ctx context.Context, cfg config.Config) (*Components, error) {
	c := &Components{}

	if cfg.Articles.Source == config.SourceStatic || cfg.Assets.Source == config.SourceStatic {
		catalog, err := clients.LoadStaticCatalog(cfg.StaticCatalog)
		if err != nil {
			return nil, err
		}
		c.Catalog = catalog
	}

	if err := c.buildArticles(ctx, cfg); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.buildAssets(ctx, cfg); err != nil {
		c.Close()
		return nil, err
	}

	log.Printf("Article source: %s, asset source: %s", cfg.Articles.Source, cfg.Assets.Source)
	return c, nil
}

func (c *Components) buildArticles(ctx context.Context, cfg config.Config) error {
	src := cfg.Articles
	switch src.Source {
	case config.SourceHTTP:
		client := clients.NewArticleClient(src.APIURL, nil)
		log.Printf("Article API: %s", client.BaseURL())
		c.Articles = client
	case config.SourceRedis:
		repo, err := repository.NewRedisRepository(ctx, repository.RedisConfig{
			Addr:      src.RedisAddr,
			Password:  src.RedisPassword,
			DB:        src.RedisDB,
			KeyPrefix: src.RedisKeyPrefix,
		})
		if err != nil {
			return err
		}
		c.Articles, c.ArticleSink = repo, repo
		c.closers = append(c.closers, repo)
	case config.SourceMongo:
		repo, err := repository.NewMongoRepository(ctx, repository.MongoConfig{
			URI:        src.MongoURI,
			Database:   src.MongoDatabase,
			Collection: src.MongoCollection,
		})
		if err != nil {
			return err
		}
		c.Articles, c.ArticleSink = repo, repo
		c.closers = append(c.closers, repo)
	case config.SourceStatic:
		c.Articles = c.Catalog
	default:
		return fmt.Errorf("unknown article source %q", src.Source)
	}
	return nil
}

func (c *Components) buildAssets(ctx context.Context, cfg config.Config) error {
	src := cfg.Assets
	switch src.Source {
	case config.SourceHTTP:
		client := clients.NewAssetClient(src.APIURL, nil)
		log.Printf("Asset API: %s", client.BaseURL())
		c.Assets = client
	case config.SourceS3:
		s3c, err := common.NewS3(ctx, common.S3Config{
			Bucket:       src.S3Bucket,
			Region:       src.S3Region,
			Profile:      src.S3Profile,
			UsePathStyle: src.S3UsePathStyle,
		})
		if err != nil {
			return err
		}
		store := storage.NewS3AssetStore(s3c, src.S3Prefix)
		log.Printf("Asset manifests: s3://%s/%s", s3c.Bucket(), strings.Trim(src.S3Prefix, "/"))
		c.Assets, c.AssetSink = store, store
	case config.SourceStatic:
		c.Assets = c.Catalog
	default:
		return fmt.Errorf("unknown asset source %q", src.Source)
	}
	return nil
}

// Enricher returns an enricher over the built collaborators
func (c *Components) Enricher(cfg config.Config) *enrichment.Enricher {
	return enrichment.New(c.Articles, c.Assets, enrichment.WithTimeout(cfg.Timeout()))
}

// Close releases every connection Build opened
func (c *Components) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
