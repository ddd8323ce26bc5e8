package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"richarticles/types"
)

// Hash fields of a stored article reference
const (
	fieldID           = "id"
	fieldName         = "name"
	fieldHeroImageURL = "hero_image_url"
	fieldVideoURLs    = "video_urls"
)

// RedisConfig configures the Redis connection and key layout
type RedisConfig struct {
	Addr      string // e.g. localhost:6379
	Password  string
	DB        int
	KeyPrefix string // prepended to the article id, e.g. "article:"
}

// RedisRepository reads article references stored as Redis hashes.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository connects to Redis and verifies connectivity
func NewRedisRepository(ctx context.Context, cfg RedisConfig) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisRepository{client: client, prefix: cfg.KeyPrefix}, nil
}

// Close closes the underlying Redis client
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) key(id string) string {
	return r.prefix + id
}

// ArticleReference loads the hash for id. A missing key yields nil.
func (r *RedisRepository) ArticleReference(ctx context.Context, id string) (*types.ArticleReference, error) {
	fields, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis HGETALL %s: %w", r.key(id), err)
	}
	return decodeHash(id, fields)
}

// Save writes ref as a hash, replacing any previous version
func (r *RedisRepository) Save(ctx context.Context, ref types.ArticleReference) error {
	fields, err := encodeHash(ref)
	if err != nil {
		return err
	}

	key := r.key(ref.ID)
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis HSET %s: %w", key, err)
	}
	return nil
}

func encodeHash(ref types.ArticleReference) (map[string]interface{}, error) {
	urls := ref.VideoURLs
	if urls == nil {
		urls = []string{}
	}
	encoded, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("failed to encode video urls: %w", err)
	}
	return map[string]interface{}{
		fieldID:           ref.ID,
		fieldName:         ref.Name,
		fieldHeroImageURL: ref.HeroImageURL,
		fieldVideoURLs:    string(encoded),
	}, nil
}

// decodeHash maps HGETALL output onto a reference; an empty hash means no such key
func decodeHash(id string, fields map[string]string) (*types.ArticleReference, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	ref := &types.ArticleReference{
		ID:           fields[fieldID],
		Name:         fields[fieldName],
		HeroImageURL: fields[fieldHeroImageURL],
		VideoURLs:    []string{},
	}
	if ref.ID == "" {
		ref.ID = id
	}
	if raw := fields[fieldVideoURLs]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &ref.VideoURLs); err != nil {
			return nil, fmt.Errorf("article %s: malformed %s: %w", id, fieldVideoURLs, err)
		}
	}
	return ref, nil
}
