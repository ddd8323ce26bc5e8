package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"richarticles/common"
	"richarticles/types"
)

// ObjectStore is the slice of common.S3 the asset store needs
type ObjectStore interface {
	GetJSON(ctx context.Context, key string, v interface{}) error
	PutJSON(ctx context.Context, key string, v interface{}) error
}

// S3AssetStore resolves images and videos from JSON manifests in S3.
// Manifests live at {prefix}images/{hash}.json and {prefix}videos/{hash}.json,
// where hash is the SHA-256 of the asset URL.
type S3AssetStore struct {
	store  ObjectStore
	prefix string
}

// NewS3AssetStore creates an asset store over store. prefix may be empty.
func NewS3AssetStore(store ObjectStore, prefix string) *S3AssetStore {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3AssetStore{store: store, prefix: prefix}
}

// AssetKey returns the object key holding the manifest of url
func (s *S3AssetStore) AssetKey(kind, url string) string {
	hash := sha256.Sum256([]byte(url))
	return s.prefix + kind + "/" + hex.EncodeToString(hash[:]) + ".json"
}

// Image loads the image manifest for url. A missing manifest or empty url yields nil.
func (s *S3AssetStore) Image(ctx context.Context, url string) (*types.Image, error) {
	if url == "" {
		return nil, nil
	}
	var img types.Image
	if err := s.store.GetJSON(ctx, s.AssetKey("images", url), &img); err != nil {
		if errors.Is(err, common.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

// Video loads the video manifest for url. A missing manifest or empty url yields nil.
func (s *S3AssetStore) Video(ctx context.Context, url string) (*types.Video, error) {
	if url == "" {
		return nil, nil
	}
	var v types.Video
	if err := s.store.GetJSON(ctx, s.AssetKey("videos", url), &v); err != nil {
		if errors.Is(err, common.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// PutImage stores the manifest for url
func (s *S3AssetStore) PutImage(ctx context.Context, url string, img types.Image) error {
	return s.store.PutJSON(ctx, s.AssetKey("images", url), img)
}

// PutVideo stores the manifest for url
func (s *S3AssetStore) PutVideo(ctx context.Context, url string, v types.Video) error {
	return s.store.PutJSON(ctx, s.AssetKey("videos", url), v)
}
