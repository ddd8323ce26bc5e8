package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"richarticles/common"
	"richarticles/enrichment"
	"richarticles/types"
)

var _ ObjectStore = (*common.S3)(nil)
var _ enrichment.AssetService = (*S3AssetStore)(nil)

// fakeObjectStore keeps JSON documents in memory
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failGet error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) GetJSON(_ context.Context, key string, v interface{}) error {
	if f.failGet != nil {
		return f.failGet
	}
	f.mu.Lock()
	data, ok := f.objects[key]
	f.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", key, common.ErrObjectNotFound)
	}
	return json.Unmarshal(data, v)
}

func (f *fakeObjectStore) PutJSON(_ context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func TestAssetKey(t *testing.T) {
	s := NewS3AssetStore(newFakeObjectStore(), "/media/")
	key := s.AssetKey("images", "https://cdn/a.jpg")
	if !strings.HasPrefix(key, "media/images/") || !strings.HasSuffix(key, ".json") {
		t.Fatalf("unexpected key %q", key)
	}
	if key == s.AssetKey("images", "https://cdn/b.jpg") {
		t.Fatal("different urls must map to different keys")
	}
	if NewS3AssetStore(newFakeObjectStore(), "").AssetKey("videos", "u")[:7] != "videos/" {
		t.Fatal("empty prefix should not add a leading slash")
	}
}

func TestS3AssetStoreLookups(t *testing.T) {
	ctx := context.Background()
	s := NewS3AssetStore(newFakeObjectStore(), "assets")

	if err := s.PutImage(ctx, "img", types.Image{ID: "i1", AltText: "alt"}); err != nil {
		t.Fatalf("PutImage: %v", err)
	}
	if err := s.PutVideo(ctx, "vid", types.Video{ID: "v1", Caption: "cap"}); err != nil {
		t.Fatalf("PutVideo: %v", err)
	}

	img, err := s.Image(ctx, "img")
	if err != nil || img == nil || img.ID != "i1" {
		t.Fatalf("Image = %+v, %v", img, err)
	}
	v, err := s.Video(ctx, "vid")
	if err != nil || v == nil || v.Caption != "cap" {
		t.Fatalf("Video = %+v, %v", v, err)
	}

	// an image manifest is not a video manifest
	if v, err := s.Video(ctx, "img"); v != nil || err != nil {
		t.Fatalf("Video(img) = %+v, %v; want nil, nil", v, err)
	}
	if img, err := s.Image(ctx, ""); img != nil || err != nil {
		t.Fatalf("Image(\"\") = %+v, %v; want nil, nil", img, err)
	}
}

func TestS3AssetStorePropagatesFailures(t *testing.T) {
	store := newFakeObjectStore()
	store.failGet = errors.New("access denied")
	s := NewS3AssetStore(store, "")

	if _, err := s.Image(context.Background(), "img"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := s.Video(context.Background(), "vid"); err == nil {
		t.Fatal("expected error")
	}
}
