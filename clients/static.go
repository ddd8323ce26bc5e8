package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"richarticles/types"
)

// StaticCatalog serves articles and assets from a fixed in-memory catalog.
// It backs the demo mode and local runs without upstream services, and is
// read-only once loaded.
type StaticCatalog struct {
	Articles map[string]types.ArticleReference `json:"articles"`
	Images   map[string]types.Image            `json:"images"`
	Videos   map[string]types.Video            `json:"videos"`
}

// LoadStaticCatalog reads a catalog from a JSON file
func LoadStaticCatalog(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var catalog StaticCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &catalog, nil
}

func (s *StaticCatalog) ArticleReference(_ context.Context, id string) (*types.ArticleReference, error) {
	ref, ok := s.Articles[id]
	if !ok {
		return nil, nil
	}
	if ref.ID == "" {
		ref.ID = id
	}
	ref.VideoURLs = append([]string(nil), ref.VideoURLs...)
	return &ref, nil
}

func (s *StaticCatalog) Image(_ context.Context, url string) (*types.Image, error) {
	img, ok := s.Images[url]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (s *StaticCatalog) Video(_ context.Context, url string) (*types.Video, error) {
	v, ok := s.Videos[url]
	if !ok {
		return nil, nil
	}
	return &v, nil
}
