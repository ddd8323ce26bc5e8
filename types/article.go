package types

import (
	"encoding/json"
	"sort"
)

// ArticleReference is the lightweight record held by the article repository.
// It names the article and points at its media assets.
type ArticleReference struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	HeroImageURL string   `json:"hero_image_url,omitempty"`
	VideoURLs    []string `json:"video_urls"`
}

// Image is a hero image resolved by the asset service
type Image struct {
	ID      string `json:"id"`
	AltText string `json:"alt_text"`
}

// Video is a video asset resolved by the asset service.
// Two videos are the same video when both ID and Caption match.
type Video struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
}

// VideoSet holds distinct videos; adding an equal value twice keeps one entry.
// The zero value is ready to use.
type VideoSet struct {
	items map[Video]struct{}
}

// NewVideoSet builds a set from the given videos
func NewVideoSet(videos ...Video) VideoSet {
	var s VideoSet
	for _, v := range videos {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was not already present
func (s *VideoSet) Add(v Video) bool {
	if s.items == nil {
		s.items = make(map[Video]struct{})
	}
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	return true
}

// Contains reports whether v is in the set
func (s VideoSet) Contains(v Video) bool {
	_, ok := s.items[v]
	return ok
}

// Len returns the number of distinct videos
func (s VideoSet) Len() int {
	return len(s.items)
}

// Slice returns the videos sorted by ID, then Caption.
func (s VideoSet) Slice() []Video {
	out := make([]Video, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Caption < out[j].Caption
	})
	return out
}

// MarshalJSON encodes the set as an array
func (s VideoSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes an array, collapsing duplicates
func (s *VideoSet) UnmarshalJSON(data []byte) error {
	var videos []Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return err
	}
	*s = NewVideoSet(videos...)
	return nil
}

// RichArticle is an article with its media resolved.
// HeroImage is nil when the asset service had no image for the reference.
type RichArticle struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	HeroImage *Image   `json:"hero_image,omitempty"`
	Videos    VideoSet `json:"videos"`
}
