package types

import (
	"encoding/json"
	"testing"
)

func TestVideoSetCollapsesEqualValues(t *testing.T) {
	var s VideoSet
	if !s.Add(Video{ID: "v1", Caption: "c1"}) {
		t.Fatal("first add should report insertion")
	}
	if s.Add(Video{ID: "v1", Caption: "c1"}) {
		t.Fatal("second add of equal video should be a no-op")
	}
	s.Add(Video{ID: "v1", Caption: "other caption"})

	if s.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", s.Len())
	}
	if !s.Contains(Video{ID: "v1", Caption: "other caption"}) {
		t.Fatal("expected video with same id but different caption to be kept")
	}
}

func TestVideoSetSliceIsSorted(t *testing.T) {
	s := NewVideoSet(
		Video{ID: "b", Caption: "2"},
		Video{ID: "a", Caption: "9"},
		Video{ID: "b", Caption: "1"},
	)
	got := s.Slice()
	want := []Video{{"a", "9"}, {"b", "1"}, {"b", "2"}}
	if len(got) != len(want) {
		t.Fatalf("Slice() len = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Slice()[%d] = %+v; want %+v", i, got[i], want[i])
		}
	}
}

func TestRichArticleJSON(t *testing.T) {
	article := RichArticle{
		ID:     "a1",
		Name:   "Lisbon",
		Videos: NewVideoSet(Video{ID: "v1", Caption: "tram"}),
	}
	data, err := json.Marshal(article)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := raw["hero_image"]; ok {
		t.Fatal("hero_image should be omitted when absent")
	}
	videos, ok := raw["videos"].([]interface{})
	if !ok || len(videos) != 1 {
		t.Fatalf("videos = %v; want one-element array", raw["videos"])
	}

	var decoded RichArticle
	in := `{"id":"a1","name":"n","videos":[{"id":"v","caption":"c"},{"id":"v","caption":"c"}]}`
	if err := json.Unmarshal([]byte(in), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Videos.Len() != 1 {
		t.Fatalf("decoded videos = %d; want duplicates collapsed to 1", decoded.Videos.Len())
	}
}
