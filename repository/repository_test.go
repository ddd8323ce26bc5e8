package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"richarticles/enrichment"
	"richarticles/types"
)

var (
	_ enrichment.ArticleRepository = (*RedisRepository)(nil)
	_ enrichment.ArticleRepository = (*MongoRepository)(nil)
)

func TestRedisHashRoundTrip(t *testing.T) {
	ref := types.ArticleReference{ID: "a1", Name: "Name", HeroImageURL: "img", VideoURLs: []string{"v1", "v1", "v2"}}
	fields, err := encodeHash(ref)
	if err != nil {
		t.Fatalf("encodeHash: %v", err)
	}

	// HGETALL hands everything back as strings
	raw := make(map[string]string, len(fields))
	for k, v := range fields {
		raw[k] = v.(string)
	}
	got, err := decodeHash("a1", raw)
	if err != nil {
		t.Fatalf("decodeHash: %v", err)
	}
	if got.ID != ref.ID || got.Name != ref.Name || got.HeroImageURL != ref.HeroImageURL {
		t.Fatalf("got %+v; want %+v", got, ref)
	}
	if len(got.VideoURLs) != 3 {
		t.Fatalf("duplicate urls must be kept, got %v", got.VideoURLs)
	}
}

func TestDecodeHash(t *testing.T) {
	cases := []struct {
		name    string
		fields  map[string]string
		wantNil bool
		wantErr bool
		wantID  string
	}{
		{name: "missing key", fields: map[string]string{}, wantNil: true},
		{name: "id falls back to key", fields: map[string]string{"name": "N"}, wantID: "k1"},
		{name: "malformed urls", fields: map[string]string{"name": "N", "video_urls": "[oops"}, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ref, err := decodeHash("k1", c.fields)
			if c.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.wantNil {
				if ref != nil {
					t.Fatalf("got %+v; want nil", ref)
				}
				return
			}
			if ref.ID != c.wantID || ref.VideoURLs == nil {
				t.Fatalf("got %+v", ref)
			}
		})
	}
}

func TestMongoDocumentBSON(t *testing.T) {
	ref := types.ArticleReference{ID: "a1", Name: "N", VideoURLs: []string{"v1"}}
	data, err := bson.Marshal(documentFor(ref))
	if err != nil {
		t.Fatalf("bson.Marshal: %v", err)
	}

	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("bson.Unmarshal: %v", err)
	}
	if raw["_id"] != "a1" {
		t.Fatalf("_id = %v", raw["_id"])
	}
	if _, ok := raw["hero_image_url"]; ok {
		t.Fatal("empty hero image url should be omitted")
	}

	var doc referenceDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := doc.reference()
	if got.ID != "a1" || got.Name != "N" || len(got.VideoURLs) != 1 {
		t.Fatalf("got %+v", got)
	}

	if empty := (referenceDocument{ID: "x"}).reference(); empty.VideoURLs == nil {
		t.Fatal("nil urls should become an empty slice")
	}
}
