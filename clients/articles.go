package clients

import (
	"context"
	"net/http"
	"net/url"

	"richarticles/types"
)

// ArticleClient talks to the article repository service
type ArticleClient struct {
	*Client
}

// NewArticleClient creates an article repository client
func NewArticleClient(baseURL string, httpClient *http.Client) *ArticleClient {
	if baseURL == "" {
		baseURL = GetEnvOrDefault("ARTICLE_API_URL", "http://article-repository:8080")
	}
	return &ArticleClient{Client: NewClient(baseURL, httpClient)}
}

// ArticleReference fetches GET /articles/{id}. A 404 yields a nil reference.
func (c *ArticleClient) ArticleReference(ctx context.Context, id string) (*types.ArticleReference, error) {
	var ref types.ArticleReference
	err := c.doJSONRequest(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), nil, &ref)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
