package clients

import (
	"context"
	"net/http"
	"net/url"

	"richarticles/types"
)

// AssetClient talks to the asset service
type AssetClient struct {
	*Client
}

// NewAssetClient creates an asset service client
func NewAssetClient(baseURL string, httpClient *http.Client) *AssetClient {
	if baseURL == "" {
		baseURL = GetEnvOrDefault("ASSET_API_URL", "http://asset-service:8080")
	}
	return &AssetClient{Client: NewClient(baseURL, httpClient)}
}

// Image fetches GET /images?url=... A 404 or an empty url yields nil.
func (c *AssetClient) Image(ctx context.Context, assetURL string) (*types.Image, error) {
	if assetURL == "" {
		return nil, nil
	}
	var img types.Image
	err := c.doJSONRequest(ctx, http.MethodGet, "/images?url="+url.QueryEscape(assetURL), nil, &img)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// Video fetches GET /videos?url=... A 404 or an empty url yields nil.
func (c *AssetClient) Video(ctx context.Context, assetURL string) (*types.Video, error) {
	if assetURL == "" {
		return nil, nil
	}
	var v types.Video
	err := c.doJSONRequest(ctx, http.MethodGet, "/videos?url="+url.QueryEscape(assetURL), nil, &v)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
