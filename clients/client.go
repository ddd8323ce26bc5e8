package clients

import (
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultHTTPTimeout caps a single upstream HTTP call. The enricher applies its
// own, usually shorter, per-lookup bound on top of it.
const DefaultHTTPTimeout = 30 * time.Second

// Client is the shared HTTP plumbing for the upstream service clients
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient gets a default one.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
