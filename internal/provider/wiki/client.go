package wiki

import (
	"fmt"
	"io"
	"net/http"
)

const baseURL = "https://prices.runescape.wiki/api/v1/osrs"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=wiki_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WikiAPIClient is a client for the OSRS wiki real-time prices API.
type WikiAPIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// WikiAPIClientOption is a configuration option for the wiki API client.
type WikiAPIClientOption func(*WikiAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) WikiAPIClientOption {
	return func(c *WikiAPIClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) WikiAPIClientOption {
	return func(c *WikiAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) WikiAPIClientOption {
	return func(c *WikiAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewWikiAPIClient creates a new wiki API client. The wiki blocks requests
// without a descriptive User-Agent; it is expected from the injected
// HTTPClient (see httpx.Client) or WithHeader.
func NewWikiAPIClient(options ...WikiAPIClientOption) *WikiAPIClient {
	var wikiAPIClient = &WikiAPIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(wikiAPIClient)
	}
	return wikiAPIClient
}

// checkStatus maps non-200 responses to errors.
func checkStatus(res *http.Response) error {
	switch res.StatusCode {
	case http.StatusOK:
		return nil

	case http.StatusBadRequest:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return fmt.Errorf("bad request: %s", string(b))

	case http.StatusForbidden:
		// The wiki answers 403 to default library user agents.
		return fmt.Errorf("forbidden: check the User-Agent")

	case http.StatusTooManyRequests:
		return fmt.Errorf("rate limited")

	default:
		return fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}
}
