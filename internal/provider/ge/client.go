package ge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"geprices/internal/provider"
)

const baseURL = "https://secure.runescape.com/m=itemdb_oldschool/api/catalogue"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=ge_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CatalogueAPIClient is a client for the official Grand Exchange catalogue API.
type CatalogueAPIClient struct {
	baseURL    string
	httpClient HTTPClient
	header     http.Header
}

// CatalogueAPIClientOption is a configuration option for the catalogue client.
type CatalogueAPIClientOption func(*CatalogueAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) CatalogueAPIClientOption {
	return func(c *CatalogueAPIClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) CatalogueAPIClientOption {
	return func(c *CatalogueAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) CatalogueAPIClientOption {
	return func(c *CatalogueAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewCatalogueAPIClient creates a new catalogue client.
func NewCatalogueAPIClient(options ...CatalogueAPIClientOption) *CatalogueAPIClient {
	var c = &CatalogueAPIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// DetailURL returns the detail endpoint of one item. It depends only on id.
func (c *CatalogueAPIClient) DetailURL(id string) string {
	return fmt.Sprintf("%s/detail.json?%s", c.baseURL, url.Values{"item": []string{id}}.Encode())
}

type detailResponse struct {
	Item *provider.LiveQuote `json:"item"`
}

// FetchLiveQuote retrieves the detail payload at endpoint, as built by DetailURL.
func (c *CatalogueAPIClient) FetchLiveQuote(ctx context.Context, endpoint string) (*provider.LiveQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", provider.ErrLookupMiss, endpoint)

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited")

	default:
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	// {
	//   "item": {
	//     "id": 4151,
	//     "name": "Abyssal whip",
	//     "current": {"trend": "neutral", "price": "1.5m"},
	//     "today": {"trend": "neutral", "price": "+7"},
	//     "day30": {"trend": "positive", "change": "+1.0%"},
	//     "day90": {"trend": "negative", "change": "-32.0%"},
	//     "day180": {"trend": "neutral", "change": "0.0%"}
	//   }
	// }
	var body detailResponse
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		// The catalogue sometimes answers 200 with an empty body while throttling.
		return nil, fmt.Errorf("decoding detail response: %w", err)
	}
	if body.Item == nil {
		return nil, fmt.Errorf("decoding detail response: %w: item", provider.ErrMissingField)
	}
	return body.Item, nil
}
