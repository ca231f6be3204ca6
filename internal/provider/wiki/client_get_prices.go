package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"geprices/internal/provider"
)

type pricesResponse struct {
	Data map[string]map[string]any `json:"data"`
}

// GetPrices retrieves the full dataset of one bucket, keyed by item id.
func (c *WikiAPIClient) GetPrices(ctx context.Context, bucket provider.TimeBucket) (provider.BucketPrices, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return nil, fmt.Errorf("%s: %w", bucket, err)
	}

	// latest:
	//   {"data": {"4151": {"high": 2200000, "highTime": 1700000000, "low": 2150000, "lowTime": 1700000000}}}
	// 5m, 1h, 6h:
	//   {"data": {"4151": {"avgHighPrice": 2190000, "highPriceVolume": 12, "avgLowPrice": null, "lowPriceVolume": 0}}, "timestamp": 1700000000}
	var body pricesResponse
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", bucket, err)
	}
	if body.Data == nil {
		return nil, fmt.Errorf("decoding %s response: %w: data", bucket, provider.ErrMissingField)
	}

	prices := make(provider.BucketPrices, len(body.Data))
	for id, stats := range body.Data {
		prices[id] = provider.PriceStats(stats)
	}
	return prices, nil
}
