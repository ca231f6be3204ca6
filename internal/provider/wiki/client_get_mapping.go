package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"geprices/internal/provider"
)

// GetMapping retrieves the static metadata of every tradeable item.
// The upstream order is preserved.
func (c *WikiAPIClient) GetMapping(ctx context.Context) ([]provider.Mapping, error) {
	url := fmt.Sprintf("%s/mapping", c.baseURL)
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
		return nil, err
	}

	// [
	//   {
	//     "examine": "A weapon from the abyss.",
	//     "id": 4151,
	//     "members": true,
	//     "lowalch": 48000,
	//     "limit": 70,
	//     "value": 120001,
	//     "highalch": 72000,
	//     "icon": "Abyssal whip.png",
	//     "name": "Abyssal whip"
	//   }
	// ]
	var mapping []provider.Mapping
	if err := json.NewDecoder(res.Body).Decode(&mapping); err != nil {
		return nil, fmt.Errorf("decoding mapping response: %w", err)
	}
	return mapping, nil
}
