// Package prices reads the current fuel price list from the registry API.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/petapp4all/petrol-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

// Client fetches price entries wholesale; the dataset is small enough
// that there is no filtering or pagination.
type Client struct {
	httpClient client.Interface
}

func NewClient(httpClient client.Interface) *Client {
	return &Client{httpClient: httpClient}
}

// GetAll returns every price entry in the registry. Fetch errors are
// propagated; the caller decides between an empty enrichment and aborting.
func (c *Client) GetAll(ctx context.Context) ([]models.PriceEntry, error) {
	resp, err := c.httpClient.Get(ctx, "/station/price")
	if err != nil {
		return nil, NewRegistryError("fetching price list", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewRegistryError(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var entries []models.PriceEntry
	if err := json.Unmarshal(resp.Body, &entries); err != nil {
		return nil, NewRegistryError("decoding price list", err)
	}

	log.Debug().Int("entry_count", len(entries)).Msg("Fetched price list")
	return entries, nil
}
