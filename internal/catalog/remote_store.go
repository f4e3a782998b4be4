package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// RemoteStore reads the catalog from a hosted data service that returns
// snake_case JSON rows. Rows are translated through Row.Product so the rest
// of the code only ever sees the internal shape.
type RemoteStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRemoteStore(baseURL, apiKey string, client *http.Client) *RemoteStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteStore{baseURL: baseURL, apiKey: apiKey, client: client}
}

func (s *RemoteStore) List(ctx context.Context) ([]Product, error) {
	return s.fetch(ctx, "/products", nil)
}

func (s *RemoteStore) ListFeatured(ctx context.Context) ([]Product, error) {
	return s.fetch(ctx, "/products", url.Values{"is_featured": {"true"}})
}

func (s *RemoteStore) GetByID(ctx context.Context, id string) (*Product, error) {
	products, err := s.fetch(ctx, "/products", url.Values{"id": {id}})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}
	return &products[0], nil
}

func (s *RemoteStore) fetch(ctx context.Context, path string, params url.Values) ([]Product, error) {
	u := s.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request: unexpected status %d", resp.StatusCode)
	}

	var rows []Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode catalog rows: %w", err)
	}

	products := make([]Product, len(rows))
	for i, row := range rows {
		products[i] = row.Product()
	}
	return products, nil
}
