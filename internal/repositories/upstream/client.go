package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
)

// Config holds connection settings for the legacy housing records service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements repositories.UpstreamRepository over the legacy
// service's HTTP search endpoint. The timeout is fixed at construction;
// callers get no cancellation hook beyond normal request abort.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) repositories.UpstreamRepository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchByNationalID performs a single attempt against the upstream search
// endpoint. 404 and explicit found=false are the structured not-found
// outcome; 401/403, 5xx and transport failures map to the distinct
// repository sentinels.
func (c *Client) SearchByNationalID(ctx context.Context, nationalID string) ([]*models.Application, error) {
	endpoint := fmt.Sprintf("%s/api/applications/search?national_id=%s",
		c.baseURL, url.QueryEscape(nationalID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, repositories.ErrUpstreamUnauthorized
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", repositories.ErrUpstreamServer, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", repositories.ErrUpstreamServer, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", repositories.ErrUpstreamUnreachable, err)
	}

	records, found, err := decodeSearchResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrUpstreamServer, err)
	}
	if !found {
		return nil, nil
	}

	apps := make([]*models.Application, 0, len(records))
	for _, bag := range records {
		apps = append(apps, MapRecord(bag, nationalID))
	}
	return apps, nil
}

// decodeSearchResponse accepts the two shapes the legacy service emits: a
// bare JSON array of records, or an envelope {"found": bool, "results": []}.
func decodeSearchResponse(body []byte) ([]map[string]interface{}, bool, error) {
	var bare []map[string]interface{}
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, len(bare) > 0, nil
	}

	var envelope struct {
		Found   *bool                    `json:"found"`
		Results []map[string]interface{} `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false, fmt.Errorf("undecodable response: %v", err)
	}

	if envelope.Found != nil && !*envelope.Found {
		return nil, false, nil
	}
	return envelope.Results, len(envelope.Results) > 0, nil
}
