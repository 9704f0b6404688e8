package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

const defaultTimeout = 15 * time.Second

// HTTPClient talks to the reservation system over its JSON API. Outbound
// calls go through a shared rate limiter.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// HTTPConfig configures the HTTP client.
type HTTPConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// NewHTTPClient creates the HTTP availability client.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps == 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = 20
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

type searchRequestBody struct {
	model.SearchRequest
	UsePoints bool `json:"usePoints"`
}

func (c *HTTPClient) Search(ctx context.Context, req model.SearchRequest, usePoints bool) (*model.AvailabilityData, error) {
	body := searchRequestBody{SearchRequest: req, UsePoints: usePoints}
	var out struct {
		Data *model.AvailabilityData `json:"data"`
	}
	if err := c.post(ctx, "/api/availability/search", body, &out); err != nil {
		return nil, fmt.Errorf("availability search: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) SearchLowFare(ctx context.Context, req model.LowFareSearchRequest) (*model.LowFareData, error) {
	var out struct {
		Data *model.LowFareData `json:"data"`
	}
	if err := c.post(ctx, "/api/availability/lowfares", req, &out); err != nil {
		return nil, fmt.Errorf("low fare search: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) SellTrip(ctx context.Context, req SellRequest) (*model.SellResponse, error) {
	var out model.SellResponse
	if err := c.post(ctx, "/api/booking/sell", req, &out); err != nil {
		return nil, fmt.Errorf("sell trip: %w", err)
	}
	return &out, nil
}

func (c *HTTPClient) ModifySellTrip(ctx context.Context, req ModifySellRequest) (*model.ModifySellResponse, error) {
	var out model.ModifySellResponse
	if err := c.post(ctx, "/api/booking/modify-sell", req, &out); err != nil {
		return nil, fmt.Errorf("modify sell trip: %w", err)
	}
	return &out, nil
}

func (c *HTTPClient) RedemptionFee(ctx context.Context, departure time.Time, loyaltyKind, tierCode string) (float64, error) {
	q := url.Values{}
	q.Set("departure", departure.Format(time.RFC3339))
	q.Set("loyalty", loyaltyKind)
	q.Set("tier", tierCode)
	var out struct {
		Data float64 `json:"data"`
	}
	if err := c.get(ctx, "/api/booking/redemption-fee?"+q.Encode(), &out); err != nil {
		return 0, fmt.Errorf("redemption fee: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
