package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"vehicle-status-backend/config"
	"vehicle-status-backend/internal/carconnect"
	"vehicle-status-backend/internal/logging"
)

// Client talks to the vendor telematics backend over HTTP.
type Client struct {
	cfg     *config.UpstreamConfig
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewClient creates a client for cfg. Requests are throttled to
// cfg.RequestsPerSecond.
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) *Client {
	logger = logging.OrNop(logger).Named("upstream")

	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			logger.Warn("invalid proxy url, not using a proxy", zap.String("proxy", cfg.HTTPProxy), zap.Error(err))
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		log:     logger,
	}
}

// FetchVehicles pages through the vehicle list.
func (c *Client) FetchVehicles(ctx context.Context) ([]*carconnect.Vehicle, error) {
	var vehicles []*carconnect.Vehicle
	total := 1
	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	for page := 1; (page-1)*pageSize < total; page++ {
		resp, err := c.fetchPage(ctx, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		if resp.Data.Total == 0 || len(resp.Data.Items) == 0 {
			break
		}
		total = resp.Data.Total
		vehicles = append(vehicles, resp.Data.Items...)
		c.log.Debug("fetched vehicle page", zap.Int("page", page), zap.Int("total", total), zap.Int("so_far", len(vehicles)))
	}
	return vehicles, nil
}

func (c *Client) fetchPage(ctx context.Context, page, pageSize int) (*ApiResponse, error) {
	payload := map[string]any{"page": page, "pageSize": pageSize}

	var apiResp ApiResponse
	if err := c.post(ctx, c.endpoint("vehicles", "query"), payload, &apiResp); err != nil {
		return nil, err
	}
	if apiResp.Code != 0 {
		return nil, fmt.Errorf("API returned non-zero application code %d: %s", apiResp.Code, apiResp.Message)
	}
	return &apiResp, nil
}

// SendCommand posts cmd for the vehicle with the given VIN. A nil error means
// the backend accepted the command, not that the vehicle executed it.
func (c *Client) SendCommand(ctx context.Context, vin string, cmd carconnect.Command) error {
	var resp CommandResponse
	endpoint := c.endpoint("vehicles", vin, cmd.Subsystem, "commands", cmd.Name)
	if err := c.post(ctx, endpoint, cmd.Args, &resp); err != nil {
		return err
	}
	if resp.Code != 0 {
		msg := resp.Message
		if msg == "" {
			msg = "command rejected"
		}
		return fmt.Errorf("%s (code %d)", msg, resp.Code)
	}
	return nil
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return strings.TrimRight(c.cfg.URL, "/") + "/" + strings.Join(escaped, "/")
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range c.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("received status code %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal api response: %w", err)
	}
	return nil
}
