// Package route66data provides a client for the remote Route 66 stop-data
// service.
package route66data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/provider/resilience"
	"github.com/motherroad/motherroad/internal/telemetry"
)

const (
	// ProviderName identifies this catalog provider.
	ProviderName = "route66data"

	// DefaultBaseURL is the stop-data service base URL.
	DefaultBaseURL = "https://data.motherroad.dev"

	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 10 * time.Second

	// maxPages bounds pagination in case the service misreports lastPage.
	maxPages = 50
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the stop-data client.
type ClientConfig struct {
	// BaseURL is the service base URL (defaults to DefaultBaseURL).
	BaseURL string

	// APIKey is sent as a bearer token when set.
	APIKey string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, a resilient client with retries and a circuit breaker is used.
	HTTPClient HTTPDoer

	// Timeout is the per-request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Metrics records provider call latency and outcome (optional).
	Metrics *telemetry.ProviderMetrics

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client fetches stop records from the remote data service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
	metrics    *telemetry.ProviderMetrics
	logger     zerolog.Logger
}

// NewClient creates a new stop-data client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		if cfg.Registry != nil {
			clientCfg.Registry = cfg.Registry
		}
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// API response types (from the stop-data service).

type stopsResponse struct {
	Pagination paginationInfo    `json:"pagination"`
	Data       []catalog.RawStop `json:"data"`
}

type paginationInfo struct {
	CurrentPage   int `json:"currentPage"`
	LastPage      int `json:"lastPage"`
	PerPage       int `json:"perPage"`
	TotalElements int `json:"totalElements"`
}

// FetchAllStops retrieves the full stop set, walking pagination and
// validating every record at the boundary. Records with invalid coordinates
// or missing identifiers are dropped and counted rather than propagated.
func (c *Client) FetchAllStops(ctx context.Context) (stops []catalog.Stop, err error) {
	if c.metrics != nil {
		start := time.Now()
		defer func() {
			c.metrics.RecordRequest(ProviderName, "fetch-stops", time.Since(start), err)
		}()
	}

	rejected := 0
	page := 1

	for {
		raw, lastPage, err := c.fetchStopsPage(ctx, page)
		if err != nil {
			return nil, err
		}

		for _, r := range raw {
			stop, err := r.Validate()
			if err != nil {
				rejected++
				c.logger.Debug().
					Str("stop_id", r.ID).
					Str("stop_name", r.Name).
					Err(err).
					Msg("rejected stop record at boundary")
				continue
			}
			stops = append(stops, stop)
		}

		if page >= lastPage || page >= maxPages {
			break
		}
		page++
	}

	c.logger.Debug().
		Int("stops", len(stops)).
		Int("rejected", rejected).
		Int("pages", page).
		Msg("fetched stop catalog")

	if rejected > 0 {
		c.logger.Warn().
			Int("rejected", rejected).
			Msg("dropped invalid stop records from catalog")
	}

	return stops, nil
}

// fetchStopsPage fetches a single page of stop records.
func (c *Client) fetchStopsPage(ctx context.Context, page int) ([]catalog.RawStop, int, error) {
	url := c.baseURL + "/v1/stops?page=" + strconv.Itoa(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return nil, 0, fmt.Errorf("%w: circuit breaker open", catalog.ErrUnavailable)
		}
		return nil, 0, fmt.Errorf("%w: %s", catalog.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain the body so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, 0, fmt.Errorf("%w: status %d", catalog.ErrUnavailable, resp.StatusCode)
	}

	var parsed stopsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("%w: decoding response: %s", catalog.ErrUnavailable, err)
	}

	lastPage := parsed.Pagination.LastPage
	if lastPage < 1 {
		lastPage = 1
	}

	return parsed.Data, lastPage, nil
}
