package fpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fplcentral/recommender-api/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseURL = "https://fantasy.premierleague.com/api"
	defaultTimeout = 10 * time.Second
)

// Prometheus metrics
var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpl_upstream_requests_total",
		Help: "Total number of requests to the FPL API by endpoint",
	}, []string{"endpoint"})

	upstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpl_upstream_errors_total",
		Help: "Total number of failed FPL API requests by endpoint",
	}, []string{"endpoint"})

	upstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fpl_upstream_request_duration_seconds",
		Help:    "Duration of FPL API requests",
		Buckets: prometheus.DefBuckets,
	})
)

// Config controls how the client reaches the FPL API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches the FPL bootstrap and fixture data and maps it to
// normalized player records.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs an FPL client with the provided configuration.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: base, httpClient: hc}
}

// FetchPlayers retrieves bootstrap-static and fixtures in parallel and
// returns the normalized player set. Fetch failures are surfaced to the
// caller; there is no automatic retry.
func (c *Client) FetchPlayers(ctx context.Context) ([]models.Player, error) {
	var (
		boot     bootstrapResponse
		fixtures []fixture
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := c.getJSON(ctx, "/bootstrap-static/", &boot); err != nil {
			return fmt.Errorf("bootstrap-static: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := c.getJSON(ctx, "/fixtures/", &fixtures); err != nil {
			return fmt.Errorf("fixtures: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildPlayers(boot, fixtures), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	upstreamRequests.WithLabelValues(path).Inc()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamErrors.WithLabelValues(path).Inc()
		return err
	}
	defer resp.Body.Close()
	upstreamDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		upstreamErrors.WithLabelValues(path).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		upstreamErrors.WithLabelValues(path).Inc()
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
