// Package gauge talks to the Environment Agency flood-monitoring API for
// tide gauge stations and their water-level readings.
package gauge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/bamsammich/tides/internal/graph"
)

// DefaultBaseURL is the public flood-monitoring API root.
const DefaultBaseURL = "https://environment.data.gov.uk/flood-monitoring"

const (
	DefaultTimeout        = 5 * time.Second
	DefaultMaxRetries     = 2
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second

	// tripAfter is the number of consecutive failed attempts that opens
	// the breaker.
	tripAfter = 2
)

var (
	// ErrRateLimited is returned when the API answers 429 on every attempt.
	ErrRateLimited = errors.New("rate limited")
	// ErrServerError wraps a 5xx status that outlasted the retries.
	ErrServerError = errors.New("server error")
	// ErrUnexpectedStatus wraps any other non-2xx status. It is not retried.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrCircuitOpen is returned when the breaker was still open for the
	// last allowed attempt.
	ErrCircuitOpen = errors.New("circuit breaker open")
	// ErrNoReadings is returned when a station has no readings at all.
	ErrNoReadings = errors.New("no readings available")
)

// Backoff controls retries of failed requests. OpenFor is how long the
// breaker rejects attempts after tripping; once it elapses the next
// attempt is let through to test the API again. It defaults to three
// times Initial, bounded by Max.
type Backoff struct {
	MaxRetries int
	Initial    time.Duration
	Max        time.Duration
	OpenFor    time.Duration
}

// Config configures a Client. Empty URLs and zero durations take their
// defaults; a zero MaxRetries means no retries.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Backoff    Backoff
	UserAgent  string
}

// Client fetches stations and readings. Requests are retried with
// exponential backoff and guarded by a circuit breaker that opens after
// repeated consecutive failures.
type Client struct {
	baseURL   string
	http      *http.Client
	backoff   Backoff
	breaker   *gobreaker.CircuitBreaker
	userAgent string
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	if cfg.Backoff.MaxRetries < 0 {
		cfg.Backoff.MaxRetries = 0
	}
	if cfg.Backoff.Initial <= 0 {
		cfg.Backoff.Initial = defaultInitialBackoff
	}
	if cfg.Backoff.Max <= 0 {
		cfg.Backoff.Max = defaultMaxBackoff
	}
	if cfg.Backoff.OpenFor <= 0 {
		cfg.Backoff.OpenFor = min(3*cfg.Backoff.Initial, cfg.Backoff.Max)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "flood-monitoring",
		MaxRequests: 1,
		Timeout:     cfg.Backoff.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Debug("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL:   cfg.BaseURL,
		http:      cfg.HTTPClient,
		backoff:   cfg.Backoff,
		breaker:   breaker,
		userAgent: cfg.UserAgent,
	}
}

// ListStations returns every tide gauge station.
func (c *Client) ListStations(ctx context.Context) ([]Station, error) {
	var payload struct {
		Items []Station `json:"items"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/id/stations?type=TideGauge", &payload); err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	return payload.Items, nil
}

type readingItem struct {
	DateTime string  `json:"dateTime"`
	Value    float64 `json:"value"`
}

// Readings returns the latest count readings for a station, newest first.
func (c *Client) Readings(ctx context.Context, stationID string, count int) ([]graph.Reading, error) {
	if err := ValidateStationID(stationID); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/id/stations/%s/readings?_sorted&_limit=%s",
		c.baseURL, url.PathEscape(stationID), strconv.Itoa(count))

	var payload struct {
		Items []readingItem `json:"items"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("readings for %s: %w", stationID, err)
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoReadings, stationID)
	}

	readings := make([]graph.Reading, 0, len(payload.Items))
	for _, item := range payload.Items {
		ts, err := time.Parse(time.RFC3339, item.DateTime)
		if err != nil {
			return nil, fmt.Errorf("reading timestamp %q: %w", item.DateTime, err)
		}
		readings = append(readings, graph.Reading{Time: ts.UTC(), Value: item.Value})
	}

	// The chart depends on newest-first order; don't trust the query flag.
	slices.SortStableFunc(readings, func(a, b graph.Reading) int {
		return b.Time.Compare(a.Time)
	})
	return readings, nil
}

func (c *Client) getJSON(ctx context.Context, u string, dst any) error {
	resp, err := c.do(ctx, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do performs a GET with retries and exponential backoff. Transport
// errors, 429 and 5xx responses are retried; any other non-2xx status
// fails immediately. An attempt rejected by the open breaker uses up a
// retry without reaching the API.
func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	var attempt int
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.breaker.Execute(func() (interface{}, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Accept", "application/json")
			if c.userAgent != "" {
				req.Header.Set("User-Agent", c.userAgent)
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return nil, err
			}
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}

			io.Copy(io.Discard, resp.Body) //nolint:errcheck // draining for connection reuse
			resp.Body.Close()
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				return nil, ErrRateLimited
			case resp.StatusCode >= 500:
				return nil, fmt.Errorf("%w: %d", ErrServerError, resp.StatusCode)
			default:
				return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
			}
		})
		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type %T from circuit breaker", result)
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		if errors.Is(err, ErrUnexpectedStatus) || attempt >= c.backoff.MaxRetries {
			return nil, err
		}

		delay := min(c.backoff.Initial<<attempt, c.backoff.Max)
		slog.Debug("request failed, retrying", "url", u, "attempt", attempt+1, "delay", delay, "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		attempt++
	}
}
