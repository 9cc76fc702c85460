package sheets

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/little-league/internal/domain/division"
	"github.com/riskibarqy/little-league/internal/domain/game"
	"github.com/riskibarqy/little-league/internal/platform/cache"
	"github.com/riskibarqy/little-league/internal/platform/logging"
	"github.com/riskibarqy/little-league/internal/platform/resilience"
	"github.com/riskibarqy/little-league/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "little-league-sync/1.0"
	maxBodyBytes     = 6 << 20
)

var (
	errSheetTransient = crerr.New("sheet source transient failure")
	errSheetTooLarge  = crerr.New("sheet body too large")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	RateLimit      float64
	RateBurst      int
	CacheEnabled   bool
	CacheTTL       time.Duration
	UserAgent      string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches division schedule sheets over HTTP(S) or from local files.
// Each division source gets its own circuit breaker; concurrent fetches of one
// location share a single request.
type Client struct {
	httpClient     *http.Client
	retry          resilience.RetryConfig
	limiter        *rate.Limiter
	userAgent      string
	logger         *logging.Logger
	breakerCfg     resilience.CircuitBreakerConfig
	circuitEnabled bool
	cacheEnabled   bool
	cache          *cache.Store[fetched]
	flight         resilience.SingleFlight[fetched]

	mu       sync.Mutex
	breakers map[string]*resilience.CircuitBreaker
}

type fetched struct {
	body        []byte
	contentType string
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	return &Client{
		httpClient: httpClient,
		retry: resilience.NormalizeRetryConfig(resilience.RetryConfig{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.RetryBaseDelay,
		}),
		limiter:        rate.NewLimiter(limit, burst),
		userAgent:      userAgent,
		logger:         logger,
		breakerCfg:     breakerCfg,
		circuitEnabled: breakerCfg.Enabled,
		cacheEnabled:   cfg.CacheEnabled,
		cache:          cache.NewStore[fetched](cfg.CacheTTL),
		breakers:       make(map[string]*resilience.CircuitBreaker),
	}
}

// FetchRows loads the division's source and returns its raw rows.
func (c *Client) FetchRows(ctx context.Context, d division.Division) ([]game.RawRow, error) {
	location := strings.TrimSpace(d.SourceURL)
	if location == "" {
		return nil, fmt.Errorf("%w: division %s has no source", usecase.ErrInvalidInput, d.Name)
	}

	breaker := c.breaker(d.Name)
	if c.circuitEnabled {
		if err := breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sheet circuit breaker rejected request", "division", d.Name, "state", breaker.State())
			return nil, fmt.Errorf("%w: sheet for %s is temporarily unavailable", usecase.ErrDependencyUnavailable, d.Name)
		}
	}

	out, err := c.load(ctx, location)
	if c.circuitEnabled {
		if isCircuitFailure(err) {
			breaker.RecordFailure()
		} else {
			breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch sheet for %s", d.Name)
	}

	rows, err := Parse(out.body, DetectFormat(out.contentType, location, out.body))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse sheet for %s", d.Name)
	}
	return rows, nil
}

// ReadFile parses a local sheet export without touching breakers or caches.
func ReadFile(path string) ([]game.RawRow, error) {
	raw, err := readLocal(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw, DetectFormat("", path, raw))
}

// Breakers reports the state of every division breaker, sorted by name.
func (c *Client) Breakers() []resilience.CircuitSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]resilience.CircuitSnapshot, 0, len(c.breakers))
	for _, b := range c.breakers {
		out = append(out, b.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func (c *Client) breaker(divisionName string) *resilience.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.breakers[divisionName]; ok {
		return b
	}
	b := resilience.NewCircuitBreakerFromConfig(divisionName, c.breakerCfg)
	b.OnStateChange(func(name string, from, to resilience.CircuitState) {
		c.logger.Warn("sheet circuit breaker state changed", "division", name, "from", from, "to", to)
	})
	c.breakers[divisionName] = b
	return b
}

func (c *Client) load(ctx context.Context, location string) (fetched, error) {
	fetch := func(ctx context.Context) (fetched, error) {
		out, err, _ := c.flight.Do(location, func() (fetched, error) {
			return c.fetch(ctx, location)
		})
		return out, err
	}

	if !c.cacheEnabled {
		return fetch(ctx)
	}
	return c.cache.GetOrLoad(ctx, location, fetch)
}

func (c *Client) fetch(ctx context.Context, location string) (fetched, error) {
	parsed, err := url.Parse(location)
	if err != nil || parsed.Scheme == "" || len(parsed.Scheme) == 1 {
		raw, readErr := readLocal(location)
		return fetched{body: raw}, readErr
	}

	switch strings.ToLower(parsed.Scheme) {
	case "file":
		raw, readErr := readLocal(parsed.Path)
		return fetched{body: raw}, readErr
	case "http", "https":
		return c.executeRequest(ctx, location)
	default:
		return fetched{}, crerr.Newf("unsupported sheet location scheme %q", parsed.Scheme)
	}
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) (fetched, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fetched{}, crerr.Wrap(err, "wait for rate limiter")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fetched{}, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "text/csv, application/json, text/html;q=0.9, */*;q=0.5")
		req.Header.Set("user-agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errSheetTransient)
		} else {
			raw, readErr := readLimited(resp.Body)
			_ = resp.Body.Close()
			tooLarge := crerr.Is(readErr, errSheetTooLarge)
			switch {
			case readErr != nil && !tooLarge:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errSheetTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				if tooLarge {
					return fetched{}, crerr.Wrapf(readErr, "sheet %s", redactURL(fullURL))
				}
				return fetched{body: raw, contentType: resp.Header.Get("Content-Type")}, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("sheet status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errSheetTransient)
			default:
				return fetched{}, crerr.Newf("sheet status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.retry.MaxRetries {
			break
		}
		if err := resilience.Sleep(ctx, c.retry.Delay(attempt)); err != nil {
			return fetched{}, err
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("sheet request failed")
	}
	c.logger.WarnContext(ctx, "sheet request failed", "url", redactURL(fullURL), "error", lastErr)
	return fetched{}, lastErr
}

func readLocal(path string) ([]byte, error) {
	path = filepath.Clean(strings.TrimSpace(path))
	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open sheet file %s", path)
	}
	defer f.Close()

	raw, err := readLimited(f)
	if err != nil {
		return nil, crerr.Wrapf(err, "read sheet file %s", path)
	}
	return raw, nil
}

// readLimited reads at most maxBodyBytes. A longer body returns the prefix
// with errSheetTooLarge so it is never parsed as a complete sheet.
func readLimited(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return raw, err
	}
	if len(raw) > maxBodyBytes {
		return raw[:maxBodyBytes], crerr.Wrapf(errSheetTooLarge, "limit %d bytes", maxBodyBytes)
	}
	return raw, nil
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) {
		return false
	}
	return crerr.Is(err, errSheetTransient) || stderrors.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// redactURL drops the query string, which for published sheets carries the
// document gid and output options only.
func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.RawQuery = ""
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
