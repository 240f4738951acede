// Package httpapi implements the catalog ports against the audio material
// REST API.
package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"fonoteca/internal/application"
	"fonoteca/internal/domain"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultRetryMax = 2

	maxErrorBody = 64 << 10
)

// retryLogger implements the retryablehttp.LeveledLogger interface on top
// of zerolog. Retry chatter is debug level, only errors and warnings are
// raised.
type retryLogger struct {
	log zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Trace().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}

// Client talks to the catalog API. Idempotent reads are retried with
// backoff; writes are sent exactly once.
type Client struct {
	baseURL string
	retry   *retryablehttp.Client
	log     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the client logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l.With().Str("component", "httpapi").Logger()
		c.retry.Logger = retryLogger{log: c.log}
	}
}

// WithTimeout sets the per-attempt request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retry.HTTPClient.Timeout = d
		}
	}
}

// WithRetryMax sets how many times a failed read is retried
func WithRetryMax(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retry.RetryMax = n
		}
	}
}

// WithRetryWait sets the backoff bounds between retries
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.retry.RetryWaitMin = minWait
		c.retry.RetryWaitMax = maxWait
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.retry.HTTPClient = hc
		}
	}
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = defaultRetryMax
	retryClient.RetryWaitMin = 250 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.HTTPClient.Timeout = defaultTimeout
	// hand the last response back so the status code and detail survive
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		retry:   retryClient,
		log:     zerolog.Nop(),
	}
	c.retry.Logger = retryLogger{log: c.log}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every asset of the collection
func (c *Client) List(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := c.do(ctx, "list", http.MethodGet, "/audio", nil, &assets); err != nil {
		return nil, err
	}
	return normalize(assets), nil
}

// Get fetches a single asset
func (c *Client) Get(ctx context.Context, id int64) (domain.Asset, error) {
	var a domain.Asset
	if err := c.do(ctx, "get", http.MethodGet, assetPath(id), nil, &a); err != nil {
		return domain.Asset{}, err
	}
	return a, nil
}

type mutationResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// Create registers a new asset and returns the stored record
func (c *Client) Create(ctx context.Context, asset domain.NewAsset) (domain.Asset, error) {
	var resp mutationResponse
	if err := c.do(ctx, "create", http.MethodPost, "/audio", asset, &resp); err != nil {
		return domain.Asset{}, err
	}
	c.log.Info().Int64("id", resp.ID).Str("path", asset.Path).Msg("asset created")
	return c.Get(ctx, resp.ID)
}

// Update replaces the mutable fields of an asset and returns the stored record
func (c *Client) Update(ctx context.Context, id int64, update domain.AssetUpdate) (domain.Asset, error) {
	var resp mutationResponse
	if err := c.do(ctx, "update", http.MethodPut, assetPath(id), update, &resp); err != nil {
		return domain.Asset{}, err
	}
	c.log.Info().Int64("id", id).Msg("asset updated")
	return c.Get(ctx, id)
}

// Delete removes an asset
func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.do(ctx, "delete", http.MethodDelete, assetPath(id), nil, nil); err != nil {
		return err
	}
	c.log.Info().Int64("id", id).Msg("asset deleted")
	return nil
}

// Search runs a ranked search on the server
func (c *Client) Search(ctx context.Context, params domain.SearchParams) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := c.do(ctx, "search", http.MethodPost, "/audio/search", params, &assets); err != nil {
		return nil, err
	}
	return normalize(assets), nil
}

// Stats fetches collection statistics
func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	if err := c.do(ctx, "stats", http.MethodGet, "/audio/stats", nil, &s); err != nil {
		return domain.Stats{}, err
	}
	return s, nil
}

// Types lists the asset types the server accepts
func (c *Client) Types(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.do(ctx, "types", http.MethodGet, "/audio/types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// Health checks that the server is up and reports itself healthy
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, "health", http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "healthy" {
		return &application.TransportError{Op: "health", Detail: fmt.Sprintf("server reports status %q", resp.Status)}
	}
	return nil
}

// do sends one API call and decodes a JSON response into out. Only GET
// goes through the retrying client.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
	}

	requestID := uuid.NewString()
	url := c.baseURL + path
	start := time.Now()

	var (
		resp *http.Response
		err  error
	)
	if method == http.MethodGet {
		var req *retryablehttp.Request
		if req, err = retryablehttp.NewRequestWithContext(ctx, method, url, nil); err != nil {
			return fmt.Errorf("%s: build request: %w", op, err)
		}
		setHeaders(req.Header, requestID, false)
		resp, err = c.retry.Do(req)
	} else {
		var req *http.Request
		if req, err = http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload)); err != nil {
			return fmt.Errorf("%s: build request: %w", op, err)
		}
		setHeaders(req.Header, requestID, payload != nil)
		resp, err = c.retry.HTTPClient.Do(req)
	}

	logEvent := c.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start))

	if err != nil {
		logEvent.Err(err).Msg("request failed")
		return &application.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	logEvent.Int("status", resp.StatusCode).Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &application.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &application.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func setHeaders(h http.Header, requestID string, hasBody bool) {
	h.Set("Accept", "application/json")
	h.Set("X-Request-ID", requestID)
	if hasBody {
		h.Set("Content-Type", "application/json")
	}
}

// readDetail extracts the "detail" field of an error body. Validation
// errors carry a list there, which is returned as compact JSON.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(data))
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, body.Detail); err != nil {
		return string(body.Detail)
	}
	return compact.String()
}

func assetPath(id int64) string {
	return "/audio/" + strconv.FormatInt(id, 10)
}

// normalize makes sure a decoded collection is never nil
func normalize(assets []domain.Asset) []domain.Asset {
	if assets == nil {
		return []domain.Asset{}
	}
	return assets
}
