// Package fibo talks to the FIBO text-to-image API. The client translates the
// normalized scene payload into FIBO's wire format, dispatches the HTTP call
// and folds every outcome (success, pending job, transport failure, provider
// error) into one structured GenerationResult. No failure path escapes as an
// error; callers branch on the result status.
package fibo

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/CeciG24/fibo-backend/internal/infra"
)

// Result statuses.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Health states reported by HealthCheck.
const (
	HealthHealthy       = "healthy"
	HealthDegraded      = "degraded"
	HealthNotConfigured = "not_configured"
	HealthUnreachable   = "unreachable"
)

// placeholderAPIKey is the sample value shipped in .env templates; it is not a
// credible credential.
const placeholderAPIKey = "your_fibo_api_key_here"

const (
	defaultBaseURL = "https://api.fibo.com/v1"
	// Generation calls run a large model and may legitimately take minutes.
	defaultRequestTimeout = 300 * time.Second
	healthCacheKey        = "provider_health"
	healthCacheTTL        = 30 * time.Second
)

// Options configures the FIBO client.
type Options struct {
	APIKey         string
	BaseURL        string
	MockMode       bool
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the FIBO generation API.
type Client struct {
	apiKey     string
	baseURL    string
	mockMode   bool
	httpClient *http.Client
	logger     *infra.Logger
	timeout    time.Duration
	health     *cache.Cache
}

// Request carries everything the adapter needs for one generation: the
// synthesized prompt, the output dimensions, an optional seed and the full
// normalized payload to echo back for persistence.
type Request struct {
	Prompt     string
	Width      int
	Height     int
	Seed       *int64
	Parameters map[string]any
}

// GenerationResult is the normalized outcome of one generation attempt.
// Status discriminates the shape: completed results carry ImageURL and
// GenerationID, pending results carry PendingStatus, failed results carry
// ErrorMessage plus an optional Suggestion and the raw provider payload for
// diagnostics.
type GenerationResult struct {
	Status        string
	ImageURL      string
	GenerationID  string
	Seed          int64
	Provider      string
	Mock          bool
	PendingStatus string
	ErrorMessage  string
	Suggestion    string
	Raw           json.RawMessage
	Parameters    map[string]any
}

// Succeeded reports whether the generation completed with an image.
func (r GenerationResult) Succeeded() bool { return r.Status == StatusCompleted }

// Failed reports whether the generation ended in a failure.
func (r GenerationResult) Failed() bool { return r.Status == StatusFailed }

type generateRequest struct {
	Prompt     string `json:"prompt"`
	NumResults int    `json:"num_results"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Sync       bool   `json:"sync"`
	Seed       *int64 `json:"seed,omitempty"`
}

type resultRecord struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
	Seed     *int64 `json:"seed"`
	Status   string `json:"status"`
}

type generateResponse struct {
	resultRecord
	Result  json.RawMessage `json:"result"`
	Results json.RawMessage `json:"results"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewClient constructs a FIBO client with sane defaults and injected
// dependencies.
func NewClient(opts Options) *Client {
	timeout := opts.RequestTimeout
	if timeout <= 0 || timeout > defaultRequestTimeout {
		timeout = defaultRequestTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		mockMode:   opts.MockMode,
		httpClient: httpClient,
		logger:     logger,
		timeout:    timeout,
		health:     cache.New(healthCacheTTL, time.Minute),
	}
}

// HasCredentials reports whether a credible API key is configured. The
// placeholder value from .env templates does not count.
func (c *Client) HasCredentials() bool {
	return c.apiKey != "" && c.apiKey != placeholderAPIKey
}

// MockMode reports whether the client short-circuits to synthetic results,
// either by explicit configuration or because no credible key is present.
func (c *Client) MockMode() bool {
	return c.mockMode || !c.HasCredentials()
}

// Generate dispatches one generation request and normalizes the outcome.
// It never returns an error: every failure is folded into the result.
func (c *Client) Generate(ctx context.Context, req Request) GenerationResult {
	if c.MockMode() {
		return c.mockResult(req)
	}

	payload := generateRequest{
		Prompt:     req.Prompt,
		NumResults: 1,
		Width:      req.Width,
		Height:     req.Height,
		Sync:       true,
		Seed:       req.Seed,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return c.failure(req, fmt.Sprintf("encode request: %v", err), "", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/image/generate/lite"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return c.failure(req, fmt.Sprintf("build request: %v", err), "", nil)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	started := time.Now()
	c.logger.Debug().Str("endpoint", endpoint).Int("width", req.Width).Int("height", req.Height).Msg("fibo: dispatching generation")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.transportFailure(req, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.failure(req, fmt.Sprintf("read response: %v", err), "", nil)
	}

	latency := time.Since(started)
	c.logger.Info().Dur("latency", latency).Int("status", resp.StatusCode).Msg("fibo: generation response")

	if resp.StatusCode >= 300 {
		return c.httpFailure(req, resp.StatusCode, raw)
	}
	return c.normalizeSuccess(req, raw)
}

// GetResult fetches an asynchronous generation by id. FIBO's endpoint
// convention has shifted between API versions, so a primary-path miss is
// retried against an ordered list of known alternates before giving up.
func (c *Client) GetResult(ctx context.Context, generationID string) GenerationResult {
	if c.MockMode() {
		return c.mockLookup(generationID)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastStatus int
	var lastBody []byte
	for _, endpoint := range c.resultEndpoints(generationID) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			continue
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return c.transportFailure(Request{}, err)
		}
		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return c.failure(Request{}, fmt.Sprintf("read response: %v", readErr), "", nil)
		}
		if resp.StatusCode == http.StatusNotFound {
			c.logger.Debug().Str("endpoint", endpoint).Msg("fibo: result not found, trying next endpoint")
			lastStatus = resp.StatusCode
			lastBody = raw
			continue
		}
		if resp.StatusCode >= 300 {
			return c.httpFailure(Request{}, resp.StatusCode, raw)
		}
		return c.normalizeSuccess(Request{}, raw)
	}

	result := c.failure(Request{}, fmt.Sprintf("generation %s not found at any known endpoint", generationID),
		"the provider may still be processing; retry shortly or verify the generation id", lastBody)
	c.logger.Warn().Str("generation_id", generationID).Int("last_status", lastStatus).Msg("fibo: all result endpoints exhausted")
	return result
}

// resultEndpoints returns the ordered candidate URLs for result retrieval:
// the current plural path, the legacy singular path and the unversioned path.
func (c *Client) resultEndpoints(generationID string) []string {
	id := url.PathEscape(generationID)
	endpoints := []string{
		c.baseURL + "/results/" + id,
		c.baseURL + "/result/" + id,
	}
	if unversioned := stripVersionSegment(c.baseURL); unversioned != c.baseURL {
		endpoints = append(endpoints, unversioned+"/results/"+id)
	}
	return endpoints
}

// stripVersionSegment drops a trailing /vN path segment from a base URL.
func stripVersionSegment(base string) string {
	idx := strings.LastIndex(base, "/")
	if idx < 0 {
		return base
	}
	last := base[idx+1:]
	if len(last) >= 2 && last[0] == 'v' {
		for _, r := range last[1:] {
			if r < '0' || r > '9' {
				return base
			}
		}
		return base[:idx]
	}
	return base
}

// HealthCheck reports the adapter's operational state. It never returns an
// error; probe results are cached briefly to keep the route cheap.
func (c *Client) HealthCheck(ctx context.Context) string {
	if !c.HasCredentials() {
		return HealthNotConfigured
	}
	if c.mockMode {
		return HealthDegraded
	}
	if cached, ok := c.health.Get(healthCacheKey); ok {
		if state, ok := cached.(string); ok {
			return state
		}
	}
	state := c.probe(ctx)
	c.health.Set(healthCacheKey, state, cache.DefaultExpiration)
	return state
}

func (c *Client) probe(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthUnreachable
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn().Err(err).Msg("fibo: health probe failed")
		return HealthUnreachable
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return HealthHealthy
	}
	return HealthDegraded
}

// normalizeSuccess extracts the image URL, id and seed from a 2xx response.
// The result envelope may be a bare object, an object under "result" or the
// first element of a "results" list depending on the provider version.
func (c *Client) normalizeSuccess(req Request, raw []byte) GenerationResult {
	record, err := extractRecord(raw)
	if err != nil {
		return c.failure(req, fmt.Sprintf("decode response: %v", err), "", raw)
	}
	if record.Status != "" && record.ImageURL == "" && !isTerminalStatus(record.Status) {
		return GenerationResult{
			Status:        StatusPending,
			GenerationID:  record.ID,
			PendingStatus: record.Status,
			Provider:      "fibo",
			Parameters:    req.Parameters,
			Raw:           raw,
		}
	}
	if record.ImageURL == "" {
		return c.failure(req, "no image url in response", "", raw)
	}
	result := GenerationResult{
		Status:       StatusCompleted,
		ImageURL:     record.ImageURL,
		GenerationID: record.ID,
		Provider:     "fibo",
		Parameters:   req.Parameters,
		Raw:          raw,
	}
	if record.Seed != nil {
		result.Seed = *record.Seed
	} else if req.Seed != nil {
		result.Seed = *req.Seed
	}
	return result
}

func extractRecord(raw []byte) (resultRecord, error) {
	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return resultRecord{}, err
	}
	if len(envelope.Result) > 0 && !bytes.Equal(envelope.Result, []byte("null")) {
		return decodeRecord(envelope.Result)
	}
	if len(envelope.Results) > 0 && !bytes.Equal(envelope.Results, []byte("null")) {
		return decodeRecord(envelope.Results)
	}
	return envelope.resultRecord, nil
}

// decodeRecord accepts either a single result object or a list of them,
// taking the first element in the list case.
func decodeRecord(raw json.RawMessage) (resultRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []resultRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return resultRecord{}, err
		}
		if len(records) == 0 {
			return resultRecord{}, errors.New("empty result list")
		}
		return records[0], nil
	}
	var record resultRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return resultRecord{}, err
	}
	return record, nil
}

func isTerminalStatus(status string) bool {
	switch strings.ToLower(status) {
	case "completed", "succeeded", "failed", "done":
		return true
	default:
		return false
	}
}

// transportFailure classifies a transport-level error into timeout vs
// connectivity and attaches the matching suggestion.
func (c *Client) transportFailure(req Request, err error) GenerationResult {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
		c.logger.Warn().Err(err).Msg("fibo: request timed out")
		return c.failure(req, fmt.Sprintf("request timed out: %v", err),
			"reduce steps or resolution and try again", nil)
	}
	c.logger.Warn().Err(err).Msg("fibo: connection failed")
	return c.failure(req, fmt.Sprintf("connection failed: %v", err),
		"check network connectivity and the configured provider base URL", nil)
}

// httpFailure builds a failure from a non-2xx response, preferring the parsed
// provider error message over the raw body.
func (c *Client) httpFailure(req Request, status int, raw []byte) GenerationResult {
	message := strings.TrimSpace(string(raw))
	var detail errorResponse
	if err := json.Unmarshal(raw, &detail); err == nil {
		if detail.Message != "" {
			message = detail.Message
		} else if detail.Error != "" {
			message = detail.Error
		}
	}
	c.logger.Warn().Int("status", status).Str("message", message).Msg("fibo: provider returned error status")
	return c.failure(req, fmt.Sprintf("provider returned status %d: %s", status, message),
		"check the provider credentials and request parameters", raw)
}

func (c *Client) failure(req Request, message, suggestion string, raw []byte) GenerationResult {
	return GenerationResult{
		Status:       StatusFailed,
		Provider:     "fibo",
		ErrorMessage: message,
		Suggestion:   suggestion,
		Parameters:   req.Parameters,
		Raw:          raw,
	}
}

// mockResult fabricates a deterministic-looking generation without touching
// the network. The id is stable for a given prompt and the placeholder URL is
// parameterized by seed and dimensions so repeated calls with the same seed
// are byte-identical.
func (c *Client) mockResult(req Request) GenerationResult {
	seed := int64(0)
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		seed = rand.Int63n(2147483647)
	}
	width, height := req.Width, req.Height
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 576
	}
	sum := sha256.Sum256([]byte(req.Prompt))
	id := "mock-" + hex.EncodeToString(sum[:8])

	c.logger.Debug().Str("generation_id", id).Int64("seed", seed).Msg("fibo: mock mode short-circuit")

	return GenerationResult{
		Status:       StatusCompleted,
		ImageURL:     fmt.Sprintf("https://picsum.photos/seed/%d/%d/%d", seed, width, height),
		GenerationID: id,
		Seed:         seed,
		Provider:     "fibo-mock",
		Mock:         true,
		Parameters:   req.Parameters,
	}
}

func (c *Client) mockLookup(generationID string) GenerationResult {
	return GenerationResult{
		Status:       StatusCompleted,
		ImageURL:     fmt.Sprintf("https://picsum.photos/seed/%s/1024/576", url.PathEscape(generationID)),
		GenerationID: generationID,
		Provider:     "fibo-mock",
		Mock:         true,
	}
}
