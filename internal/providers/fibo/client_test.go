package fibo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, transport http.RoundTripper) *Client {
	t.Helper()
	return NewClient(Options{
		APIKey:     "test-key",
		BaseURL:    "https://api.fibo.test/v1",
		HTTPClient: &http.Client{Transport: transport},
	})
}

func TestGeneratePayloadShape(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/image/generate/lite", map[string]any{
		"result": map[string]any{
			"id":        "gen-123",
			"image_url": "https://cdn.fibo.test/out.png",
			"seed":      99,
		},
	})
	client := newTestClient(t, transport)

	seed := int64(42)
	result := client.Generate(context.Background(), Request{
		Prompt: "a cat, close-up shot",
		Width:  1024,
		Height: 576,
		Seed:   &seed,
	})
	if !result.Succeeded() {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.ImageURL != "https://cdn.fibo.test/out.png" {
		t.Fatalf("image_url = %q", result.ImageURL)
	}
	if result.GenerationID != "gen-123" {
		t.Fatalf("generation id = %q", result.GenerationID)
	}
	if result.Seed != 99 {
		t.Fatalf("seed = %d, want provider-reported 99", result.Seed)
	}
	if result.Mock {
		t.Fatalf("real generation must not be tagged mock")
	}

	var payload map[string]any
	if err := json.Unmarshal(transport.lastBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["prompt"] != "a cat, close-up shot" {
		t.Fatalf("prompt = %v", payload["prompt"])
	}
	if payload["num_results"] != float64(1) {
		t.Fatalf("num_results = %v, want 1", payload["num_results"])
	}
	if payload["sync"] != true {
		t.Fatalf("sync flag missing")
	}
	if payload["seed"] != float64(42) {
		t.Fatalf("seed = %v, want 42", payload["seed"])
	}
	if auth := transport.lastAuth; auth != "Bearer test-key" {
		t.Fatalf("authorization = %q", auth)
	}
}

func TestGenerateOmitsSeedWhenAbsent(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/image/generate/lite", map[string]any{
		"id":        "gen-1",
		"image_url": "https://cdn.fibo.test/out.png",
	})
	client := newTestClient(t, transport)

	result := client.Generate(context.Background(), Request{Prompt: "a cat", Width: 512, Height: 512})
	if !result.Succeeded() {
		t.Fatalf("expected success, got %+v", result)
	}
	var payload map[string]any
	if err := json.Unmarshal(transport.lastBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if _, ok := payload["seed"]; ok {
		t.Fatalf("seed should be omitted when the caller supplies none")
	}
}

func TestGenerateToleratesListEnvelope(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/image/generate/lite", map[string]any{
		"results": []any{
			map[string]any{"id": "gen-9", "image_url": "https://cdn.fibo.test/a.png"},
			map[string]any{"id": "gen-10", "image_url": "https://cdn.fibo.test/b.png"},
		},
	})
	client := newTestClient(t, transport)

	result := client.Generate(context.Background(), Request{Prompt: "a cat", Width: 512, Height: 512})
	if !result.Succeeded() {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.GenerationID != "gen-9" {
		t.Fatalf("expected first list element, got %q", result.GenerationID)
	}
}

func TestGenerateMissingImageURLIsFailure(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/image/generate/lite", map[string]any{
		"result": map[string]any{"id": "gen-2", "status": "completed"},
	})
	client := newTestClient(t, transport)

	result := client.Generate(context.Background(), Request{Prompt: "a cat", Width: 512, Height: 512})
	if !result.Failed() {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !strings.Contains(result.ErrorMessage, "no image url in response") {
		t.Fatalf("error = %q", result.ErrorMessage)
	}
}

func TestGeneratePendingResponse(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/image/generate/lite", map[string]any{
		"result": map[string]any{"id": "gen-3", "status": "processing"},
	})
	client := newTestClient(t, transport)

	result := client.Generate(context.Background(), Request{Prompt: "a cat", Width: 512, Height: 512})
	if result.Status != StatusPending {
		t.Fatalf("status = %q, want pending", result.Status)
	}
	if result.PendingStatus != "processing" {
		t.Fatalf("pending status = %q", result.PendingStatus)
	}
	if result.GenerationID != "gen-3" {
		t.Fatalf("generation id = %q", result.GenerationID)
	}
}

func TestGenerateHTTPErrorNeverPanics(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.responses["/v1/image/generate/lite"] = responseStub{
		status: http.StatusUnauthorized,
		body:   []byte(`{"error": "invalid api key"}`),
	}
	client := newTestClient(t, transport)

	result := client.Generate(context.Background(), Request{Prompt: "a cat", Width: 512, Height: 512})
	if !result.Failed() {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !strings.Contains(result.ErrorMessage, "status 401") {
		t.Fatalf("error = %q", result.ErrorMessage)
	}
	if !strings.Contains(result.ErrorMessage, "invalid api key") {
		t.Fatalf("error should carry the parsed provider message, got %q", result.ErrorMessage)
	}
	if !strings.Contains(result.Suggestion, "credentials") {
		t.Fatalf("suggestion = %q", result.Suggestion)
	}
	if len(result.Raw) == 0 {
		t.Fatalf("raw provider payload should be preserved for diagnostics")
	}
}

func TestGenerateConnectionFailure(t *testing.T) {
	client := newTestClient(t, &failingTransport{err: errors.New("dial tcp: connection refused")})

	result := client.Generate(context.Background(), Request{Prompt: "a cat", Width: 512, Height: 512})
	if !result.Failed() {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !strings.Contains(result.Suggestion, "connectivity") {
		t.Fatalf("suggestion = %q", result.Suggestion)
	}
}

func TestGenerateTimeoutFailure(t *testing.T) {
	client := newTestClient(t, &failingTransport{err: &timeoutError{}})

	result := client.Generate(context.Background(), Request{Prompt: "a cat", Width: 512, Height: 512})
	if !result.Failed() {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !strings.Contains(result.Suggestion, "reduce steps") {
		t.Fatalf("suggestion = %q", result.Suggestion)
	}
}

func TestGetResultFallbackProbing(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	// Primary plural path and legacy singular path both miss; the unversioned
	// path has the record.
	transport.setJSONResponse("/results/gen-7", map[string]any{
		"id":        "gen-7",
		"image_url": "https://cdn.fibo.test/final.png",
	})
	client := newTestClient(t, transport)

	result := client.GetResult(context.Background(), "gen-7")
	if !result.Succeeded() {
		t.Fatalf("expected success via fallback, got %+v", result)
	}
	want := []string{
		"https://api.fibo.test/v1/results/gen-7",
		"https://api.fibo.test/v1/result/gen-7",
		"https://api.fibo.test/results/gen-7",
	}
	if len(transport.gets) != len(want) {
		t.Fatalf("probe count = %d, want %d (%v)", len(transport.gets), len(want), transport.gets)
	}
	for i, u := range want {
		if transport.gets[i] != u {
			t.Fatalf("probe %d = %q, want %q", i, transport.gets[i], u)
		}
	}
}

func TestGetResultAllEndpointsExhausted(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	client := newTestClient(t, transport)

	result := client.GetResult(context.Background(), "gen-404")
	if !result.Failed() {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !strings.Contains(result.ErrorMessage, "not found at any known endpoint") {
		t.Fatalf("error = %q", result.ErrorMessage)
	}
}

func TestMockModeDeterminism(t *testing.T) {
	client := NewClient(Options{MockMode: true})
	seed := int64(1234)
	req := Request{Prompt: "a castle on a hill", Width: 1024, Height: 576, Seed: &seed}

	first := client.Generate(context.Background(), req)
	second := client.Generate(context.Background(), req)

	if !first.Mock || !second.Mock {
		t.Fatalf("mock results must be tagged mock")
	}
	if first.ImageURL != second.ImageURL {
		t.Fatalf("mock urls differ: %q vs %q", first.ImageURL, second.ImageURL)
	}
	if first.GenerationID != second.GenerationID {
		t.Fatalf("mock ids differ: %q vs %q", first.GenerationID, second.GenerationID)
	}
	if first.Seed != seed {
		t.Fatalf("seed = %d, want caller-supplied %d", first.Seed, seed)
	}
}

func TestMockModeWithoutCredentials(t *testing.T) {
	client := NewClient(Options{APIKey: placeholderAPIKey})
	if !client.MockMode() {
		t.Fatalf("placeholder key must not count as credentials")
	}
	result := client.Generate(context.Background(), Request{Prompt: "a cat", Width: 512, Height: 512})
	if !result.Mock {
		t.Fatalf("expected mock result, got %+v", result)
	}
	if result.Seed == 0 && result.ImageURL == "" {
		t.Fatalf("mock result should carry a generated seed and url")
	}
}

func TestHealthCheckStates(t *testing.T) {
	noKey := NewClient(Options{})
	if state := noKey.HealthCheck(context.Background()); state != HealthNotConfigured {
		t.Fatalf("state = %q, want not_configured", state)
	}

	mock := NewClient(Options{APIKey: "real-key", MockMode: true})
	if state := mock.HealthCheck(context.Background()); state != HealthDegraded {
		t.Fatalf("state = %q, want degraded", state)
	}

	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.responses["https://api.fibo.test/v1/health"] = responseStub{status: http.StatusOK, body: []byte(`{}`)}
	healthy := newTestClient(t, transport)
	if state := healthy.HealthCheck(context.Background()); state != HealthHealthy {
		t.Fatalf("state = %q, want healthy", state)
	}

	unreachable := NewClient(Options{
		APIKey:     "real-key",
		BaseURL:    "https://api.fibo.test/v1",
		HTTPClient: &http.Client{Transport: &failingTransport{err: errors.New("no route to host")}},
	})
	if state := unreachable.HealthCheck(context.Background()); state != HealthUnreachable {
		t.Fatalf("state = %q, want unreachable", state)
	}
}

func TestStripVersionSegment(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://api.fibo.test/v1", "https://api.fibo.test"},
		{"https://api.fibo.test/v2", "https://api.fibo.test"},
		{"https://api.fibo.test/api", "https://api.fibo.test/api"},
		{"https://api.fibo.test", "https://api.fibo.test"},
		{"https://api.fibo.test/v1beta", "https://api.fibo.test/v1beta"},
	}
	for _, tc := range cases {
		if got := stripVersionSegment(tc.in); got != tc.want {
			t.Fatalf("stripVersionSegment(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type captureTransport struct {
	responses map[string]responseStub
	lastBody  []byte
	lastAuth  string
	gets      []string
}

type responseStub struct {
	status int
	body   []byte
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.lastAuth = req.Header.Get("Authorization")
	if req.Method == http.MethodPost {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		c.lastBody = body
	}
	if req.Method == http.MethodGet {
		c.gets = append(c.gets, req.URL.String())
	}
	if stub, ok := c.responses[req.URL.String()]; ok {
		return stub.toResponse(), nil
	}
	if stub, ok := c.responses[req.URL.Path]; ok {
		return stub.toResponse(), nil
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader(`{"error": "not found"}`)),
	}, nil
}

func (c *captureTransport) setJSONResponse(path string, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[path] = responseStub{status: http.StatusOK, body: body}
}

func (s responseStub) toResponse() *http.Response {
	return &http.Response{
		StatusCode: s.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(s.body)),
	}
}

type failingTransport struct {
	err error
}

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

type timeoutError struct{}

func (*timeoutError) Error() string   { return "request timed out" }
func (*timeoutError) Timeout() bool   { return true }
func (*timeoutError) Temporary() bool { return true }
