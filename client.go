// Package typecast is a client for the Typecast text-to-speech API.
//
// A Client is safe for concurrent use: every call performs exactly one
// HTTP round trip and holds no per-call state beyond the shared
// http.Client. Cancellation and timeouts flow through the context passed
// to each method.
package typecast

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the production Typecast API host.
	DefaultBaseURL = "https://api.typecast.ai"
	// DefaultTimeout bounds each HTTP request unless a custom client is supplied.
	DefaultTimeout = 60 * time.Second
)

// Config holds construction options for a Client. Only APIKey is needed
// for live calls; a missing key does not fail construction, each call
// then fails before any network I/O.
type Config struct {
	// APIKey authenticates requests against the service.
	APIKey string
	// BaseURL overrides the API host (defaults to DefaultBaseURL).
	BaseURL string
	// HTTPClient replaces the default transport (connection pooling,
	// proxies, TLS settings are its concern, not the SDK's).
	HTTPClient *http.Client
	// Timeout applies to the default transport only (defaults to DefaultTimeout).
	Timeout time.Duration
}

// Client calls the Typecast API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client from cfg.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// APIKeyMasked returns the configured API key with the middle elided,
// for logging.
func (c *Client) APIKeyMasked() string {
	if len(c.apiKey) > 8 {
		return c.apiKey[:4] + "..." + c.apiKey[len(c.apiKey)-4:]
	}
	return "****"
}

// do performs one round trip and returns the raw response. Transport
// faults (including context cancellation) come back as KindTransport
// errors wrapping the cause; no decoding happens on that path.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, http.Header, []byte, error) {
	if c.apiKey == "" {
		return 0, nil, nil, newValidationError("api key is required")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, nil, newTransportError(err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, newTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, newTransportError(err)
	}
	return resp.StatusCode, resp.Header, data, nil
}

// TextToSpeech synthesizes speech for the given request and returns the
// audio payload. The request is validated before any network call.
func (c *Client) TextToSpeech(ctx context.Context, req *TTSRequest) (*TTSResponse, error) {
	body, err := encodeTTSRequest(req)
	if err != nil {
		return nil, err
	}
	status, header, data, err := c.do(ctx, http.MethodPost, pathTextToSpeech, body)
	if err != nil {
		return nil, err
	}
	return decodeTTSResponse(status, header, data)
}

// Voices lists the available voices (v1 shape), optionally filtered by
// model. An empty result is valid, not an error.
func (c *Client) Voices(ctx context.Context, model TTSModel) ([]VoiceV1, error) {
	status, _, data, err := c.do(ctx, http.MethodGet, voicesV1Path(model), nil)
	if err != nil {
		return nil, err
	}
	return decodeVoicesV1(status, data)
}

// Voice fetches a single voice by identifier (v1 shape). A nonexistent
// id yields a not-found error, never a nil success.
func (c *Client) Voice(ctx context.Context, voiceID string) (*VoiceV1, error) {
	if voiceID == "" {
		return nil, newValidationError("voice_id is required")
	}
	status, _, data, err := c.do(ctx, http.MethodGet, voiceV1Path(voiceID), nil)
	if err != nil {
		return nil, err
	}
	return decodeVoiceV1(status, data)
}

// VoicesV2 lists the available voices (v2 shape). Filter fields combine
// with AND semantics on the server; the client forwards them verbatim and
// never filters locally.
func (c *Client) VoicesV2(ctx context.Context, filter *VoicesV2Filter) ([]VoiceV2, error) {
	status, _, data, err := c.do(ctx, http.MethodGet, voicesV2Path(filter), nil)
	if err != nil {
		return nil, err
	}
	return decodeVoicesV2(status, data)
}

// VoiceV2 fetches a single voice by identifier (v2 shape).
func (c *Client) VoiceV2(ctx context.Context, voiceID string) (*VoiceV2, error) {
	if voiceID == "" {
		return nil, newValidationError("voice_id is required")
	}
	status, _, data, err := c.do(ctx, http.MethodGet, voiceV2Path(voiceID), nil)
	if err != nil {
		return nil, err
	}
	return decodeVoiceV2(status, data)
}
