// Package elevenlabs is a small REST client for the ElevenLabs
// text-to-speech API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiKeyHeader = "xi-api-key"

	endpointVoices     = "/v1/voices"
	endpointVoice      = "/v1/voices/{voice_id}"
	endpointModels     = "/v1/models"
	endpointTTS        = "/v1/text-to-speech/{voice_id}"
	endpointTTSStream  = "/v1/text-to-speech/{voice_id}/stream"
	streamChunkSize    = 4096
	maxErrorBodyLength = 512
)

// Recorder observes completed API requests. err is nil on success.
type Recorder interface {
	ObserveAPIRequest(endpoint string, err error, elapsed time.Duration)
}

// Client talks to the ElevenLabs REST API. Buffered calls go through a
// retrying httpkit client; the streaming endpoint uses a plain http.Client
// so the body can be copied as it arrives.
type Client struct {
	http     *httpkit.Client
	stream   *http.Client
	baseURL  string
	apiKey   string
	limiter  *rate.Limiter
	logger   *zap.Logger
	recorder Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRateLimit gates every request behind a token bucket of rps requests
// per second. A non-positive rps disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithRecorder reports each request to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient creates a client for baseURL. An empty apiKey is allowed; every
// call then fails with ErrMissingAPIKey.
func NewClient(apiKey, baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http:    httpkit.New(timeout),
		stream:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Inf, 0),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListVoices returns every voice available to the account.
func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	body, err := c.get(ctx, endpointVoices, endpointVoices)
	if err != nil {
		return nil, err
	}
	var resp voicesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &InvalidJSONError{Details: endpointVoices, Err: err}
	}
	return resp.Voices, nil
}

// GetVoice returns a single voice including its settings.
func (c *Client) GetVoice(ctx context.Context, voiceID string) (*Voice, error) {
	if voiceID == "" {
		return nil, errors.New("voice ID is required")
	}
	body, err := c.get(ctx, endpointVoice, "/v1/voices/"+url.PathEscape(voiceID))
	if err != nil {
		return nil, err
	}
	var v Voice
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &InvalidJSONError{Details: endpointVoice, Err: err}
	}
	return &v, nil
}

// ListModels returns the models available to the account.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	body, err := c.get(ctx, endpointModels, endpointModels)
	if err != nil {
		return nil, err
	}
	var models []Model
	if err := json.Unmarshal(body, &models); err != nil {
		return nil, &InvalidJSONError{Details: endpointModels, Err: err}
	}
	return models, nil
}

// TextToSpeech synthesizes req and returns the whole audio body.
func (c *Client) TextToSpeech(ctx context.Context, req SpeechRequest) (audio []byte, err error) {
	httpReq, err := c.newSpeechRequest(ctx, endpointTTS, "/v1/text-to-speech/"+url.PathEscape(req.VoiceID), req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { c.observe(endpointTTS, err, start) }()

	audio, err = c.http.DoRequest(httpReq)
	if err != nil {
		return nil, &APINetworkError{Endpoint: endpointTTS, Err: err}
	}
	c.logger.Debug("speech synthesized",
		zap.String("voice_id", req.VoiceID),
		zap.Int("bytes", len(audio)))
	return audio, nil
}

// StreamResult summarizes a streamed synthesis.
type StreamResult struct {
	Bytes  int64
	Chunks int
}

// StreamTextToSpeech synthesizes req through the streaming endpoint and
// copies the audio into w as it arrives.
func (c *Client) StreamTextToSpeech(ctx context.Context, req SpeechRequest, w io.Writer) (res *StreamResult, err error) {
	httpReq, err := c.newSpeechRequest(ctx, endpointTTSStream, "/v1/text-to-speech/"+url.PathEscape(req.VoiceID)+"/stream", req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { c.observe(endpointTTSStream, err, start) }()

	resp, err := c.stream.Do(httpReq)
	if err != nil {
		return nil, &APINetworkError{Endpoint: endpointTTSStream, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		return nil, &APIResponseError{Endpoint: endpointTTSStream, StatusCode: resp.StatusCode, Body: string(body)}
	}

	res = &StreamResult{}
	buf := make([]byte, streamChunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return nil, fmt.Errorf("writing audio chunk: %w", err)
			}
			res.Bytes += int64(n)
			res.Chunks++
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, &APINetworkError{Endpoint: endpointTTSStream, Err: readErr}
		}
	}

	c.logger.Debug("speech streamed",
		zap.String("voice_id", req.VoiceID),
		zap.Int64("bytes", res.Bytes),
		zap.Int("chunks", res.Chunks))
	return res, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string) (body []byte, err error) {
	if err := c.ready(ctx); err != nil {
		return nil, err
	}
	u, err := c.buildURL(endpoint, path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &APINetworkError{Endpoint: endpoint, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	defer func() { c.observe(endpoint, err, start) }()

	body, err = c.http.DoRequest(req)
	if err != nil {
		return nil, &APINetworkError{Endpoint: endpoint, Err: err}
	}
	return body, nil
}

func (c *Client) newSpeechRequest(ctx context.Context, endpoint, path string, sr SpeechRequest) (*http.Request, error) {
	if sr.Text == "" {
		return nil, errors.New("text is required")
	}
	if sr.VoiceID == "" {
		return nil, errors.New("voice ID is required")
	}
	if err := c.ready(ctx); err != nil {
		return nil, err
	}

	u, err := c.buildURL(endpoint, path)
	if err != nil {
		return nil, err
	}
	if sr.OutputFormat != "" {
		q := u.Query()
		q.Set("output_format", sr.OutputFormat)
		u.RawQuery = q.Encode()
	}

	payload, err := json.Marshal(sr)
	if err != nil {
		return nil, fmt.Errorf("encoding speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, &APINetworkError{Endpoint: endpoint, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	return req, nil
}

// ready checks the key and waits for the rate limiter.
func (c *Client) ready(ctx context.Context) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return nil
}

func (c *Client) buildURL(endpoint, path string) (*url.URL, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &APINetworkError{Endpoint: endpoint, Err: fmt.Errorf("parsing base URL: %w", err)}
	}
	u = u.JoinPath(path)
	return u, nil
}

func (c *Client) observe(endpoint string, err error, start time.Time) {
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Debug("elevenlabs request failed",
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		c.logger.Debug("elevenlabs request",
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", elapsed))
	}
	if c.recorder != nil {
		c.recorder.ObserveAPIRequest(endpoint, err, elapsed)
	}
}
