package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"murmur/internal/config"
	"murmur/internal/services"
)

const listenPath = "/v1/listen"

// maxErrorBodyBytes bounds how much of an error response is kept for logging.
const maxErrorBodyBytes = 512

// HTTPDoer describes the HTTP client used by the Deepgram service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options captures the request knobs sent with every transcription call.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	SmartFormat bool
	Diarize     bool
	Timeout     time.Duration
}

// Client calls the Deepgram prerecorded transcription endpoint.
type Client struct {
	opts   Options
	client HTTPDoer
}

// New constructs a client from application configuration. It fails when the
// credential is missing so a bad setup is caught before the monitor starts.
func New(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "deepgram", "new", "config is required", nil)
	}
	opts := Options{
		APIKey:      cfg.Deepgram.APIKey,
		BaseURL:     cfg.Deepgram.BaseURL,
		Model:       cfg.Deepgram.Model,
		SmartFormat: cfg.Deepgram.SmartFormat,
		Diarize:     cfg.Deepgram.Diarize,
		Timeout:     cfg.RequestTimeout(),
	}
	return NewWithClient(opts, nil)
}

// NewWithClient constructs a client with an explicit HTTP doer, primarily for
// tests. A nil doer falls back to a timeout-bounded http.Client.
func NewWithClient(opts Options, doer HTTPDoer) (*Client, error) {
	opts.APIKey = strings.TrimSpace(opts.APIKey)
	if opts.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "deepgram", "new", "API key is required", nil)
	}
	opts.BaseURL = strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if opts.BaseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "deepgram", "new", "base URL is required", nil)
	}
	opts.Model = strings.TrimSpace(opts.Model)
	if opts.Model == "" {
		return nil, services.Wrap(services.ErrConfiguration, "deepgram", "new", "model is required", nil)
	}
	if doer == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 2 * time.Minute
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{opts: opts, client: doer}, nil
}

type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe submits audio bytes and returns the transcript text. The call is
// synchronous; it does not return until Deepgram responds or the request
// fails.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	endpoint := c.opts.BaseURL + listenPath
	query := url.Values{}
	query.Set("model", c.opts.Model)
	query.Set("smart_format", strconv.FormatBool(c.opts.SmartFormat))
	query.Set("diarize", strconv.FormatBool(c.opts.Diarize))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+query.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "deepgram", "build request", "", err)
	}
	req.Header.Set("Authorization", "Token "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "deepgram", "transcribe", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := readErrorBody(resp.Body)
		return "", services.Wrap(services.ErrTranscription, "deepgram", "transcribe",
			fmt.Sprintf("status %d: %s", resp.StatusCode, snippet), nil)
	}

	var decoded listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", services.Wrap(services.ErrTranscription, "deepgram", "decode response", "", err)
	}
	if len(decoded.Results.Channels) == 0 || len(decoded.Results.Channels[0].Alternatives) == 0 {
		return "", services.Wrap(services.ErrTranscription, "deepgram", "decode response", "response missing transcript", nil)
	}
	return decoded.Results.Channels[0].Alternatives[0].Transcript, nil
}

func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil && !errors.Is(err, io.EOF) {
		return "(unreadable body)"
	}
	snippet := strings.TrimSpace(string(data))
	if snippet == "" {
		return "(empty body)"
	}
	return snippet
}
