// Package relay posts contact form submissions to a hosted form relay
// (formsubmit.co style) and normalises its JSON reply.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the AJAX entry point of formsubmit.co. The relay token
// is appended as the last path segment.
const DefaultBaseURL = "https://formsubmit.co/ajax"

// maxReplyBytes caps how much of a relay reply is read. Longer replies are
// truncated and fail to decode.
const maxReplyBytes = 64 << 10

// Doer is the subset of *http.Client the relay needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Submission is the payload forwarded to the relay.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Values encodes the submission with the field names the relay expects.
func (s Submission) Values() url.Values {
	v := url.Values{}
	v.Set("name", s.Name)
	v.Set("email", s.Email)
	v.Set("message", s.Message)
	return v
}

// Reply is the relay's answer once the success flag has been normalised.
type Reply struct {
	Success bool
	Message string
}

// Client sends submissions to a single relay endpoint.
type Client struct {
	endpoint   string
	httpClient Doer
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithLogger sets the logger used for per-request debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l.With().Str("component", "relay").Logger() }
}

// NewClient returns a client for endpoint. The endpoint must be an absolute
// http(s) URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse relay endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("relay endpoint %q is not an absolute http(s) URL", endpoint)
	}

	c := &Client{
		endpoint:   u.String(),
		httpClient: newHTTPClient(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// newHTTPClient does not follow redirects: a redirected POST would be
// replayed as a bodyless GET, so the redirect is returned as the reply.
func newHTTPClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Endpoint builds the relay URL from a base URL and an identifying token.
func Endpoint(baseURL, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("relay token is empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return url.JoinPath(baseURL, token)
}

// Send issues exactly one POST for sub. It never retries and sets no timeout
// of its own; ctx is the only way to bound it.
//
// A nil error means the relay confirmed success. Otherwise the error is a
// *TransportError or an *ApplicationError.
func (c *Client) Send(ctx context.Context, sub Submission) (Reply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(sub.Values().Encode()))
	if err != nil {
		return Reply{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("relay request failed")
		return Reply{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return Reply{}, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug().Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("relay responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error pages sometimes still carry a JSON reason.
		var w wireReply
		_ = json.Unmarshal(body, &w)
		return Reply{}, &TransportError{StatusCode: resp.StatusCode, Message: w.Message}
	}

	reply, err := decodeReply(body)
	if err != nil {
		return Reply{}, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	if !reply.Success {
		return reply, &ApplicationError{Message: reply.Message}
	}
	return reply, nil
}
