package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	DefaultRegionalURL = "https://americas.api.riotgames.com"
	DefaultPlatformURL = "https://na1.api.riotgames.com"

	// Fixed match history window.
	MatchHistoryStart = 0
	MatchHistoryCount = 5
)

type Client struct {
	apiKey      string
	hc          *http.Client
	regionalURL string
	platformURL string
}

type Option func(*Client)

// WithRegionalURL overrides the host used for account and match calls.
func WithRegionalURL(u string) Option {
	return func(c *Client) {
		c.regionalURL = strings.TrimRight(u, "/")
	}
}

// WithPlatformURL overrides the host used for summoner and challenge calls.
func WithPlatformURL(u string) Option {
	return func(c *Client) {
		c.platformURL = strings.TrimRight(u, "/")
	}
}

func NewClient(hc *http.Client, apiKey string, opts ...Option) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{
		apiKey:      apiKey,
		hc:          hc,
		regionalURL: DefaultRegionalURL,
		platformURL: DefaultPlatformURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an api key is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// get issues a single GET with the api key attached as a query parameter and
// returns the raw body of a 2xx response.
func (c *Client) get(ctx context.Context, scope string, endpoint string, query url.Values) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrUnconfigured
	}
	if query == nil {
		query = url.Values{}
	}
	logged := endpoint
	if len(query) > 0 {
		logged += "?" + query.Encode()
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &TransportError{Scope: scope, Err: err}
	}
	slog.Debug(fmt.Sprintf("[%s] - GET %s", scope, logged))
	res, err := c.hc.Do(req)
	if err != nil {
		slog.Error(fmt.Sprintf("[%s] - %s fetch error : %s", scope, logged, redact(err.Error(), c.apiKey)))
		return nil, &TransportError{Scope: scope, Err: stripURL(err)}
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		slog.Error(fmt.Sprintf("[%s] - failed to read %s response : %s", scope, logged, err.Error()))
		return nil, &TransportError{Scope: scope, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		slog.Warn(fmt.Sprintf("[%s] - %s api error %d : %s", scope, logged, res.StatusCode, string(body)))
		return nil, &UpstreamError{Scope: scope, Status: res.StatusCode, Body: body}
	}
	return body, nil
}

// getJSON is get followed by a decode of the body into v. Undecodable bodies
// are reported as a TransportError.
func (c *Client) getJSON(ctx context.Context, scope string, endpoint string, query url.Values, v any) error {
	body, err := c.get(ctx, scope, endpoint, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		slog.Error(fmt.Sprintf("[%s] - malformed payload : %s", scope, err.Error()))
		return &TransportError{Scope: scope, Err: err}
	}
	return nil
}

// getRaw returns the body verbatim after checking it is valid JSON.
func (c *Client) getRaw(ctx context.Context, scope string, endpoint string, query url.Values) (json.RawMessage, error) {
	body, err := c.get(ctx, scope, endpoint, query)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		slog.Error(fmt.Sprintf("[%s] - malformed payload, body is not json", scope))
		return nil, &TransportError{Scope: scope, Err: fmt.Errorf("invalid json payload")}
	}
	return json.RawMessage(body), nil
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "<redacted>")
}

// stripURL drops the request url, which carries the api key, from client errors.
func stripURL(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err
	}
	return err
}
