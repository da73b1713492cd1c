package ddragon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phturb/riot-relay-backend-go/model"
	modellolapi "github.com/phturb/riot-relay-backend-go/model/lolapi"
	"github.com/phturb/riot-relay-backend-go/riot"
)

const (
	DefaultBaseURL = "https://ddragon.leagueoflegends.com"
	// FallbackVersion is used whenever the version feed cannot be read.
	FallbackVersion = "14.19.1"

	ScopeVersion   = "Data Dragon version"
	ScopeChampions = "champions"
)

var errEmptyVersions = errors.New("league of legends versions result is empty, unable to identify latest version")

type Client struct {
	hc      *http.Client
	baseURL string
}

func NewClient(hc *http.Client, baseURL string) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		hc:      hc,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) get(ctx context.Context, scope string, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &riot.TransportError{Scope: scope, Err: err}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		slog.Error(fmt.Sprintf("[%s] - fetch error : %s", scope, err.Error()))
		return nil, &riot.TransportError{Scope: scope, Err: err}
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &riot.TransportError{Scope: scope, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		slog.Warn(fmt.Sprintf("[%s] - api error %d : %s", scope, res.StatusCode, string(body)))
		return nil, &riot.UpstreamError{Scope: scope, Status: res.StatusCode, Body: body}
	}
	return body, nil
}

// FetchVersion returns the latest version listed by the version feed.
func (c *Client) FetchVersion(ctx context.Context) (string, error) {
	body, err := c.get(ctx, ScopeVersion, c.baseURL+"/api/versions.json")
	if err != nil {
		return "", err
	}
	var vers []string
	if err := json.Unmarshal(body, &vers); err != nil {
		return "", &riot.TransportError{Scope: ScopeVersion, Err: err}
	}
	if len(vers) == 0 || vers[0] == "" {
		return "", &riot.TransportError{Scope: ScopeVersion, Err: errEmptyVersions}
	}
	return vers[0], nil
}

// ResolveVersion is FetchVersion that falls back to FallbackVersion instead
// of failing.
func (c *Client) ResolveVersion(ctx context.Context) string {
	v, err := c.FetchVersion(ctx)
	if err != nil {
		slog.Warn(fmt.Sprintf("[ResolveVersion] - using fallback version %s : %s", FallbackVersion, err.Error()))
		return FallbackVersion
	}
	return v
}

// ImageURL builds the CDN url of a champion square image.
func (c *Client) ImageURL(version string, full string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s", c.baseURL, version, full)
}

// ListChampions projects the champion catalog of version into summaries,
// keeping the order of the upstream data mapping.
func (c *Client) ListChampions(ctx context.Context, version string) ([]model.ChampionSummary, error) {
	u := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.baseURL, version)
	body, err := c.get(ctx, ScopeChampions, u)
	if err != nil {
		return nil, err
	}
	entries, err := decodeChampionData(body)
	if err != nil {
		slog.Error(fmt.Sprintf("[ListChampions] - malformed champion payload : %s", err.Error()))
		return nil, &riot.TransportError{Scope: ScopeChampions, Err: err}
	}
	champions := make([]model.ChampionSummary, 0, len(entries))
	for _, e := range entries {
		champions = append(champions, model.ChampionSummary{
			ID:    e.id,
			Name:  e.champion.Name,
			Image: c.ImageURL(version, e.champion.Image.Full),
		})
	}
	return champions, nil
}

type championEntry struct {
	id       string
	champion modellolapi.Champion
}

// decodeChampionData walks the top level object of champion.json and decodes
// the "data" mapping entry by entry so the payload order survives.
func decodeChampionData(body []byte) ([]championEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var entries []championEntry
	found := false
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "data" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}
		found = true
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		for dec.More() {
			id, err := readKey(dec)
			if err != nil {
				return nil, err
			}
			var champ modellolapi.Champion
			if err := dec.Decode(&champ); err != nil {
				return nil, fmt.Errorf("champion '%s' : %w", id, err)
			}
			entries = append(entries, championEntry{id: id, champion: champ})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, errors.New("champion payload has no data mapping")
	}
	return entries, nil
}

func expectDelim(dec *json.Decoder, d json.Delim) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if got, ok := t.(json.Delim); !ok || got != d {
		return fmt.Errorf("expected '%s', got %v", d, t)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	t, err := dec.Token()
	if err != nil {
		return "", err
	}
	k, ok := t.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", t)
	}
	return k, nil
}
