package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// GetMatchIDs returns the ids of the most recent matches of puuid, newest first.
func (c *Client) GetMatchIDs(ctx context.Context, puuid string, start int, count int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids", c.regionalURL, url.PathEscape(puuid))
	q := url.Values{}
	q.Set("start", strconv.Itoa(start))
	q.Set("count", strconv.Itoa(count))
	var ids []string
	if err := c.getJSON(ctx, ScopeMatchHistory, endpoint, q, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) GetMatch(ctx context.Context, matchID string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalURL, url.PathEscape(matchID))
	return c.getRaw(ctx, ScopeMatch, endpoint, nil)
}
