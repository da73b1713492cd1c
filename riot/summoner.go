package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	modellolapi "github.com/phturb/riot-relay-backend-go/model/lolapi"
)

func (c *Client) GetSummoner(ctx context.Context, puuid string) (modellolapi.Summoner, error) {
	endpoint := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformURL, url.PathEscape(puuid))
	var s modellolapi.Summoner
	if err := c.getJSON(ctx, ScopeSummoner, endpoint, nil, &s); err != nil {
		return modellolapi.Summoner{}, err
	}
	return s, nil
}

// GetChallengeData returns the player's challenge payload untouched.
func (c *Client) GetChallengeData(ctx context.Context, puuid string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/lol/challenges/v1/player-data/%s", c.platformURL, url.PathEscape(puuid))
	return c.getRaw(ctx, ScopeChallenge, endpoint, nil)
}

// GetChallengeConfig returns the challenge configuration payload untouched.
func (c *Client) GetChallengeConfig(ctx context.Context) (json.RawMessage, error) {
	endpoint := c.platformURL + "/lol/challenges/v1/challenges/config"
	return c.getRaw(ctx, ScopeChallengeConfig, endpoint, nil)
}
