package riot

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	modellolapi "github.com/phturb/riot-relay-backend-go/model/lolapi"
)

// ParseRiotID splits a "gameName#tagLine" identifier. Exactly one '#' is
// accepted and neither side may be empty.
func ParseRiotID(riotID string) (gameName string, tagLine string, err error) {
	if strings.Count(riotID, "#") != 1 {
		return "", "", ErrInvalidFormat
	}
	gameName, tagLine, _ = strings.Cut(riotID, "#")
	if strings.TrimSpace(gameName) == "" || strings.TrimSpace(tagLine) == "" {
		return "", "", ErrInvalidFormat
	}
	return gameName, tagLine, nil
}

// ResolveAccount maps a riot id to the account and its puuid.
func (c *Client) ResolveAccount(ctx context.Context, riotID string) (modellolapi.Account, error) {
	gameName, tagLine, err := ParseRiotID(riotID)
	if err != nil {
		slog.Warn(fmt.Sprintf("[ResolveAccount] - validation failed for riot id '%s'", riotID))
		return modellolapi.Account{}, err
	}
	if !c.Configured() {
		return modellolapi.Account{}, ErrUnconfigured
	}
	slog.Info(fmt.Sprintf("[ResolveAccount] - parsed game name '%s', tag line '%s'", gameName, tagLine))

	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalURL, url.PathEscape(gameName), url.PathEscape(tagLine))
	var acc modellolapi.Account
	if err := c.getJSON(ctx, ScopeAccount, endpoint, nil, &acc); err != nil {
		return modellolapi.Account{}, err
	}
	if acc.PUUID == "" {
		slog.Error("[ResolveAccount] - account payload is missing puuid")
		return modellolapi.Account{}, &TransportError{Scope: ScopeAccount, Err: fmt.Errorf("missing puuid in account payload")}
	}
	return acc, nil
}
