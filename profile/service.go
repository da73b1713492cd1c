package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phturb/riot-relay-backend-go/model"
	modellolapi "github.com/phturb/riot-relay-backend-go/model/lolapi"
	"github.com/phturb/riot-relay-backend-go/riot"
)

// RiotAPI is the subset of the upstream client the service relies on.
type RiotAPI interface {
	Configured() bool
	ResolveAccount(ctx context.Context, riotID string) (modellolapi.Account, error)
	GetSummoner(ctx context.Context, puuid string) (modellolapi.Summoner, error)
	GetChallengeData(ctx context.Context, puuid string) (json.RawMessage, error)
	GetChallengeConfig(ctx context.Context) (json.RawMessage, error)
	GetMatchIDs(ctx context.Context, puuid string, start int, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (json.RawMessage, error)
}

type Service interface {
	GetProfile(ctx context.Context, riotID string) (model.Profile, error)
	GetMatchHistory(ctx context.Context, puuid string) ([]json.RawMessage, error)
	GetChallengeConfig(ctx context.Context) (json.RawMessage, error)
}

type service struct {
	api RiotAPI
}

var _ Service = (*service)(nil)

func NewService(api RiotAPI) Service {
	return &service{api: api}
}

// GetProfile runs account, summoner and challenge lookups in order and stops
// at the first failure, returning that stage's error as is.
func (s *service) GetProfile(ctx context.Context, riotID string) (model.Profile, error) {
	if !s.api.Configured() {
		return model.Profile{}, riot.ErrUnconfigured
	}
	acc, err := s.api.ResolveAccount(ctx, riotID)
	if err != nil {
		return model.Profile{}, err
	}
	summoner, err := s.api.GetSummoner(ctx, acc.PUUID)
	if err != nil {
		return model.Profile{}, err
	}
	challengeData, err := s.api.GetChallengeData(ctx, acc.PUUID)
	if err != nil {
		return model.Profile{}, err
	}
	slog.Info(fmt.Sprintf("[GetProfile] - profile assembled for '%s'", riotID))
	slog.Debug(fmt.Sprintf("[GetProfile] - challenge data : %s", string(challengeData)))
	return model.Profile{
		RiotID:        riotID,
		PUUID:         acc.PUUID,
		SummonerLevel: summoner.SummonerLevel,
		ProfileIconID: summoner.ProfileIconID,
		ChallengeData: challengeData,
	}, nil
}

// GetMatchHistory fetches the most recent match ids then each match detail in
// order. Details the upstream rejects are skipped, any other failure aborts.
func (s *service) GetMatchHistory(ctx context.Context, puuid string) ([]json.RawMessage, error) {
	if !s.api.Configured() {
		return nil, riot.ErrUnconfigured
	}
	if puuid == "" {
		return nil, riot.ErrInvalidFormat
	}
	ids, err := s.api.GetMatchIDs(ctx, puuid, riot.MatchHistoryStart, riot.MatchHistoryCount)
	if err != nil {
		return nil, err
	}
	if len(ids) > riot.MatchHistoryCount {
		ids = ids[:riot.MatchHistoryCount]
	}
	matches := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		m, err := s.api.GetMatch(ctx, id)
		var ue *riot.UpstreamError
		if errors.As(err, &ue) {
			slog.Warn(fmt.Sprintf("[GetMatchHistory] - skipping match '%s', upstream returned %d", id, ue.Status))
			continue
		}
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	slog.Info(fmt.Sprintf("[GetMatchHistory] - %d of %d matches fetched for '%s'", len(matches), len(ids), puuid))
	return matches, nil
}

func (s *service) GetChallengeConfig(ctx context.Context) (json.RawMessage, error) {
	if !s.api.Configured() {
		return nil, riot.ErrUnconfigured
	}
	cfg, err := s.api.GetChallengeConfig(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug(fmt.Sprintf("[GetChallengeConfig] - challenge config : %s", string(cfg)))
	return cfg, nil
}
