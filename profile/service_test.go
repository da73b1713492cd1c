package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	modellolapi "github.com/phturb/riot-relay-backend-go/model/lolapi"
	"github.com/phturb/riot-relay-backend-go/riot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRiotAPI struct {
	mock.Mock
	configured bool
}

func (m *MockRiotAPI) Configured() bool {
	return m.configured
}

func (m *MockRiotAPI) ResolveAccount(ctx context.Context, riotID string) (modellolapi.Account, error) {
	args := m.Called(ctx, riotID)
	return args.Get(0).(modellolapi.Account), args.Error(1)
}

func (m *MockRiotAPI) GetSummoner(ctx context.Context, puuid string) (modellolapi.Summoner, error) {
	args := m.Called(ctx, puuid)
	return args.Get(0).(modellolapi.Summoner), args.Error(1)
}

func (m *MockRiotAPI) GetChallengeData(ctx context.Context, puuid string) (json.RawMessage, error) {
	args := m.Called(ctx, puuid)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockRiotAPI) GetChallengeConfig(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockRiotAPI) GetMatchIDs(ctx context.Context, puuid string, start int, count int) ([]string, error) {
	args := m.Called(ctx, puuid, start, count)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockRiotAPI) GetMatch(ctx context.Context, matchID string) (json.RawMessage, error) {
	args := m.Called(ctx, matchID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func setupTest() (Service, *MockRiotAPI) {
	api := &MockRiotAPI{configured: true}
	return NewService(api), api
}

func TestGetProfile(t *testing.T) {
	s, api := setupTest()
	ctx := context.Background()
	challenges := json.RawMessage(`{"totalPoints":{"level":"GOLD"}}`)
	api.On("ResolveAccount", ctx, "Faker#KR1").Return(modellolapi.Account{PUUID: "p-1"}, nil)
	api.On("GetSummoner", ctx, "p-1").Return(modellolapi.Summoner{SummonerLevel: 512, ProfileIconID: 29}, nil)
	api.On("GetChallengeData", ctx, "p-1").Return(challenges, nil)

	p, err := s.GetProfile(ctx, "Faker#KR1")
	require.NoError(t, err)
	assert.Equal(t, "Faker#KR1", p.RiotID)
	assert.Equal(t, "p-1", p.PUUID)
	assert.Equal(t, 512, p.SummonerLevel)
	assert.Equal(t, 29, p.ProfileIconID)
	assert.JSONEq(t, string(challenges), string(p.ChallengeData))
	api.AssertExpectations(t)
}

func TestGetProfileUnconfigured(t *testing.T) {
	s, api := setupTest()
	api.configured = false

	_, err := s.GetProfile(context.Background(), "Faker#KR1")
	assert.ErrorIs(t, err, riot.ErrUnconfigured)
	api.AssertNotCalled(t, "ResolveAccount", mock.Anything, mock.Anything)
}

func TestGetProfilePropagatesAccountError(t *testing.T) {
	s, api := setupTest()
	api.On("ResolveAccount", mock.Anything, "nohash").Return(modellolapi.Account{}, riot.ErrInvalidFormat)

	_, err := s.GetProfile(context.Background(), "nohash")
	assert.ErrorIs(t, err, riot.ErrInvalidFormat)
	api.AssertNotCalled(t, "GetSummoner", mock.Anything, mock.Anything)
}

func TestGetProfileSummonerFailureShortCircuits(t *testing.T) {
	s, api := setupTest()
	summonerErr := &riot.UpstreamError{Scope: riot.ScopeSummoner, Status: http.StatusNotFound, Body: []byte(`{}`)}
	api.On("ResolveAccount", mock.Anything, "a#b").Return(modellolapi.Account{PUUID: "p-1"}, nil)
	api.On("GetSummoner", mock.Anything, "p-1").Return(modellolapi.Summoner{}, summonerErr)

	_, err := s.GetProfile(context.Background(), "a#b")
	var ue *riot.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, riot.ScopeSummoner, ue.Scope)
	api.AssertNotCalled(t, "GetChallengeData", mock.Anything, mock.Anything)
}

func TestGetProfileChallengeTransportError(t *testing.T) {
	s, api := setupTest()
	api.On("ResolveAccount", mock.Anything, "a#b").Return(modellolapi.Account{PUUID: "p-1"}, nil)
	api.On("GetSummoner", mock.Anything, "p-1").Return(modellolapi.Summoner{SummonerLevel: 1}, nil)
	api.On("GetChallengeData", mock.Anything, "p-1").Return(nil, &riot.TransportError{Scope: riot.ScopeChallenge, Err: errors.New("connection reset")})

	_, err := s.GetProfile(context.Background(), "a#b")
	var te *riot.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, riot.ScopeChallenge, te.Scope)
}

func TestGetMatchHistorySkipsRejectedMatches(t *testing.T) {
	s, api := setupTest()
	ids := []string{"M1", "M2", "M3", "M4", "M5"}
	api.On("GetMatchIDs", mock.Anything, "p-1", 0, 5).Return(ids, nil)
	api.On("GetMatch", mock.Anything, "M1").Return(json.RawMessage(`{"id":1}`), nil)
	api.On("GetMatch", mock.Anything, "M2").Return(nil, &riot.UpstreamError{Scope: riot.ScopeMatch, Status: http.StatusNotFound})
	api.On("GetMatch", mock.Anything, "M3").Return(json.RawMessage(`{"id":3}`), nil)
	api.On("GetMatch", mock.Anything, "M4").Return(nil, &riot.UpstreamError{Scope: riot.ScopeMatch, Status: http.StatusForbidden})
	api.On("GetMatch", mock.Anything, "M5").Return(json.RawMessage(`{"id":5}`), nil)

	matches, err := s.GetMatchHistory(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.JSONEq(t, `{"id":1}`, string(matches[0]))
	assert.JSONEq(t, `{"id":3}`, string(matches[1]))
	assert.JSONEq(t, `{"id":5}`, string(matches[2]))
	api.AssertNumberOfCalls(t, "GetMatch", 5)
}

func TestGetMatchHistoryCapsAtFive(t *testing.T) {
	s, api := setupTest()
	api.On("GetMatchIDs", mock.Anything, "p-1", 0, 5).Return([]string{"M1", "M2", "M3", "M4", "M5", "M6"}, nil)
	api.On("GetMatch", mock.Anything, mock.Anything).Return(json.RawMessage(`{}`), nil)

	matches, err := s.GetMatchHistory(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Len(t, matches, 5)
	api.AssertNotCalled(t, "GetMatch", mock.Anything, "M6")
}

func TestGetMatchHistoryTransportErrorAborts(t *testing.T) {
	s, api := setupTest()
	api.On("GetMatchIDs", mock.Anything, "p-1", 0, 5).Return([]string{"M1", "M2", "M3"}, nil)
	api.On("GetMatch", mock.Anything, "M1").Return(json.RawMessage(`{}`), nil)
	api.On("GetMatch", mock.Anything, "M2").Return(nil, &riot.TransportError{Scope: riot.ScopeMatch, Err: errors.New("timeout")})

	matches, err := s.GetMatchHistory(context.Background(), "p-1")
	var te *riot.TransportError
	require.True(t, errors.As(err, &te))
	assert.Nil(t, matches)
	api.AssertNotCalled(t, "GetMatch", mock.Anything, "M3")
}

func TestGetMatchHistoryListFailureAborts(t *testing.T) {
	s, api := setupTest()
	api.On("GetMatchIDs", mock.Anything, "p-1", 0, 5).Return(nil, &riot.UpstreamError{Scope: riot.ScopeMatchHistory, Status: http.StatusBadRequest})

	_, err := s.GetMatchHistory(context.Background(), "p-1")
	var ue *riot.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, riot.ScopeMatchHistory, ue.Scope)
	api.AssertNotCalled(t, "GetMatch", mock.Anything, mock.Anything)
}

func TestGetMatchHistoryUnconfigured(t *testing.T) {
	s, api := setupTest()
	api.configured = false

	_, err := s.GetMatchHistory(context.Background(), "p-1")
	assert.ErrorIs(t, err, riot.ErrUnconfigured)
	api.AssertNotCalled(t, "GetMatchIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetChallengeConfig(t *testing.T) {
	s, api := setupTest()
	api.On("GetChallengeConfig", mock.Anything).Return(json.RawMessage(`[{"id":0}]`), nil)

	cfg, err := s.GetChallengeConfig(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":0}]`, string(cfg))

	api.configured = false
	_, err = s.GetChallengeConfig(context.Background())
	assert.ErrorIs(t, err, riot.ErrUnconfigured)
	api.AssertNumberOfCalls(t, "GetChallengeConfig", 1)
}
