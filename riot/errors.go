package riot

import (
	"errors"
	"fmt"
)

var (
	ErrUnconfigured  = errors.New("riot api key not configured")
	ErrInvalidFormat = errors.New("invalid riot id format, expected gameName#tagLine")
)

// Scopes label which upstream call failed.
const (
	ScopeAccount         = "account"
	ScopeSummoner        = "summoner"
	ScopeChallenge       = "challenge"
	ScopeChallengeConfig = "challenge config"
	ScopeMatchHistory    = "match history"
	ScopeMatch           = "match"
)

// UpstreamError is returned when the upstream answered with a non 2xx status.
type UpstreamError struct {
	Scope  string
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream returned status %d", e.Scope, e.Status)
}

// TransportError is returned when the upstream call could not complete.
type TransportError struct {
	Scope string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %s", e.Scope, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
