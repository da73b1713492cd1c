package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phturb/riot-relay-backend-go/ddragon"
	"github.com/phturb/riot-relay-backend-go/model"
	"github.com/phturb/riot-relay-backend-go/riot"
)

const (
	msgUnconfigured  = "Riot API key not configured."
	msgInvalidFormat = "Invalid Riot ID format. Use gameName#tagLine."
)

var upstreamMessages = map[string]string{
	riot.ScopeAccount:         "Invalid Riot ID or API error.",
	riot.ScopeSummoner:        "Summoner data not found.",
	riot.ScopeChallenge:       "Challenge data fetch failed.",
	riot.ScopeChallengeConfig: "Failed to fetch challenge config.",
	riot.ScopeMatchHistory:    "Failed to fetch match history.",
	ddragon.ScopeChampions:    "Failed to fetch champions.",
	ddragon.ScopeVersion:      "Failed to fetch Data Dragon version.",
}

// transportScopes maps a scope to the name used in connection error messages.
var transportScopes = map[string]string{
	riot.ScopeMatch: riot.ScopeMatchHistory,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(fmt.Sprintf("failed to encode response : %s", err.Error()))
	}
}

// details returns the upstream body as json when it parses, as text otherwise.
func details(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}

// errorResponse translates a service error to the status and body sent back
// to the caller.
func errorResponse(err error) (int, model.ErrorResponse) {
	var ue *riot.UpstreamError
	var te *riot.TransportError
	switch {
	case errors.Is(err, riot.ErrUnconfigured):
		return http.StatusInternalServerError, model.ErrorResponse{Error: msgUnconfigured}
	case errors.Is(err, riot.ErrInvalidFormat):
		return http.StatusBadRequest, model.ErrorResponse{Error: msgInvalidFormat}
	case errors.As(err, &ue):
		msg, ok := upstreamMessages[ue.Scope]
		if !ok {
			msg = fmt.Sprintf("Failed to fetch %s.", ue.Scope)
		}
		// The version endpoint never carried upstream details.
		if ue.Scope == ddragon.ScopeVersion {
			return http.StatusBadRequest, model.ErrorResponse{Error: msg}
		}
		return http.StatusBadRequest, model.ErrorResponse{Error: msg, Details: details(ue.Body)}
	case errors.As(err, &te):
		scope := te.Scope
		if s, ok := transportScopes[scope]; ok {
			scope = s
		}
		return http.StatusInternalServerError, model.ErrorResponse{Error: fmt.Sprintf("Connection error during %s fetch.", scope)}
	}
	return http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error."}
}

func writeError(w http.ResponseWriter, err error) {
	status, body := errorResponse(err)
	slog.Error(fmt.Sprintf("[writeError] - responding %d '%s' : %s", status, body.Error, err.Error()))
	writeJSON(w, status, body)
}
