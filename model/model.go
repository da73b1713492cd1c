package model

import "encoding/json"

type LoginRequest struct {
	RiotID string `json:"riotId"`
}

type Profile struct {
	RiotID        string          `json:"riotId"`
	PUUID         string          `json:"puuid"`
	SummonerLevel int             `json:"summonerLevel"`
	ProfileIconID int             `json:"profileIconId"`
	ChallengeData json.RawMessage `json:"challengeData"`
}

type ChampionSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type Version struct {
	Version string `json:"version"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
