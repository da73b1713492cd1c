package internal

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "5000"
	defaultAllowedOrigin = "https://lawrp.github.io"
	defaultRegionalURL   = "https://americas.api.riotgames.com"
	defaultPlatformURL   = "https://na1.api.riotgames.com"
	defaultDDragonURL    = "https://ddragon.leagueoflegends.com"
)

type ApiKeys struct {
	RiotApiKey string
}

type Upstream struct {
	RegionalURL string
	PlatformURL string
	DDragonURL  string
	// Cron spec used to refresh the cached ddragon version, empty disables it.
	DDragonRefreshCron string
}

type Server struct {
	Port          string
	AllowedOrigin string
}

// Config is read once at startup and never mutated afterwards.
type Config struct {
	ApiKeys  ApiKeys
	Upstream Upstream
	Server   Server
	LogLevel slog.Level
}

// String never prints the api key itself.
func (c Config) String() string {
	key := "<unset>"
	if c.ApiKeys.RiotApiKey != "" {
		key = "<redacted>"
	}
	return fmt.Sprintf("{ApiKeys:{RiotApiKey:%s} Upstream:%+v Server:%+v LogLevel:%s}", key, c.Upstream, c.Server, c.LogLevel)
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func parseLogLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		slog.Warn(fmt.Sprintf("unknown LOG_LEVEL '%s', using info", s))
		return slog.LevelInfo
	}
	return l
}

// LoadConfig loads the given env files (".env" when none are given) and builds
// the config from the environment. A missing env file is not an error, hosts
// are expected to inject the variables directly.
func LoadConfig(filenames ...string) Config {
	if err := godotenv.Load(filenames...); err != nil {
		slog.Warn(fmt.Sprintf("no env file loaded, reading process environment only : %s", err.Error()))
	}
	return ConfigFromEnv()
}

func ConfigFromEnv() Config {
	c := Config{
		ApiKeys: ApiKeys{
			RiotApiKey: strings.TrimSpace(os.Getenv("RIOT_API_KEY")),
		},
		Upstream: Upstream{
			RegionalURL:        strings.TrimRight(getEnv("RIOT_REGIONAL_URL", defaultRegionalURL), "/"),
			PlatformURL:        strings.TrimRight(getEnv("RIOT_PLATFORM_URL", defaultPlatformURL), "/"),
			DDragonURL:         strings.TrimRight(getEnv("DDRAGON_URL", defaultDDragonURL), "/"),
			DDragonRefreshCron: strings.TrimSpace(os.Getenv("DDRAGON_REFRESH_CRON")),
		},
		Server: Server{
			Port:          getEnv("PORT", defaultPort),
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", defaultAllowedOrigin),
		},
		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}
	if c.ApiKeys.RiotApiKey == "" {
		slog.Warn("RIOT_API_KEY is not set, credentialed endpoints will refuse requests")
	}
	slog.Info(fmt.Sprintf("'Config' initialized %v", c))
	return c
}
