package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/phturb/riot-relay-backend-go/internal"
	"github.com/phturb/riot-relay-backend-go/model"
	"github.com/phturb/riot-relay-backend-go/profile"
)

type Catalog interface {
	FetchVersion(ctx context.Context) (string, error)
	ListChampions(ctx context.Context, version string) ([]model.ChampionSummary, error)
}

type VersionSource interface {
	Version() string
}

type server struct {
	srv *http.Server
	cfg internal.Server

	ps       profile.Service
	catalog  Catalog
	versions VersionSource
}

func NewServer(cfg internal.Server, ps profile.Service, catalog Catalog, versions VersionSource) *server {
	return &server{
		cfg:      cfg,
		ps:       ps,
		catalog:  catalog,
		versions: versions,
	}
}

// Handler builds the router with CORS restricted to the configured origin on
// every /api route.
func (s *server) Handler() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}).Methods(http.MethodGet)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/match-history/{puuid}", s.handleMatchHistory).Methods(http.MethodGet)
	api.HandleFunc("/champions", s.handleChampions).Methods(http.MethodGet)
	api.HandleFunc("/challenges/config", s.handleChallengeConfig).Methods(http.MethodGet)
	api.HandleFunc("/ddragon-version", s.handleDDragonVersion).Methods(http.MethodGet)
	api.Use(handlers.CORS(
		handlers.AllowedOrigins([]string{s.cfg.AllowedOrigin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	))
	// Preflight requests need a matching route for the CORS middleware to run.
	api.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	return handlers.LoggingHandler(os.Stdout, router)
}

func (s *server) GetHTTPServer() (*http.Server, error) {
	if s.srv == nil {
		return nil, errors.New("http server is not started yet")
	}
	return s.srv, nil
}

func (s *server) Start(ctx context.Context) chan error {
	serverAddr := "0.0.0.0:" + s.cfg.Port
	slog.Info("starting server on port " + serverAddr)
	s.srv = &http.Server{
		Handler:      s.Handler(),
		Addr:         serverAddr,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return errCh
}

func (s *server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	slog.Info("shutting down http server")
	return s.srv.Shutdown(ctx)
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn(fmt.Sprintf("[handleLogin] - unable to decode request body : %v", err))
		req = model.LoginRequest{}
	}
	slog.Info(fmt.Sprintf("[handleLogin] - received login request for '%s'", req.RiotID))
	p, err := s.ps.GetProfile(r.Context(), req.RiotID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleMatchHistory(w http.ResponseWriter, r *http.Request) {
	puuid := mux.Vars(r)["puuid"]
	matches, err := s.ps.GetMatchHistory(r.Context(), puuid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *server) handleChampions(w http.ResponseWriter, r *http.Request) {
	champions, err := s.catalog.ListChampions(r.Context(), s.versions.Version())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, champions)
}

func (s *server) handleChallengeConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.ps.GetChallengeConfig(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// handleDDragonVersion always asks the feed, the cached version is not used.
func (s *server) handleDDragonVersion(w http.ResponseWriter, r *http.Request) {
	v, err := s.catalog.FetchVersion(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.Version{Version: v})
}
