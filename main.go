package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phturb/riot-relay-backend-go/ddragon"
	"github.com/phturb/riot-relay-backend-go/internal"
	"github.com/phturb/riot-relay-backend-go/profile"
	"github.com/phturb/riot-relay-backend-go/riot"
	"github.com/phturb/riot-relay-backend-go/server"
)

func die(d interface{}) {
	slog.Error("fatal error", "err", d)
	panic(d)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := internal.LoadConfig()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	deps := internal.NewDependencies()

	dd := ddragon.NewClient(deps.HTTPClient(), cfg.Upstream.DDragonURL)
	versions := ddragon.NewVersionStore(ctx, dd)
	if err := versions.Schedule(ctx, deps.Cron(), cfg.Upstream.DDragonRefreshCron); err != nil {
		die(err)
	}
	deps.Cron().Start()
	defer deps.Cron().Stop()

	rc := riot.NewClient(deps.HTTPClient(), cfg.ApiKeys.RiotApiKey,
		riot.WithRegionalURL(cfg.Upstream.RegionalURL),
		riot.WithPlatformURL(cfg.Upstream.PlatformURL),
	)
	ps := profile.NewService(rc)

	s := server.NewServer(cfg.Server, ps, dd, versions)
	sErr := s.Start(ctx)

	select {
	case err := <-sErr:
		if err != nil {
			slog.Error(err.Error())
		}
		slog.Info("exiting service")
	case <-ctx.Done():
		slog.Info("main context has been closed")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := s.Shutdown(shutdownCtx); err != nil {
			slog.Error(err.Error())
		}
	}
}
