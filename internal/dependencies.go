package internal

import (
	"log/slog"
	"net/http"

	"github.com/robfig/cron/v3"
)

type dependencies struct {
	hc *http.Client
	c  *cron.Cron
}

type Dependencies interface {
	HTTPClient() *http.Client
	Cron() *cron.Cron
}

func NewDependencies() Dependencies {
	slog.Info("creating dependencies")
	return &dependencies{
		// Upstream calls are bounded by the request context only.
		hc: &http.Client{},
		c:  cron.New(),
	}
}

func (d *dependencies) HTTPClient() *http.Client {
	return d.hc
}

func (d *dependencies) Cron() *cron.Cron {
	return d.c
}
