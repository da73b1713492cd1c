package ddragon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

type VersionResolver interface {
	ResolveVersion(ctx context.Context) string
}

// VersionStore holds the ddragon version resolved at startup. It is only
// written again when a refresh schedule is registered.
type VersionStore struct {
	r VersionResolver

	mu sync.RWMutex
	v  string
}

// NewVersionStore resolves the version once, falling back when the feed is
// unreachable.
func NewVersionStore(ctx context.Context, r VersionResolver) *VersionStore {
	s := &VersionStore{r: r}
	s.v = r.ResolveVersion(ctx)
	slog.Info(fmt.Sprintf("[VersionStore] - ddragon version set to %s", s.v))
	return s
}

func (s *VersionStore) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

// Refresh resolves the version again and stores it.
func (s *VersionStore) Refresh(ctx context.Context) string {
	v := s.r.ResolveVersion(ctx)
	s.mu.Lock()
	old := s.v
	s.v = v
	s.mu.Unlock()
	if old != v {
		slog.Info(fmt.Sprintf("[VersionStore] - ddragon version updated from %s to %s", old, v))
	}
	return v
}

// Schedule registers Refresh on c with the given cron spec. An empty spec
// leaves the startup value in place for the process lifetime.
func (s *VersionStore) Schedule(ctx context.Context, c *cron.Cron, spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := c.AddFunc(spec, func() {
		s.Refresh(ctx)
	}); err != nil {
		return fmt.Errorf("invalid ddragon refresh schedule '%s': %w", spec, err)
	}
	slog.Info(fmt.Sprintf("[VersionStore] - ddragon version refresh scheduled with '%s'", spec))
	return nil
}
