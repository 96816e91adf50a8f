package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/msomdec/creator-studio/internal/domain"
)

// Sweeper periodically deletes unverified placeholder users whose OTP has
// expired. A record that completes verification is never at risk: the
// delete filter excludes verified users.
type Sweeper struct {
	users    domain.UserRepository
	interval time.Duration
}

// NewSweeper creates a sweeper that runs on the given interval.
func NewSweeper(users domain.UserRepository, interval time.Duration) *Sweeper {
	return &Sweeper{users: users, interval: interval}
}

// Run sweeps once per interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep deletes expired unverified users once. Failures are logged, not
// propagated; the next tick tries again.
func (s *Sweeper) Sweep(ctx context.Context) {
	n, err := s.users.DeleteExpiredUnverified(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("cleanup sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("cleaned up unverified users", "count", n)
	}
}
