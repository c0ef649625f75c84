// Package worker runs the two execution paths feeding the decision
// pipeline: the steady-state sweep over all users and the
// event-reactive drain of the reflex queue.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/engine"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/store"
	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"
)

// Sweeper runs the full pipeline for every active user on a fixed
// cadence. Users share no mutable state, so cycles run in parallel up
// to the configured limit.
type Sweeper struct {
	store       *store.Store
	engine      *engine.Engine
	interval    time.Duration
	concurrency int
}

func NewSweeper(st *store.Store, eng *engine.Engine, interval time.Duration, concurrency int) *Sweeper {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Sweeper{store: st, engine: eng, interval: interval, concurrency: concurrency}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// sweep runs one pass. A single user's failure is logged and skipped;
// the pass always visits every user.
func (s *Sweeper) sweep(ctx context.Context) {
	started := time.Now()
	users, err := s.store.Users.All(ctx)
	if err != nil {
		slog.Error("sweep failed to list users", "action", "sweep", "error", err)
		sentry.CaptureException(err)
		return
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range users {
		user := users[i]
		g.Go(func() error {
			s.runUser(ctx, &user)
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("sweep completed", "users", len(users), "elapsed_ms", time.Since(started).Milliseconds())
}

func (s *Sweeper) runUser(ctx context.Context, user *models.UserContext) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic in user cycle: %v", r)
			slog.Error("user cycle panicked", "uid", user.UID.String(), "action", "cycle", "error", err)
			sentry.CaptureException(err)
		}
	}()

	outcome, err := s.engine.RunCycle(ctx, user)
	if err != nil {
		slog.Error("user cycle failed", "uid", user.UID.String(), "action", "cycle", "error", err)
		sentry.CaptureException(err)
		return
	}
	slog.Debug("user cycle finished", "uid", user.UID.String(), "outcome", string(outcome))
}
