package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/engine"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/store"
	"github.com/getsentry/sentry-go"
)

const eventBatchSize = 50

// EventProcessor drains the reflex queue oldest-first. An event is
// marked processed only after the engine finished with it, successfully
// or via deliberate suppression; a failed event stays unprocessed and is
// retried on the next poll. The dedup ledger keeps the retry safe.
type EventProcessor struct {
	store    *store.Store
	engine   *engine.Engine
	interval time.Duration
}

func NewEventProcessor(st *store.Store, eng *engine.Engine, interval time.Duration) *EventProcessor {
	return &EventProcessor{store: st, engine: eng, interval: interval}
}

func (p *EventProcessor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.drain(ctx)
	for {
		select {
		case <-ticker.C:
			p.drain(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *EventProcessor) drain(ctx context.Context) {
	events, err := p.store.Events.Unprocessed(ctx, eventBatchSize)
	if err != nil {
		slog.Error("failed to poll event queue", "action", "events", "error", err)
		sentry.CaptureException(err)
		return
	}

	for i := range events {
		if ctx.Err() != nil {
			return
		}
		p.handle(ctx, &events[i])
	}
}

func (p *EventProcessor) handle(ctx context.Context, ev *models.Event) {
	user, err := p.store.Users.Get(ctx, ev.UID)
	if errors.Is(err, store.ErrUserNotFound) {
		// orphaned event, nothing to nudge
		p.markProcessed(ctx, ev)
		return
	}
	if err != nil {
		slog.Error("failed to load user for event", "uid", ev.UID.String(), "action", "events", "error", err)
		return
	}

	outcome, err := p.engine.HandleEvent(ctx, user, ev)
	if err != nil {
		slog.Error("event handling failed", "uid", ev.UID.String(), "action", "events",
			"kind", ev.Kind, "error", err)
		sentry.CaptureException(err)
		return
	}
	if outcome == engine.OutcomeDispatchFailed {
		// leave unprocessed for one retry on the next poll; the failed
		// attempt already started the cooldown, so it cannot hot-loop
		slog.Warn("event dispatch failed, leaving for retry", "uid", ev.UID.String(), "kind", ev.Kind)
		return
	}

	slog.Debug("event handled", "uid", ev.UID.String(), "kind", ev.Kind, "outcome", string(outcome))
	p.markProcessed(ctx, ev)
}

func (p *EventProcessor) markProcessed(ctx context.Context, ev *models.Event) {
	if err := p.store.Events.MarkProcessed(ctx, ev.ID); err != nil {
		slog.Error("failed to mark event processed", "uid", ev.UID.String(), "action", "events", "error", err)
	}
}
