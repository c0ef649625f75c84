// Package engine implements the per-user nudge decision pipeline:
// pace profile, gap calculation, suppression gates, rule evaluation,
// bandit selection, dedup, and dispatch.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/delivery"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/store"
	"github.com/google/uuid"
)

var ErrUnknownChannel = errors.New("no delivery channel registered")

// Outcome is the terminal state of one user's decision cycle.
type Outcome string

const (
	OutcomeSuppressed       Outcome = "suppressed"
	OutcomeNotDue           Outcome = "not_due"
	OutcomeNoEligibleChange Outcome = "no_eligible_change"
	OutcomeDispatched       Outcome = "dispatched"
	OutcomeDispatchFailed   Outcome = "dispatch_failed"
)

// Engine runs the decision pipeline. It keeps no per-user state between
// cycles; everything is re-derived from the stores, so a crashed sweep
// simply resumes on the next tick.
type Engine struct {
	store     *store.Store
	channels  map[string]delivery.Channel
	calendar  BusyChecker
	defaultTZ string
	nowFn     func() time.Time
}

func New(st *store.Store, channels map[string]delivery.Channel, calendar BusyChecker, defaultTZ string) *Engine {
	return &Engine{
		store:     st,
		channels:  channels,
		calendar:  calendar,
		defaultTZ: defaultTZ,
		nowFn:     time.Now,
	}
}

// decisionContext is the self-describing snapshot logged with every
// decision, rich enough to train the bandit offline later.
type decisionContext struct {
	LocalTime  string                `json:"local_time"`
	Gaps       Gaps                  `json:"gaps"`
	Signals    Signals               `json:"signals"`
	Goals      models.EffectiveGoals `json:"goals"`
	Candidates []string              `json:"candidates"`
	Cadence    string                `json:"cadence,omitempty"`
	EventKind  string                `json:"event_kind,omitempty"`
}

// RunCycle executes the full steady-state pipeline for one user. The
// suppression gates fire before any data loading; a gated cycle logs no
// decision at all.
func (e *Engine) RunCycle(ctx context.Context, user *models.UserContext) (Outcome, error) {
	now := e.nowFn().UTC()
	loc := Location(user.TZ, e.defaultTZ)
	nowLocal := now.In(loc)

	if InQuietHours(nowLocal, user.QuietStart, user.QuietEnd) {
		return OutcomeSuppressed, nil
	}
	if user.CalendarURL != "" && e.calendar.Busy(ctx, user.CalendarURL, now) {
		return OutcomeSuppressed, nil
	}

	dayStart := LocalDayStart(nowLocal)
	meals7, err := e.store.Meals.InRange(ctx, user.UID, now.AddDate(0, 0, -7), now)
	if err != nil {
		return "", err
	}
	mealsToday := mealsSince(meals7, dayStart)

	latest, err := e.store.Metrics.LatestInRange(ctx, user.UID, dayStart, now)
	if err != nil {
		return "", err
	}
	moodLogged, err := e.store.Metrics.MoodLoggedBetween(ctx, user.UID, dayStart, now)
	if err != nil {
		return "", err
	}

	goals := user.Goals.Effective()
	profile := BuildPaceProfile(meals7, loc)
	gaps := ComputeGaps(nowLocal, goals, profile, mealsToday, latest)
	signals := BuildSignals(now, meals7, latest, moodLogged)

	lastSent, err := e.store.Decisions.LastSentAt(ctx, user.UID)
	if err != nil {
		return "", err
	}
	if !due(user.Cadence, lastSent, gaps, now) {
		return OutcomeNotDue, nil
	}

	cands := Candidates(nowLocal, gaps, signals)
	stats, err := e.store.Decisions.Stats(ctx, user.UID)
	if err != nil {
		return "", err
	}
	chosen := SelectNudge(cands, stats, nil)

	snap := decisionContext{
		LocalTime:  nowLocal.Format(time.RFC3339),
		Gaps:       gaps,
		Signals:    signals,
		Goals:      goals,
		Candidates: candidateTypes(cands),
		Cadence:    user.Cadence,
	}
	return e.dispatch(ctx, user, chosen, now, snap)
}

// HandleEvent runs the cheaper reflex path for one queue event. Reflex
// candidates skip the cadence gate but still pass quiet hours, the
// calendar gate, and the dedup ledger, so replaying an already-handled
// event cannot re-send.
func (e *Engine) HandleEvent(ctx context.Context, user *models.UserContext, ev *models.Event) (Outcome, error) {
	now := e.nowFn().UTC()
	loc := Location(user.TZ, e.defaultTZ)
	goals := user.Goals.Effective()

	var payload struct {
		WaterML *int `json:"water_ml"`
	}
	if len(ev.Payload) > 0 {
		_ = json.Unmarshal(ev.Payload, &payload)
	}

	cands := ReflexCandidates(ev, ev.TS.In(loc), payload.WaterML, goals.WaterML)
	if len(cands) == 0 {
		return OutcomeNoEligibleChange, nil
	}

	nowLocal := now.In(loc)
	if InQuietHours(nowLocal, user.QuietStart, user.QuietEnd) {
		return OutcomeSuppressed, nil
	}
	if user.CalendarURL != "" && e.calendar.Busy(ctx, user.CalendarURL, now) {
		return OutcomeSuppressed, nil
	}

	snap := decisionContext{
		LocalTime:  nowLocal.Format(time.RFC3339),
		Goals:      goals,
		Candidates: candidateTypes(cands),
		EventKind:  ev.Kind,
	}
	return e.dispatch(ctx, user, cands[0], now, snap)
}

// dispatch runs the chosen candidate through the dedup ledger, sends,
// and appends the decision row. Ledger suppressions are silent no-ops.
func (e *Engine) dispatch(ctx context.Context, user *models.UserContext, cand Candidate, now time.Time, snap decisionContext) (Outcome, error) {
	hash := ContentHash(cand.Type, cand.Bucket)

	// cheap short-circuit from the externalized preference cache
	if user.LastNudgeHash == hash && user.LastNudgeAt != nil && now.Sub(*user.LastNudgeAt) < DedupLookback {
		return OutcomeNoEligibleChange, nil
	}

	seen, err := e.store.Decisions.HashSeenSince(ctx, user.UID, hash, now.Add(-DedupLookback))
	if err != nil {
		return "", err
	}
	if seen {
		return OutcomeNoEligibleChange, nil
	}
	cooled, err := e.store.Decisions.TypeSentSince(ctx, user.UID, cand.Type, now.Add(-TypeCooldown))
	if err != nil {
		return "", err
	}
	if cooled {
		return OutcomeNoEligibleChange, nil
	}

	channelName, channel, err := e.resolveChannel(user.Channel)
	if err != nil {
		return "", err
	}

	sendErr := channel.Send(ctx, user, cand.Text)

	ctxJSON, _ := json.Marshal(snap)
	decision := &models.NudgeDecision{
		ID:          uuid.New(),
		UID:         user.UID,
		DecidedAt:   now,
		NudgeType:   cand.Type,
		Channel:     channelName,
		Delivered:   sendErr == nil,
		ContentHash: hash,
		Context:     ctxJSON,
	}
	if err := e.store.Decisions.Append(ctx, decision); err != nil {
		return "", err
	}
	if err := e.store.Users.SetLastNudge(ctx, user.UID, hash, now); err != nil {
		slog.Warn("failed to update last nudge cache", "uid", user.UID.String(), "error", err)
	}

	if sendErr != nil {
		slog.Error("nudge delivery failed", "uid", user.UID.String(), "action", "dispatch",
			"nudge_type", cand.Type, "channel", channelName, "error", sendErr)
		return OutcomeDispatchFailed, nil
	}
	slog.Info("nudge dispatched", "uid", user.UID.String(), "nudge_type", cand.Type, "channel", channelName)
	return OutcomeDispatched, nil
}

func (e *Engine) resolveChannel(name string) (string, delivery.Channel, error) {
	if ch, ok := e.channels[name]; ok {
		return name, ch, nil
	}
	if ch, ok := e.channels[models.ChannelTelegram]; ok {
		return models.ChannelTelegram, ch, nil
	}
	return "", nil, ErrUnknownChannel
}

func mealsSince(meals []models.MealRecord, cutoff time.Time) []models.MealRecord {
	var out []models.MealRecord
	for _, m := range meals {
		if !m.TS.Before(cutoff) {
			out = append(out, m)
		}
	}
	return out
}

func candidateTypes(cands []Candidate) []string {
	types := make([]string, len(cands))
	for i, c := range cands {
		types[i] = c.Type
	}
	return types
}
