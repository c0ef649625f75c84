package engine

import (
	"math/rand"
	"testing"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/store"
)

func arms(types ...string) []Candidate {
	cands := make([]Candidate, len(types))
	for i, tp := range types {
		cands[i] = Candidate{Type: tp}
	}
	return cands
}

func TestSelectNudgeColdStartStaysInSet(t *testing.T) {
	cands := arms(NudgeFuelPace, NudgeMove, NudgeHydrate)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		chosen := SelectNudge(cands, map[string]store.ArmStats{}, rng)
		if !hasType(cands, chosen.Type) {
			t.Fatalf("chose %q, not a member of the eligible set", chosen.Type)
		}
	}
}

func TestSelectNudgeFavorsUnderSampledArm(t *testing.T) {
	cands := arms(NudgeHydrate, NudgeMove)
	// hydrate: many pulls, mediocre reward; move: one pull, decent reward.
	// The confidence bound on the under-sampled arm dominates.
	stats := map[string]store.ArmStats{
		NudgeHydrate: {Count: 150, RewardSum: 30},
		NudgeMove:    {Count: 1, RewardSum: 0.5},
	}
	chosen := SelectNudge(cands, stats, rand.New(rand.NewSource(1)))
	if chosen.Type != NudgeMove {
		t.Errorf("chose %q, want under-sampled %q", chosen.Type, NudgeMove)
	}
}

func TestSelectNudgeExploitsClearWinner(t *testing.T) {
	cands := arms(NudgeHydrate, NudgeMove)
	stats := map[string]store.ArmStats{
		NudgeHydrate: {Count: 50, RewardSum: 45},
		NudgeMove:    {Count: 50, RewardSum: 2},
	}
	chosen := SelectNudge(cands, stats, rand.New(rand.NewSource(1)))
	if chosen.Type != NudgeHydrate {
		t.Errorf("chose %q, want high-reward %q", chosen.Type, NudgeHydrate)
	}
}

func TestSelectNudgeSingleCandidate(t *testing.T) {
	cands := arms(NudgeBreathe)
	chosen := SelectNudge(cands, nil, nil)
	if chosen.Type != NudgeBreathe {
		t.Errorf("chose %q, want %q", chosen.Type, NudgeBreathe)
	}
}

func TestSelectNudgePartialHistoryUsesUCB(t *testing.T) {
	// one arm with history, one without: not a cold start, and the
	// unpulled arm's floored count gives it a huge bound
	cands := arms(NudgeHydrate, NudgeMoodCheckin)
	stats := map[string]store.ArmStats{
		NudgeHydrate: {Count: 40, RewardSum: 4},
	}
	chosen := SelectNudge(cands, stats, rand.New(rand.NewSource(1)))
	if chosen.Type != NudgeMoodCheckin {
		t.Errorf("chose %q, want never-pulled %q", chosen.Type, NudgeMoodCheckin)
	}
}
