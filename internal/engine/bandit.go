package engine

import (
	"math"
	"math/rand"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/store"
)

// explorationC is the fixed UCB1 exploration constant.
const explorationC = 1.2

// SelectNudge picks one candidate with UCB1 over the per-user pull
// history. Counts are floored at 1 to keep the bound finite. When every
// candidate has zero history there is nothing to exploit, so the choice
// is uniform random instead of a degenerate UCB. A nil rng uses the
// shared goroutine-safe source.
func SelectNudge(cands []Candidate, stats map[string]store.ArmStats, rng *rand.Rand) Candidate {
	if len(cands) == 1 {
		return cands[0]
	}

	total := 0
	allZero := true
	for _, c := range cands {
		n := stats[c.Type].Count
		if n > 0 {
			allZero = false
		} else {
			n = 1
		}
		total += n
	}
	if allZero {
		if rng != nil {
			return cands[rng.Intn(len(cands))]
		}
		return cands[rand.Intn(len(cands))]
	}

	best := cands[0]
	bestScore := math.Inf(-1)
	for _, c := range cands {
		st := stats[c.Type]
		n := st.Count
		if n < 1 {
			n = 1
		}
		mean := st.RewardSum / float64(n)
		score := mean + explorationC*math.Sqrt(math.Log(float64(total))/float64(n))
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}
