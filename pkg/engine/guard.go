package engine

// Downgrade gate: a mid-conversation drop to a weaker tier is allowed only
// when the new score is decisive and the conversation has not recently
// sustained high complexity.
const (
	downgradeMinConfidence = 0.80
	downgradeMaxRecent     = 60.0
	maxRecentScores        = 3
)

// applyCoherenceGuard decides whether a candidate tier may take effect given
// the conversation's recent scores (newest first). Returns the final tier
// and true when the downgrade was suppressed.
//
// Short follow-ups ("yes", "ok continue") in a complex conversation score
// low on their own; pinning to the prior tier keeps the model quality
// stable until a confident, sustained simplification appears.
func applyCoherenceGuard(candidate Tier, confidence float64, turn int, recent []float64) (Tier, bool) {
	if turn <= 1 || len(recent) == 0 {
		return candidate, false
	}

	if len(recent) > maxRecentScores {
		recent = recent[:maxRecentScores]
	}

	peak := recent[0]
	for _, s := range recent[1:] {
		if s > peak {
			peak = s
		}
	}

	prior := tierForScore(clampScore(peak))
	if candidate >= prior {
		return candidate, false
	}

	if confidence >= downgradeMinConfidence && allBelowOrEqual(recent, downgradeMaxRecent) {
		return candidate, false
	}

	return prior, true
}

func allBelowOrEqual(scores []float64, limit float64) bool {
	for _, s := range scores {
		if s > limit {
			return false
		}
	}
	return true
}
