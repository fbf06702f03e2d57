package engine

import "encoding/json"

// Tier represents a model capability tier.
type Tier int

const (
	TierSimple  Tier = iota // cheap and fast: greetings, short factual questions
	TierMedium              // mid-range: summaries, light code, moderate Q&A
	TierComplex             // full capability: deep analysis, design, multi-topic work
)

var tierNames = [...]string{"simple", "medium", "complex"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return "unknown"
}

// MarshalJSON implements json.Marshaler.
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "simple":
		*t = TierSimple
	case "medium":
		*t = TierMedium
	default:
		*t = TierComplex
	}
	return nil
}

// Tier band thresholds over the [0,100] score range. A score on a boundary
// belongs to the lower tier.
const (
	simpleMax = 25.0
	mediumMax = 65.0

	// confidenceBand is the distance from a threshold at which a score is
	// considered fully decisive.
	confidenceBand = 10.0
)

// tierForScore maps a clamped score to a tier. Total over [0,100].
func tierForScore(score float64) Tier {
	switch {
	case score <= simpleMax:
		return TierSimple
	case score <= mediumMax:
		return TierMedium
	default:
		return TierComplex
	}
}

// confidenceForScore measures how decisively a score sits inside its tier
// band: the normalized distance to the nearest interior threshold. A score
// right on a boundary yields 0; a score a full band away yields 1.
func confidenceForScore(score float64) float64 {
	dist := absFloat(score - simpleMax)
	if d := absFloat(score - mediumMax); d < dist {
		dist = d
	}
	confidence := dist / confidenceBand
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
