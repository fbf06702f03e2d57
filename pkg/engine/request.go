package engine

// Category is an optional workspace hint biasing the score.
type Category string

const (
	CategoryUnset    Category = ""
	CategoryCoding   Category = "coding"
	CategoryWriting  Category = "writing"
	CategoryResearch Category = "research"
	CategoryGeneral  Category = "general"
)

// Request is the per-turn input bundle. The engine holds no state between
// calls: conversation history arrives here, supplied by the caller.
type Request struct {
	// Query is the raw text of the current user turn. Required.
	Query string

	// Turn is 1 for a fresh conversation.
	Turn int

	// Category is an optional workspace configuration hint.
	Category Category

	// LockedModel, when set, bypasses all scoring.
	LockedModel string

	// PlanningMode biases toward reasoning-capable tiers.
	PlanningMode bool

	// RecentScores holds up to the 3 most recent complexity scores from this
	// conversation within the recency window, newest first. Must not include
	// the score for the current turn. Empty on turn 1.
	RecentScores []float64
}
