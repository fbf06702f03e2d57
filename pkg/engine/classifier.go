package engine

// SemanticClassifier refines low-confidence rule decisions. Implementations
// are expected to run nearest-centroid classification over query embeddings;
// none ships with the engine yet.
//
// Classify returns the suggested tier, its confidence, and whether the
// classifier produced a usable result. Implementations must be pure with
// respect to their inputs so the engine stays deterministic and safe to
// call concurrently.
type SemanticClassifier interface {
	Classify(query string) (Tier, float64, bool)
}
