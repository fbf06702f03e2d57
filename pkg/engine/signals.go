package engine

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// baseScore is the starting complexity score before any signal fires.
	baseScore = 50.0

	// maxAnalyzedRunes bounds how much of a very long query the detectors
	// inspect. The full text is still forwarded to the model.
	maxAnalyzedRunes = 10000

	longQueryRunes  = 200
	shortQueryRunes = 50
)

// Signal is a named, weighted pattern contributing to the complexity score.
// Detectors are independent predicates: any number may fire on the same
// query and their weights stack.
type Signal struct {
	Tag    string
	Weight float64
	Match  func(q query) bool
}

// query is the pre-processed view of a user turn shared by all detectors.
type query struct {
	text   string // truncated, original case
	lower  string // truncated, lowercased
	length int    // rune count of the full trimmed query
}

func newQuery(trimmed string) query {
	analyzed := trimmed
	if utf8.RuneCountInString(analyzed) > maxAnalyzedRunes {
		runes := []rune(analyzed)
		analyzed = string(runes[:maxAnalyzedRunes])
	}
	return query{
		text:   analyzed,
		lower:  strings.ToLower(analyzed),
		length: utf8.RuneCountInString(trimmed),
	}
}

var greetingRE = regexp.MustCompile(`^(hi|hello|hey|yo|howdy|greetings)\b`)

// signalCatalog is the ordered signal table. New signals are added here
// without touching existing detectors.
var signalCatalog = []Signal{
	{Tag: "analyze", Weight: 20, Match: containsAny("analyze", "analyse")},
	{Tag: "design", Weight: 20, Match: containsAny("design")},
	{Tag: "strategy", Weight: 20, Match: containsAny("strateg")},
	{Tag: "research", Weight: 20, Match: containsAny("research")},
	{Tag: "compare", Weight: 15, Match: containsAny("compare")},
	{Tag: "explain_in_depth", Weight: 15, Match: containsAny("explain in depth", "explain in detail")},
	{Tag: "multiple_topics", Weight: 15, Match: matchMultipleTopics},
	{Tag: "code_blocks", Weight: 10, Match: containsAny("```")},
	{Tag: "long_query", Weight: 10, Match: func(q query) bool { return q.length > longQueryRunes }},
	{Tag: "greeting", Weight: -25, Match: func(q query) bool { return greetingRE.MatchString(q.lower) }},
	{Tag: "short_query", Weight: -20, Match: func(q query) bool { return q.length < shortQueryRunes }},
	{Tag: "ends_with_question", Weight: -5, Match: func(q query) bool { return strings.HasSuffix(q.text, "?") }},
}

// analyzeQuery applies every signal detector to the trimmed query text and
// returns the clamped complexity score plus the tags that fired.
func analyzeQuery(trimmed string) (float64, []string) {
	q := newQuery(trimmed)

	score := baseScore
	var tags []string
	for _, sig := range signalCatalog {
		if sig.Match(q) {
			score += sig.Weight
			tags = append(tags, sig.Tag)
		}
	}

	return clampScore(score), tags
}

// SignalCatalog returns a copy of the signal table for display purposes.
func SignalCatalog() []Signal {
	out := make([]Signal, len(signalCatalog))
	copy(out, signalCatalog)
	return out
}

func containsAny(substrings ...string) func(q query) bool {
	return func(q query) bool {
		for _, s := range substrings {
			if strings.Contains(q.lower, s) {
				return true
			}
		}
		return false
	}
}

var (
	quotedTermRE  = regexp.MustCompile("\"[^\"]+\"|`[^`]+`")
	capitalPartRE = regexp.MustCompile(`[A-Z][A-Za-z0-9]+`)
)

// matchMultipleTopics fires when a query references three or more distinct
// topics. Heuristic: three or more comma/semicolon separated clauses, or
// three or more distinct capitalized/quoted terms outside sentence starts.
func matchMultipleTopics(q query) bool {
	if countClauses(q.text) >= 3 {
		return true
	}
	return countDistinctTopics(q.text) >= 3
}

func countClauses(text string) int {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';'
	})
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

func countDistinctTopics(text string) int {
	seen := make(map[string]struct{})

	for _, quoted := range quotedTermRE.FindAllString(text, -1) {
		term := strings.ToLower(strings.Trim(quoted, "\"`"))
		if term != "" {
			seen[term] = struct{}{}
		}
	}

	for _, loc := range capitalPartRE.FindAllStringIndex(text, -1) {
		if startsSentence(text, loc[0]) {
			continue
		}
		term := strings.ToLower(text[loc[0]:loc[1]])
		seen[term] = struct{}{}
	}

	return len(seen)
}

// startsSentence reports whether the token at idx opens the text or follows
// sentence-ending punctuation, where capitalization is not a topic signal.
func startsSentence(text string, idx int) bool {
	for i := idx - 1; i >= 0; i-- {
		c := text[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		return c == '.' || c == '!' || c == '?' || c == ':'
	}
	return true
}
