package engine

import (
	"sort"
	"strings"
	"testing"
)

func TestAnalyzeQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantScore float64
		wantTags  []string
	}{
		{
			name:      "no signals keeps base score",
			query:     "tell me something interesting about the roman aqueducts today",
			wantScore: 50,
			wantTags:  nil,
		},
		{
			name:      "analyze",
			query:     "please analyze the memory usage of this service over the last deploy",
			wantScore: 70,
			wantTags:  []string{"analyze"},
		},
		{
			name:      "design",
			query:     "help me design a caching layer for the user profile service today",
			wantScore: 70,
			wantTags:  []string{"design"},
		},
		{
			name:      "strategy",
			query:     "we need a migration strategy for the billing tables this quarter",
			wantScore: 70,
			wantTags:  []string{"strategy"},
		},
		{
			name:      "strategy matches plural form",
			query:     "outline several strategies for reducing cold start latency in lambdas",
			wantScore: 70,
			wantTags:  []string{"strategy"},
		},
		{
			name:      "research",
			query:     "do some research on vector databases and report back major tradeoffs",
			wantScore: 70,
			wantTags:  []string{"research"},
		},
		{
			name:      "compare",
			query:     "compare the two storage engines for write heavy workloads please",
			wantScore: 65,
			wantTags:  []string{"compare"},
		},
		{
			name:      "explain in depth",
			query:     "explain in depth how the scheduler distributes work between nodes",
			wantScore: 65,
			wantTags:  []string{"explain_in_depth"},
		},
		{
			name:      "explain in detail variant",
			query:     "explain in detail how leader election works under network partitions",
			wantScore: 65,
			wantTags:  []string{"explain_in_depth"},
		},
		{
			name:      "multiple topics via clauses",
			query:     "cover databases, caching, queueing and load balancing for the new platform",
			wantScore: 65,
			wantTags:  []string{"multiple_topics"},
		},
		{
			name:      "multiple topics via capitalized terms",
			query:     "how do Kafka and Redis interact with Postgres in our ingestion path",
			wantScore: 65,
			wantTags:  []string{"multiple_topics"},
		},
		{
			name:      "code block marker",
			query:     "take another look at ```func handler()``` and clean up naming",
			wantScore: 60,
			wantTags:  []string{"code_blocks"},
		},
		{
			name:      "greeting without short query",
			query:     "hello there friend this is a decently sized message about nothing much at all",
			wantScore: 25,
			wantTags:  []string{"greeting"},
		},
		{
			name:      "short query",
			query:     "what time is it",
			wantScore: 30,
			wantTags:  []string{"short_query"},
		},
		{
			name:      "ends with question mark",
			query:     "could you tell me when the nightly backup job actually runs?",
			wantScore: 45,
			wantTags:  []string{"ends_with_question"},
		},
		{
			name:      "greeting stacks with short query",
			query:     "Hi",
			wantScore: 5,
			wantTags:  []string{"greeting", "short_query"},
		},
		{
			name:      "negative signals clamp at zero",
			query:     "hi?",
			wantScore: 0,
			wantTags:  []string{"greeting", "short_query", "ends_with_question"},
		},
		{
			name:      "positive signals clamp at hundred",
			query:     "analyze the design of our research strategy and compare alternatives in a way that lets us explain in depth every tradeoff",
			wantScore: 100,
			wantTags:  []string{"analyze", "design", "strategy", "research", "compare", "explain_in_depth"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, tags := analyzeQuery(strings.TrimSpace(tt.query))
			if score != tt.wantScore {
				t.Errorf("score = %v, want %v (tags %v)", score, tt.wantScore, tags)
			}
			if !sameTags(tags, tt.wantTags) {
				t.Errorf("tags = %v, want %v", tags, tt.wantTags)
			}
		})
	}
}

func TestAnalyzeQuery_SignalStacking(t *testing.T) {
	// Adding one matching signal moves the raw score by exactly its weight.
	base, _ := analyzeQuery("compare the two storage engines for write heavy workloads please")
	stacked, tags := analyzeQuery("analyze and compare the two storage engines for write heavy workloads")

	if stacked-base != 20 {
		t.Errorf("adding analyze changed score by %v, want 20 (tags %v)", stacked-base, tags)
	}
}

func TestAnalyzeQuery_LongQuery(t *testing.T) {
	query := strings.Repeat("lots of plain words here ", 10)
	score, tags := analyzeQuery(strings.TrimSpace(query))

	if score != 60 {
		t.Errorf("score = %v, want 60", score)
	}
	if !sameTags(tags, []string{"long_query"}) {
		t.Errorf("tags = %v, want [long_query]", tags)
	}
}

func TestAnalyzeQuery_TruncatesVeryLongText(t *testing.T) {
	// Content past the analysis cutoff must not influence the score.
	query := strings.Repeat("a", 10001) + " analyze"
	score, tags := analyzeQuery(query)

	for _, tag := range tags {
		if tag == "analyze" {
			t.Fatal("analyze detector saw text past cutoff")
		}
	}
	if score != 60 {
		t.Errorf("score = %v, want 60 (long_query only)", score)
	}
}

func TestCountClauses(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"one clause only", 1},
		{"first, second", 2},
		{"first, second, third", 3},
		{"first; second; third; fourth", 4},
		{"trailing, commas, ,", 2},
	}

	for _, tt := range tests {
		if got := countClauses(tt.text); got != tt.want {
			t.Errorf("countClauses(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCountDistinctTopics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "sentence start capital excluded",
			text: "Please review everything again",
			want: 0,
		},
		{
			name: "capitalized product names counted once each",
			text: "wire Kafka into Redis and then Kafka again",
			want: 2,
		},
		{
			name: "quoted terms counted",
			text: `look at "alpha service" and "beta service" and "gamma service"`,
			want: 3,
		},
		{
			name: "capital after period excluded",
			text: "do the thing. Then do the other thing",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countDistinctTopics(tt.text); got != tt.want {
				t.Errorf("countDistinctTopics(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func sameTags(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	g := append([]string(nil), got...)
	w := append([]string(nil), want...)
	sort.Strings(g)
	sort.Strings(w)
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}
