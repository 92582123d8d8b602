package matching

import (
	"strings"
	"time"

	"dataroom/internal/model"
)

// Match labels shown next to ranked suggestions.
const (
	LabelHigh   = "High Match"
	LabelMedium = "Medium Match"
	LabelLow    = "Low Match"
)

// Result is the relevance of one (document, question) pair.
type Result struct {
	Value   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Scorer sums a rule table over a (document, question) pair.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	rules []Rule
}

// NewScorer returns a Scorer using rules, or DefaultRules when none are given.
func NewScorer(rules ...Rule) *Scorer {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Scorer{rules: rules}
}

// Score computes the relevance of doc to q as of now. The result depends only
// on its arguments, so both lookup directions see the same value and reasons.
// A nil document or question scores zero.
func (s *Scorer) Score(doc *model.Document, q *model.Question, now time.Time) Result {
	res := Result{Reasons: []string{}}
	if doc == nil || q == nil {
		return res
	}

	p := Pair{
		Document:     doc,
		Question:     q,
		QuestionText: strings.ToLower(q.Title + " " + q.Content),
		Now:          now,
	}
	for _, r := range s.rules {
		points, reason := r.Apply(p)
		if points <= 0 {
			continue
		}
		res.Value += points
		if reason != "" {
			res.Reasons = append(res.Reasons, reason)
		}
	}
	return res
}

// Label buckets a score the way the responder UI does.
func Label(score int) string {
	switch {
	case score >= 60:
		return LabelHigh
	case score >= 30:
		return LabelMedium
	default:
		return LabelLow
	}
}
