package matching

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"dataroom/internal/model"
)

// Rule weights.
const (
	TagPoints     = 40
	KeywordPoints = 20
	DomainPoints  = 15
	RecencyPoints = 5

	// RecencyWindow is how recent an upload must be to earn RecencyPoints.
	RecencyWindow = 7 * 24 * time.Hour

	minTokenLen        = 4
	maxKeywordsInLabel = 3
)

// Pair is the input every rule sees. QuestionText is the lowercased
// title + " " + content, computed once per pair.
type Pair struct {
	Document     *model.Document
	Question     *model.Question
	QuestionText string
	Now          time.Time
}

// Rule is one additive scoring heuristic. It returns the points it contributes
// and a human readable reason, or 0 and "" when it does not fire.
type Rule struct {
	Name  string
	Apply func(p Pair) (int, string)
}

// DefaultRules is the scoring rule table, evaluated in order.
var DefaultRules = []Rule{
	{Name: "tags", Apply: tagOverlap},
	{Name: "keywords", Apply: keywordOverlap},
	{Name: "financial", Apply: domainRule("financial", "Financial document type", "financial", "budget")},
	{Name: "legal", Apply: domainRule("legal", "Legal document type", "legal", "contract")},
	{Name: "technical", Apply: domainRule("technical", "Technical document type", "tech", "spec")},
	{Name: "recency", Apply: recency},
}

// overlaps reports whether a is a substring of b or b is a substring of a.
func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func tagOverlap(p Pair) (int, string) {
	var common []string
	for _, dt := range p.Document.Tags {
		for _, qt := range p.Question.Tags {
			if overlaps(dt, qt) {
				common = append(common, dt)
				break
			}
		}
	}
	if len(common) == 0 {
		return 0, ""
	}
	return len(common) * TagPoints, "Matching tags: " + strings.Join(common, ", ")
}

func keywordOverlap(p Pair) (int, string) {
	qTokens := QuestionTokens(p.QuestionText)
	dTokens := DocumentTokens(p.Document.Name)
	if len(qTokens) == 0 || len(dTokens) == 0 {
		return 0, ""
	}

	var matches []string
	for _, qw := range qTokens {
		for _, dw := range dTokens {
			if overlaps(qw, dw) {
				matches = append(matches, qw)
				break
			}
		}
	}
	if len(matches) == 0 {
		return 0, ""
	}
	label := matches
	if len(label) > maxKeywordsInLabel {
		label = label[:maxKeywordsInLabel]
	}
	return len(matches) * KeywordPoints, "Keyword matches: " + strings.Join(label, ", ")
}

func domainRule(questionWord, reason string, nameWords ...string) func(Pair) (int, string) {
	return func(p Pair) (int, string) {
		if !strings.Contains(p.QuestionText, questionWord) {
			return 0, ""
		}
		name := strings.ToLower(p.Document.Name)
		for _, w := range nameWords {
			if strings.Contains(name, w) {
				return DomainPoints, reason
			}
		}
		return 0, ""
	}
}

func recency(p Pair) (int, string) {
	if p.Document.UploadedAt.IsZero() {
		return 0, ""
	}
	if p.Now.Sub(p.Document.UploadedAt) < RecencyWindow {
		return RecencyPoints, "Recently uploaded"
	}
	return 0, ""
}

// QuestionTokens splits lowercased question text on whitespace and keeps
// distinct tokens longer than three characters, in first-seen order.
func QuestionTokens(text string) []string {
	return filterTokens(strings.Fields(strings.ToLower(text)))
}

// DocumentTokens splits a lowercased document name on whitespace, '.', '_'
// and '-' and keeps tokens longer than three characters.
func DocumentTokens(name string) []string {
	parts := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return unicode.IsSpace(r) || r == '.' || r == '_' || r == '-'
	})
	return filterTokens(parts)
}

func filterTokens(parts []string) []string {
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, w := range parts {
		if utf8.RuneCountInString(w) < minTokenLen {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
