package matching

import (
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"dataroom/internal/model"
)

// Result caps.
const (
	MaxDocumentMatches = 10
	MaxQuestionMatches = 5

	defaultParallelThreshold = 256
)

// DocumentMatch is a document suggested for a question.
type DocumentMatch struct {
	Document model.Document `json:"document"`
	Score    int            `json:"score"`
	Label    string         `json:"label"`
	Reasons  []string       `json:"match_reasons"`
}

// QuestionMatch is a question a document may help answer.
type QuestionMatch struct {
	Question model.Question `json:"question"`
	Score    int            `json:"score"`
	Label    string         `json:"label"`
	Reasons  []string       `json:"match_reasons"`
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker)

// WithClock overrides the time source used for the recency rule.
func WithClock(now func() time.Time) RankerOption {
	return func(r *Ranker) { r.now = now }
}

// WithParallelism sets the corpus size above which scoring fans out,
// and the number of workers used when it does.
func WithParallelism(threshold, workers int) RankerOption {
	return func(r *Ranker) {
		if threshold > 0 {
			r.threshold = threshold
		}
		if workers > 0 {
			r.workers = workers
		}
	}
}

// Ranker applies a Scorer across a corpus. Ranking is read-only.
type Ranker struct {
	scorer    *Scorer
	now       func() time.Time
	threshold int
	workers   int
}

// NewRanker builds a Ranker around scorer (DefaultRules if nil).
func NewRanker(scorer *Scorer, opts ...RankerOption) *Ranker {
	if scorer == nil {
		scorer = NewScorer()
	}
	r := &Ranker{
		scorer:    scorer,
		now:       time.Now,
		threshold: defaultParallelThreshold,
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RankDocumentsForQuestion returns up to MaxDocumentMatches documents with a
// positive score, best first. Equal scores keep corpus order.
func (r *Ranker) RankDocumentsForQuestion(q model.Question, docs []model.Document) []DocumentMatch {
	now := r.now()
	results := r.scoreAll(len(docs), func(i int) Result {
		return r.scorer.Score(&docs[i], &q, now)
	})

	out := make([]DocumentMatch, 0, len(docs))
	for i, res := range results {
		if res.Value <= 0 {
			continue
		}
		out = append(out, DocumentMatch{
			Document: docs[i],
			Score:    res.Value,
			Label:    Label(res.Value),
			Reasons:  res.Reasons,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > MaxDocumentMatches {
		out = out[:MaxDocumentMatches]
	}
	return out
}

// RankQuestionMatchesForDocument returns up to MaxQuestionMatches questions
// with a positive score for doc, best first, with their scores.
func (r *Ranker) RankQuestionMatchesForDocument(doc model.Document, questions []model.Question) []QuestionMatch {
	now := r.now()
	results := r.scoreAll(len(questions), func(i int) Result {
		return r.scorer.Score(&doc, &questions[i], now)
	})

	out := make([]QuestionMatch, 0, len(questions))
	for i, res := range results {
		if res.Value <= 0 {
			continue
		}
		out = append(out, QuestionMatch{
			Question: questions[i],
			Score:    res.Value,
			Label:    Label(res.Value),
			Reasons:  res.Reasons,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > MaxQuestionMatches {
		out = out[:MaxQuestionMatches]
	}
	return out
}

// RankQuestionsForDocument is RankQuestionMatchesForDocument without the score payload.
func (r *Ranker) RankQuestionsForDocument(doc model.Document, questions []model.Question) []model.Question {
	matches := r.RankQuestionMatchesForDocument(doc, questions)
	out := make([]model.Question, len(matches))
	for i, m := range matches {
		out[i] = m.Question
	}
	return out
}

// scoreAll evaluates score for every index. Results are stored by index so the
// caller's ordering is unaffected by how the work is scheduled.
func (r *Ranker) scoreAll(n int, score func(i int) Result) []Result {
	results := make([]Result, n)
	if n <= r.threshold || r.workers <= 1 {
		for i := range results {
			results[i] = score(i)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(r.workers)
	chunk := (n + r.workers - 1) / r.workers
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				results[i] = score(i)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
