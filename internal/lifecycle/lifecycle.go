// Package lifecycle holds the question state machine:
//
//	pending ──► needs_documents ──► answered
//	   └───────────────────────────────▲
//
// Transitions mutate a model.Question in place and never touch persistence;
// the service layer loads, transitions and stores with a version check.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dataroom/internal/model"
)

// UnknownResponder is recorded when an answer arrives without a responder name.
const UnknownResponder = "Unknown"

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAnswerRequired    = errors.New("answer text is required")
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidPriority   = errors.New("invalid priority")
)

// Policy toggles the optional guards on transitions.
type Policy struct {
	// RestrictNeedsDocuments rejects marking an answered question as needing documents.
	// Off by default: the reference behavior allows the revert.
	RestrictNeedsDocuments bool
}

// SubmitInput carries a buyer's new question.
type SubmitInput struct {
	Title    string
	Content  string
	Priority model.Priority
	Tags     []string
}

// Submit creates a pending question. Tags must already be normalized.
// An empty priority defaults to medium.
func Submit(in SubmitInput, askedBy string, now time.Time) (*model.Question, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, in.Priority)
	}
	if strings.TrimSpace(askedBy) == "" {
		askedBy = UnknownResponder
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	return &model.Question{
		ID:               uuid.NewString(),
		Title:            title,
		Content:          in.Content,
		AskedBy:          askedBy,
		AskedAt:          now,
		Priority:         priority,
		Tags:             tags,
		Status:           model.StatusPending,
		RelatedDocuments: []string{},
		Version:          1,
	}, nil
}

// MarkNeedsDocuments moves q to needs_documents. Reverting an answered question
// clears its answer so AnsweredAt stays set only for answered questions.
func MarkNeedsDocuments(q *model.Question, p Policy) error {
	if q.Status == model.StatusAnswered && p.RestrictNeedsDocuments {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, q.Status, model.StatusNeedsDocuments)
	}
	q.Status = model.StatusNeedsDocuments
	q.Answer = ""
	q.AnsweredBy = ""
	q.AnsweredAt = nil
	q.RelatedDocuments = []string{}
	return nil
}

// Answer resolves q from any status. Related document ids are kept in the
// given order with duplicates removed.
func Answer(q *model.Question, answer string, related []string, answeredBy string, now time.Time) error {
	if strings.TrimSpace(answer) == "" {
		return ErrAnswerRequired
	}
	if strings.TrimSpace(answeredBy) == "" {
		answeredBy = UnknownResponder
	}

	at := now
	q.Status = model.StatusAnswered
	q.Answer = answer
	q.AnsweredBy = answeredBy
	q.AnsweredAt = &at
	q.RelatedDocuments = dedupe(related)
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
