package model

// Package model contains domain models shared by the HTTP, service, matching
// and persistence layers. No persistence tags or business logic live here.

// Priority is the urgency a buyer assigns to a question.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// QuestionStatus is the lifecycle state of a question.
type QuestionStatus string

const (
	StatusPending        QuestionStatus = "pending"
	StatusNeedsDocuments QuestionStatus = "needs_documents"
	StatusAnswered       QuestionStatus = "answered"
)

// Valid reports whether s is one of the known statuses.
func (s QuestionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusNeedsDocuments, StatusAnswered:
		return true
	}
	return false
}
