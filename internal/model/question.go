package model

import "time"

// Question is a buyer's due-diligence question and, once resolved, its answer.
//
// AnsweredAt is non-nil exactly when Status is StatusAnswered.
// Version is bumped on every lifecycle write and is used for optimistic concurrency.
type Question struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Content          string         `json:"content"`
	AskedBy          string         `json:"asked_by"`
	AskedAt          time.Time      `json:"asked_at"`
	Priority         Priority       `json:"priority"`
	Tags             []string       `json:"tags"`
	Status           QuestionStatus `json:"status"`
	Answer           string         `json:"answer,omitempty"`
	AnsweredBy       string         `json:"answered_by,omitempty"`
	AnsweredAt       *time.Time     `json:"answered_at,omitempty"`
	RelatedDocuments []string       `json:"related_documents"`
	Version          int64          `json:"version"`
}

// SourceCitation is a document passage an external AI service cited for a question.
// The similarity score is produced by that service; it is stored, never computed here.
type SourceCitation struct {
	QuestionID      string    `json:"question_id"`
	DocumentID      string    `json:"document_id"`
	DocumentName    string    `json:"document_name"`
	Excerpt         string    `json:"excerpt,omitempty"`
	SimilarityScore float64   `json:"similarity_score"`
	RecordedAt      time.Time `json:"recorded_at"`
}
