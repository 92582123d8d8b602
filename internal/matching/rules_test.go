package matching

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dataroom/internal/model"
)

var refNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func pair(doc model.Document, q model.Question) Pair {
	return Pair{
		Document:     &doc,
		Question:     &q,
		QuestionText: strings.ToLower(q.Title + " " + q.Content),
		Now:          refNow,
	}
}

func TestTagOverlap(t *testing.T) {
	tests := []struct {
		name       string
		docTags    []string
		qTags      []string
		wantPoints int
		wantReason string
	}{
		{name: "exact", docTags: []string{"financial"}, qTags: []string{"financial"}, wantPoints: 40, wantReason: "Matching tags: financial"},
		{name: "doc tag contains question tag", docTags: []string{"financials"}, qTags: []string{"financial"}, wantPoints: 40, wantReason: "Matching tags: financials"},
		{name: "question tag contains doc tag", docTags: []string{"tax"}, qTags: []string{"taxes"}, wantPoints: 40, wantReason: "Matching tags: tax"},
		{name: "counted per document tag", docTags: []string{"legal", "contracts", "hr"}, qTags: []string{"legal", "contract"}, wantPoints: 80, wantReason: "Matching tags: legal, contracts"},
		{name: "no overlap", docTags: []string{"hr"}, qTags: []string{"legal"}},
		{name: "empty tags", docTags: nil, qTags: []string{"legal"}},
		{name: "empty tag never matches", docTags: []string{""}, qTags: []string{"legal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, reason := tagOverlap(pair(model.Document{Tags: tt.docTags}, model.Question{Tags: tt.qTags}))
			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestKeywordOverlap(t *testing.T) {
	t.Run("counts every match but labels three", func(t *testing.T) {
		doc := model.Document{Name: "revenue-forecast_pipeline.customer churn.xlsx"}
		q := model.Question{Title: "Revenue forecast", Content: "customer churn and pipeline data"}

		points, reason := keywordOverlap(pair(doc, q))
		assert.Equal(t, 5*KeywordPoints, points)
		assert.Equal(t, "Keyword matches: revenue, forecast, customer", reason)
	})

	t.Run("short words are ignored", func(t *testing.T) {
		doc := model.Document{Name: "tax_q3.pdf"}
		q := model.Question{Title: "Q3 tax", Content: "the tax"}

		points, reason := keywordOverlap(pair(doc, q))
		assert.Zero(t, points)
		assert.Empty(t, reason)
	})

	t.Run("repeated question words count once", func(t *testing.T) {
		doc := model.Document{Name: "audit report.pdf"}
		q := model.Question{Title: "audit", Content: "audit audit"}

		points, _ := keywordOverlap(pair(doc, q))
		assert.Equal(t, KeywordPoints, points)
	})

	t.Run("substring either way", func(t *testing.T) {
		doc := model.Document{Name: "statements.pdf"}
		q := model.Question{Title: "statement"}

		points, reason := keywordOverlap(pair(doc, q))
		assert.Equal(t, KeywordPoints, points)
		assert.Equal(t, "Keyword matches: statement", reason)
	})
}

func TestDomainRules(t *testing.T) {
	tests := []struct {
		name    string
		docName string
		text    string
		want    []string
	}{
		{name: "financial by name", docName: "Financial_Summary.pdf", text: "financial position", want: []string{"Financial document type"}},
		{name: "financial by budget", docName: "budget-2024.xlsx", text: "financial plan", want: []string{"Financial document type"}},
		{name: "legal by contract", docName: "supplier contract.docx", text: "legal exposure", want: []string{"Legal document type"}},
		{name: "technical by spec", docName: "api-spec.yaml", text: "technical debt", want: []string{"Technical document type"}},
		{name: "all fire independently", docName: "legal financial tech", text: "financial legal technical", want: []string{"Financial document type", "Legal document type", "Technical document type"}},
		{name: "question word missing", docName: "budget.xlsx", text: "headcount", want: nil},
		{name: "document word missing", docName: "org-chart.pdf", text: "legal", want: nil},
	}

	rules := DefaultRules[2:5]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pair{
				Document:     &model.Document{Name: tt.docName},
				Question:     &model.Question{},
				QuestionText: tt.text,
				Now:          refNow,
			}
			var got []string
			for _, r := range rules {
				points, reason := r.Apply(p)
				if points > 0 {
					assert.Equal(t, DomainPoints, points)
					got = append(got, reason)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecency(t *testing.T) {
	tests := []struct {
		name       string
		uploadedAt time.Time
		want       int
	}{
		{name: "just uploaded", uploadedAt: refNow.Add(-time.Hour), want: RecencyPoints},
		{name: "six days", uploadedAt: refNow.Add(-6 * 24 * time.Hour), want: RecencyPoints},
		{name: "exactly seven days", uploadedAt: refNow.Add(-RecencyWindow), want: 0},
		{name: "thirty days", uploadedAt: refNow.Add(-30 * 24 * time.Hour), want: 0},
		{name: "unknown upload time", uploadedAt: time.Time{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, _ := recency(pair(model.Document{UploadedAt: tt.uploadedAt}, model.Question{}))
			assert.Equal(t, tt.want, points)
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"need", "financial", "statement"}, QuestionTokens("Need the Q3 Financial statement financial"))
	assert.Equal(t, []string{"financial", "statement"}, DocumentTokens("Q3_financial-statement.pdf"))
	assert.Empty(t, QuestionTokens(""))
	assert.Empty(t, DocumentTokens("a.b_c-d"))
}
