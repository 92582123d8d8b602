package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"dataroom/internal/model"
)

// Ranking directions used as metric labels.
const (
	DirectionDocumentsForQuestion = "documents_for_question"
	DirectionQuestionsForDocument = "questions_for_document"
)

// Metrics holds domain counters. A nil *Metrics records nothing.
type Metrics struct {
	transitions *prometheus.CounterVec
	rankings    *prometheus.CounterVec
}

// NewMetrics creates the domain counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataroom_lifecycle_transitions_total",
				Help: "Question lifecycle transitions by target status.",
			},
			[]string{"to"},
		),
		rankings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataroom_match_rankings_total",
				Help: "Relevance ranking calls by direction.",
			},
			[]string{"direction"},
		),
	}
	for _, c := range []prometheus.Collector{m.transitions, m.rankings} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) transition(to model.QuestionStatus) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(to)).Inc()
}

func (m *Metrics) ranking(direction string) {
	if m == nil {
		return
	}
	m.rankings.WithLabelValues(direction).Inc()
}
