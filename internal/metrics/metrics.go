package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons a match leaves the registry.
const (
	ReasonCompleted = "completed"
	ReasonForfeit   = "forfeit"
)

// Game bundles the gameplay collectors exposed on /metrics.
type Game struct {
	ConnectionsActive prometheus.Gauge
	QueueDepth        prometheus.Gauge
	MatchesActive     prometheus.Gauge
	MatchesStarted    *prometheus.CounterVec
	MatchesEnded      *prometheus.CounterVec
	QuestionsServed   prometheus.Counter
	Answers           *prometheus.CounterVec
}

// New registers the gameplay collectors against reg.
func New(reg prometheus.Registerer) *Game {
	factory := promauto.With(reg)
	return &Game{
		ConnectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "preguntados",
			Name:      "connections_active",
			Help:      "Currently open WebSocket connections.",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "preguntados",
			Name:      "matchmaking_queue_depth",
			Help:      "Players waiting for an opponent.",
		}),
		MatchesActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "preguntados",
			Name:      "matches_active",
			Help:      "Matches currently in the registry.",
		}),
		MatchesStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "preguntados",
			Name:      "matches_started_total",
			Help:      "Matches created, by mode.",
		}, []string{"mode"}),
		MatchesEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "preguntados",
			Name:      "matches_ended_total",
			Help:      "Matches removed from the registry, by reason.",
		}, []string{"reason"}),
		QuestionsServed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "preguntados",
			Name:      "questions_served_total",
			Help:      "Questions dispatched to matches.",
		}),
		Answers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "preguntados",
			Name:      "answers_total",
			Help:      "Accepted answer submissions, by result.",
		}, []string{"result"}),
	}
}
