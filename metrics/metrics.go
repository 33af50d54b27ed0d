// Package metrics exposes Prometheus collectors for the analysis pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Upstream names used as label values.
const (
	UpstreamModel     = "ner_model"
	UpstreamTranslate = "translate"
	UpstreamWiki      = "disambiguation"
	UpstreamNews      = "news"
	UpstreamGeocode   = "geocode"
)

var (
	analysesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pulse_analyses_total",
			Help: "Number of texts analysed",
		},
	)

	analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pulse_analysis_duration_seconds",
			Help:    "Time spent analysing one text, including upstream calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	riskScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pulse_risk_score",
			Help:    "Distribution of computed risk scores",
			Buckets: []float64{0, 0.4, 0.7, 0.95},
		},
	)

	upstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_upstream_calls_total",
			Help: "Upstream calls by upstream and outcome",
		},
		[]string{"upstream", "outcome"},
	)

	enrichments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_enrichment_total",
			Help: "Enrichment results by kind (disambiguation, news) and whether they were accepted",
		},
		[]string{"kind", "accepted"},
	)

	moderationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_moderation_decisions_total",
			Help: "Moderation decisions reported to callers",
		},
		[]string{"decision"},
	)
)

func init() {
	prometheus.MustRegister(analysesTotal)
	prometheus.MustRegister(analysisDuration)
	prometheus.MustRegister(riskScores)
	prometheus.MustRegister(upstreamCalls)
	prometheus.MustRegister(enrichments)
	prometheus.MustRegister(moderationDecisions)
}

// ObserveAnalysis records one finished analysis.
func ObserveAnalysis(start time.Time, riskScore float64) {
	analysesTotal.Inc()
	analysisDuration.Observe(time.Since(start).Seconds())
	riskScores.Observe(riskScore)
}

func ObserveUpstream(upstream, outcome string) {
	upstreamCalls.WithLabelValues(upstream, outcome).Inc()
}

func ObserveEnrichment(kind string, accepted bool) {
	v := "false"
	if accepted {
		v = "true"
	}
	enrichments.WithLabelValues(kind, v).Inc()
}

func ObserveDecision(blocked bool) {
	d := "allow"
	if blocked {
		d = "block"
	}
	moderationDecisions.WithLabelValues(d).Inc()
}
