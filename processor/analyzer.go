// Package processor runs the analysis pipeline: entity extraction, risk
// scoring and enrichment.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-pulse/extraction"
	"go-pulse/lexicon"
	"go-pulse/metrics"
	"go-pulse/risk"
	"go-pulse/types"
)

const defaultModelTimeout = 3 * time.Second

// Detector finds named entities in text.
type Detector interface {
	Detect(ctx context.Context, text string) ([]types.Entity, error)
}

// Enricher attaches external context to a merged entity list.
type Enricher interface {
	Enrich(ctx context.Context, text string, entities []types.Entity) types.ContextData
}

type Analyzer struct {
	detector     Detector
	lexicon      *lexicon.Lexicon
	enricher     Enricher
	modelTimeout time.Duration
	log          logrus.FieldLogger
}

// NewAnalyzer builds an Analyzer. detector and enricher may be nil; lx
// defaults to lexicon.Default().
func NewAnalyzer(detector Detector, lx *lexicon.Lexicon, enricher Enricher, modelTimeout time.Duration, log logrus.FieldLogger) *Analyzer {
	if lx == nil {
		lx = lexicon.Default()
	}
	if modelTimeout <= 0 {
		modelTimeout = defaultModelTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Analyzer{
		detector:     detector,
		lexicon:      lx,
		enricher:     enricher,
		modelTimeout: modelTimeout,
		log:          log,
	}
}

// Analyze never fails. Every upstream error degrades to less output.
func (a *Analyzer) Analyze(ctx context.Context, text string) types.AnalysisResult {
	start := time.Now()

	// Run the model call and the dictionary pass concurrently.
	var (
		model []types.Entity
		dict  []types.Entity
	)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		model = a.detect(ctx, text)
	}()

	go func() {
		defer wg.Done()
		dict = extraction.DictionaryPass(text, a.lexicon)
	}()

	wg.Wait()

	social := extraction.SocialPass(text, a.lexicon, dict, model)
	entities := extraction.Combine(dict, social, model)

	// Risk scoring is local; enrichment waits on the network.
	var (
		assessment risk.Assessment
		cd         types.ContextData
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		assessment = risk.Score(a.lexicon, text, entities)
	}()

	go func() {
		defer wg.Done()
		cd = a.enrich(ctx, text, entities)
	}()

	wg.Wait()

	metrics.ObserveAnalysis(start, assessment.Score)
	a.log.WithFields(logrus.Fields{
		"entities":   len(entities),
		"risk_score": assessment.Score,
		"enriched":   cd.IsGenerated,
		"elapsed":    time.Since(start).String(),
	}).Debug("analysis complete")

	return types.AnalysisResult{
		Entities:                entities,
		RiskScore:               assessment.Score,
		ViolentDetected:         assessment.Violent,
		ContainsSensitiveEntity: assessment.Sensitive,
		ContextData:             cd,
	}
}

func (a *Analyzer) detect(ctx context.Context, text string) []types.Entity {
	if a.detector == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, a.modelTimeout)
	defer cancel()

	entities, err := a.detector.Detect(callCtx, text)
	if err != nil {
		metrics.ObserveUpstream(metrics.UpstreamModel, metrics.OutcomeError)
		a.log.WithError(err).WithField("upstream", metrics.UpstreamModel).Warn("entity model call failed")
		return nil
	}
	if len(entities) == 0 {
		metrics.ObserveUpstream(metrics.UpstreamModel, metrics.OutcomeMiss)
		return nil
	}
	metrics.ObserveUpstream(metrics.UpstreamModel, metrics.OutcomeOK)
	return entities
}

func (a *Analyzer) enrich(ctx context.Context, text string, entities []types.Entity) types.ContextData {
	if a.enricher == nil {
		return types.ContextData{Disambiguation: []types.Disambiguation{}}
	}
	return a.enricher.Enrich(ctx, text, entities)
}
