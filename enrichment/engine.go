// Package enrichment attaches disambiguation summaries and a relevant news
// headline to a merged entity list. Every upstream call is time-bounded and
// fails closed: errors only ever reduce the amount of context returned.
package enrichment

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"go-pulse/metrics"
	"go-pulse/types"
)

const (
	maxQueryNames  = 3
	defaultTimeout = 3 * time.Second
)

var (
	// ErrNotFound indicates the disambiguation source has no page for a name.
	ErrNotFound = errors.New("no disambiguation entry")
	// ErrUnavailable indicates an enrichment upstream is unreachable.
	ErrUnavailable = errors.New("enrichment service unavailable")
)

// Summary is a disambiguation source answer.
type Summary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Extract     string `json:"extract"`
}

type Disambiguator interface {
	Lookup(ctx context.Context, name string) (Summary, error)
}

type NewsSource interface {
	Search(ctx context.Context, query string) ([]types.NewsItem, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, name string) (*types.GeoPoint, error)
}

// NameResolver turns a surface form into an English lookup name.
type NameResolver interface {
	ToEnglish(ctx context.Context, s string) string
}

// Config wires the engine's upstreams. Any of them may be nil.
type Config struct {
	Disambiguator Disambiguator
	News          NewsSource
	Geocoder      Geocoder
	Names         NameResolver
	Timeout       time.Duration
	Logger        logrus.FieldLogger
}

type Engine struct {
	wiki    Disambiguator
	news    NewsSource
	geo     Geocoder
	names   NameResolver
	timeout time.Duration
	log     logrus.FieldLogger
}

func New(cfg Config) *Engine {
	e := &Engine{
		wiki:    cfg.Disambiguator,
		news:    cfg.News,
		geo:     cfg.Geocoder,
		names:   cfg.Names,
		timeout: cfg.Timeout,
		log:     cfg.Logger,
	}
	if e.timeout <= 0 {
		e.timeout = defaultTimeout
	}
	if e.log == nil {
		e.log = logrus.StandardLogger()
	}
	return e
}

// subject is an entity with its resolved English name and, when the lookup
// succeeded, its disambiguation entry.
type subject struct {
	entity  types.Entity
	english string
	entry   *types.Disambiguation
}

// Enrich builds ContextData for entities. text is only used for logging.
func (e *Engine) Enrich(ctx context.Context, text string, entities []types.Entity) types.ContextData {
	cd := types.ContextData{Disambiguation: []types.Disambiguation{}}
	if len(entities) == 0 {
		return cd
	}

	subjects := e.resolve(ctx, entities)

	names := mapset.NewThreadUnsafeSet[string]()
	for _, s := range subjects {
		for _, n := range []string{s.entity.Text, s.english} {
			if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
				names.Add(n)
			}
		}
		if s.entry != nil {
			cd.Disambiguation = append(cd.Disambiguation, *s.entry)
		}
	}

	cd.News = e.findNews(ctx, subjects, names)
	cd.IsGenerated = len(cd.Disambiguation) > 0 || cd.News != nil

	e.log.WithFields(logrus.Fields{
		"text_len":       len(text),
		"entities":       len(entities),
		"disambiguation": len(cd.Disambiguation),
		"news":           cd.News != nil,
	}).Debug("enrichment finished")

	return cd
}

// resolve looks up every entity concurrently. Results keep the entity order.
func (e *Engine) resolve(ctx context.Context, entities []types.Entity) []subject {
	subjects := make([]subject, len(entities))

	var wg sync.WaitGroup
	for i := range entities {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			subjects[idx] = e.resolveOne(ctx, entities[idx])
		}(i)
	}
	wg.Wait()

	return subjects
}

func (e *Engine) resolveOne(ctx context.Context, ent types.Entity) subject {
	s := subject{entity: ent, english: ent.IdentifiedAs}
	if s.english == "" {
		s.english = ent.Text
		if e.names != nil {
			s.english = e.names.ToEnglish(ctx, ent.Text)
		}
	}

	sum, ok := e.lookup(ctx, s.english)
	if !ok && ent.Text != s.english {
		sum, ok = e.lookup(ctx, ent.Text)
	}
	metrics.ObserveEnrichment("disambiguation", ok)
	if !ok {
		return s
	}

	entry := &types.Disambiguation{
		Entity:       ent.Text,
		IdentifiedAs: sum.Title,
		Description:  sum.Description,
	}
	if entry.IdentifiedAs == "" {
		entry.IdentifiedAs = s.english
	}
	if entry.Description == "" {
		entry.Description = sum.Extract
	}
	if ent.Label == types.GPE || ent.Label == types.LOC {
		entry.Coordinates = e.geocode(ctx, s.english)
	}
	s.entry = entry
	return s
}

func (e *Engine) lookup(ctx context.Context, name string) (Summary, bool) {
	if e.wiki == nil || strings.TrimSpace(name) == "" {
		return Summary{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	sum, err := e.wiki.Lookup(callCtx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		metrics.ObserveUpstream(metrics.UpstreamWiki, metrics.OutcomeMiss)
		return Summary{}, false
	case err != nil:
		metrics.ObserveUpstream(metrics.UpstreamWiki, metrics.OutcomeError)
		e.log.WithError(err).WithField("name", name).Debug("disambiguation lookup failed")
		return Summary{}, false
	}
	metrics.ObserveUpstream(metrics.UpstreamWiki, metrics.OutcomeOK)
	return sum, true
}

func (e *Engine) geocode(ctx context.Context, name string) *types.GeoPoint {
	if e.geo == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	point, err := e.geo.Geocode(callCtx, name)
	if err != nil {
		metrics.ObserveUpstream(metrics.UpstreamGeocode, metrics.OutcomeError)
		e.log.WithError(err).WithField("name", name).Debug("geocoding failed")
		return nil
	}
	if point == nil {
		metrics.ObserveUpstream(metrics.UpstreamGeocode, metrics.OutcomeMiss)
		return nil
	}
	metrics.ObserveUpstream(metrics.UpstreamGeocode, metrics.OutcomeOK)
	return point
}

func labelPriority(l types.Label) int {
	switch l {
	case types.PER:
		return 0
	case types.ORG:
		return 1
	case types.GPE, types.LOC:
		return 2
	}
	return 3
}

// queryNames returns up to three distinct English names, best-ranked first.
func queryNames(subjects []subject) []string {
	ranked := append([]subject(nil), subjects...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return labelPriority(ranked[i].entity.Label) < labelPriority(ranked[j].entity.Label)
	})

	var out []string
	seen := make(map[string]bool)
	for _, s := range ranked {
		name := strings.TrimSpace(s.english)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
		if len(out) == maxQueryNames {
			break
		}
	}
	return out
}

// findNews queries the news source and only accepts a headline that mentions
// one of the collected names. When the combined query finds nothing relevant,
// it retries once with the top entity's name alone.
func (e *Engine) findNews(ctx context.Context, subjects []subject, names mapset.Set[string]) *types.NewsItem {
	if e.news == nil {
		return nil
	}
	distinct := queryNames(subjects)
	if len(distinct) == 0 {
		return nil
	}

	query := distinct[0]
	if len(distinct) >= 2 {
		query = strings.Join(distinct, " ")
	}

	if item := firstRelevant(e.search(ctx, query), names); item != nil {
		metrics.ObserveEnrichment("news", true)
		return item
	}

	// Falling back to the first headline of the batch would mean accepting an
	// irrelevant one, so retry with the single best name instead.
	if distinct[0] != query {
		if item := firstRelevant(e.search(ctx, distinct[0]), names); item != nil {
			metrics.ObserveEnrichment("news", true)
			return item
		}
	}

	metrics.ObserveEnrichment("news", false)
	return nil
}

func (e *Engine) search(ctx context.Context, query string) []types.NewsItem {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	items, err := e.news.Search(callCtx, query)
	if err != nil {
		metrics.ObserveUpstream(metrics.UpstreamNews, metrics.OutcomeError)
		e.log.WithError(err).WithField("query", query).Debug("news search failed")
		return nil
	}
	if len(items) == 0 {
		metrics.ObserveUpstream(metrics.UpstreamNews, metrics.OutcomeMiss)
		return nil
	}
	metrics.ObserveUpstream(metrics.UpstreamNews, metrics.OutcomeOK)
	return items
}

func firstRelevant(items []types.NewsItem, names mapset.Set[string]) *types.NewsItem {
	for _, it := range items {
		if Relevant(it.Headline, names) {
			found := it
			return &found
		}
	}
	return nil
}

// Relevant reports whether headline contains any of names (lower-cased), ignoring case.
func Relevant(headline string, names mapset.Set[string]) bool {
	h := strings.ToLower(headline)
	if h == "" {
		return false
	}
	relevant := false
	names.Each(func(n string) bool {
		if strings.Contains(h, n) {
			relevant = true
			return true
		}
		return false
	})
	return relevant
}
