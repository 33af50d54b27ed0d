package enrichment

import (
	"context"
	"errors"
	"sync"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pulse/types"
)

type fakeWiki struct {
	mu    sync.Mutex
	pages map[string]Summary
	err   error
	calls []string
}

func (f *fakeWiki) Lookup(_ context.Context, name string) (Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.err != nil {
		return Summary{}, f.err
	}
	if s, ok := f.pages[name]; ok {
		return s, nil
	}
	return Summary{}, ErrNotFound
}

type fakeNews struct {
	results  map[string][]types.NewsItem
	fallback []types.NewsItem
	err      error
	queries  []string
}

func (f *fakeNews) Search(_ context.Context, query string) ([]types.NewsItem, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if items, ok := f.results[query]; ok {
		return items, nil
	}
	return f.fallback, nil
}

type fakeGeocoder struct {
	point *types.GeoPoint
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (*types.GeoPoint, error) {
	return f.point, nil
}

type stubResolver struct{}

func (stubResolver) ToEnglish(_ context.Context, s string) string {
	if s == "मोदी" {
		return "Narendra Modi"
	}
	return s
}

func newTestEngine(cfg Config) *Engine {
	log, _ := test.NewNullLogger()
	cfg.Logger = log
	return New(cfg)
}

var (
	modi  = types.Entity{Text: "Modi", Label: types.PER, Confidence: 0.9, Source: types.SourceModel, IdentifiedAs: "Narendra Modi"}
	bjp   = types.Entity{Text: "bjp", Label: types.ORG, Confidence: 1, Source: types.SourceDictionary, IdentifiedAs: "Bharatiya Janata Party"}
	dilli = types.Entity{Text: "dilli", Label: types.GPE, Confidence: 1, Source: types.SourceDictionary, IdentifiedAs: "Delhi"}
)

func TestEnrich_NoEntities(t *testing.T) {
	wiki := &fakeWiki{}
	cd := newTestEngine(Config{Disambiguator: wiki, News: &fakeNews{}}).Enrich(context.Background(), "hello", nil)

	assert.False(t, cd.IsGenerated)
	assert.NotNil(t, cd.Disambiguation)
	assert.Empty(t, cd.Disambiguation)
	assert.Nil(t, cd.News)
	assert.Empty(t, wiki.calls)
}

func TestEnrich_DisambiguationKeepsEntityOrder(t *testing.T) {
	wiki := &fakeWiki{pages: map[string]Summary{
		"Narendra Modi":          {Title: "Narendra Modi", Description: "Prime Minister of India"},
		"Bharatiya Janata Party": {Title: "Bharatiya Janata Party", Extract: "The BJP is a political party in India."},
	}}
	cd := newTestEngine(Config{Disambiguator: wiki}).Enrich(context.Background(), "modi and bjp", []types.Entity{bjp, modi})

	require.Len(t, cd.Disambiguation, 2)
	assert.Equal(t, "bjp", cd.Disambiguation[0].Entity)
	assert.Equal(t, "The BJP is a political party in India.", cd.Disambiguation[0].Description)
	assert.Equal(t, "Modi", cd.Disambiguation[1].Entity)
	assert.Equal(t, "Prime Minister of India", cd.Disambiguation[1].Description)
	assert.True(t, cd.IsGenerated)
	assert.Nil(t, cd.News)
}

func TestEnrich_ResolvesSurfaceFormWithoutIdentity(t *testing.T) {
	wiki := &fakeWiki{pages: map[string]Summary{
		"Narendra Modi": {Title: "Narendra Modi", Description: "Prime Minister of India"},
	}}
	ent := types.Entity{Text: "मोदी", Label: types.PER, Confidence: 0.9, Source: types.SourceModel}
	cd := newTestEngine(Config{Disambiguator: wiki, Names: stubResolver{}}).Enrich(context.Background(), "मोदी", []types.Entity{ent})

	require.Len(t, cd.Disambiguation, 1)
	assert.Equal(t, "मोदी", cd.Disambiguation[0].Entity)
	assert.Equal(t, "Narendra Modi", cd.Disambiguation[0].IdentifiedAs)
}

func TestEnrich_FallsBackToSurfaceForm(t *testing.T) {
	wiki := &fakeWiki{pages: map[string]Summary{
		"Modi": {Title: "Modi", Description: "Indian surname"},
	}}
	ent := types.Entity{Text: "Modi", Label: types.PER, IdentifiedAs: "Narendra Damodardas Modi"}
	cd := newTestEngine(Config{Disambiguator: wiki}).Enrich(context.Background(), "Modi", []types.Entity{ent})

	require.Len(t, cd.Disambiguation, 1)
	assert.Equal(t, []string{"Narendra Damodardas Modi", "Modi"}, wiki.calls)
}

func TestEnrich_GeocodesPlaces(t *testing.T) {
	wiki := &fakeWiki{pages: map[string]Summary{
		"Delhi":         {Title: "Delhi", Description: "Capital territory of India"},
		"Narendra Modi": {Title: "Narendra Modi"},
	}}
	geo := &fakeGeocoder{point: &types.GeoPoint{FormattedAddress: "Delhi, India", Lat: 28.7, Long: 77.1}}
	cd := newTestEngine(Config{Disambiguator: wiki, Geocoder: geo}).Enrich(context.Background(), "modi in dilli", []types.Entity{modi, dilli})

	require.Len(t, cd.Disambiguation, 2)
	assert.Nil(t, cd.Disambiguation[0].Coordinates)
	require.NotNil(t, cd.Disambiguation[1].Coordinates)
	assert.Equal(t, "Delhi, India", cd.Disambiguation[1].Coordinates.FormattedAddress)
}

func TestEnrich_NewsQueryRanksByLabel(t *testing.T) {
	news := &fakeNews{}
	newTestEngine(Config{News: news}).Enrich(context.Background(), "", []types.Entity{dilli, bjp, modi})

	require.NotEmpty(t, news.queries)
	assert.Equal(t, "Narendra Modi Bharatiya Janata Party Delhi", news.queries[0])
}

func TestEnrich_AcceptsRelevantHeadline(t *testing.T) {
	news := &fakeNews{fallback: []types.NewsItem{
		{Headline: "Markets close higher", URL: "https://example.com/1"},
		{Headline: "BJP announces candidates", URL: "https://example.com/2"},
	}}
	cd := newTestEngine(Config{News: news}).Enrich(context.Background(), "", []types.Entity{modi, bjp})

	require.NotNil(t, cd.News)
	assert.Equal(t, "BJP announces candidates", cd.News.Headline)
	assert.True(t, cd.IsGenerated)
	assert.Len(t, news.queries, 1)
}

func TestEnrich_RetriesWithTopEntity(t *testing.T) {
	news := &fakeNews{results: map[string][]types.NewsItem{
		"Narendra Modi Bharatiya Janata Party": {{Headline: "Markets close higher"}},
		"Narendra Modi":                        {{Headline: "Narendra Modi visits Japan", URL: "https://example.com/3"}},
	}}
	cd := newTestEngine(Config{News: news}).Enrich(context.Background(), "", []types.Entity{bjp, modi})

	require.NotNil(t, cd.News)
	assert.Equal(t, "Narendra Modi visits Japan", cd.News.Headline)
	assert.Equal(t, []string{"Narendra Modi Bharatiya Janata Party", "Narendra Modi"}, news.queries)
}

func TestEnrich_RejectsIrrelevantHeadlines(t *testing.T) {
	news := &fakeNews{fallback: []types.NewsItem{{Headline: "Weather turns cold across the north"}}}
	cd := newTestEngine(Config{News: news}).Enrich(context.Background(), "", []types.Entity{modi, bjp})

	assert.Nil(t, cd.News)
	assert.False(t, cd.IsGenerated)
	assert.Len(t, news.queries, 2)
}

func TestEnrich_SingleNameSkipsIdenticalRetry(t *testing.T) {
	news := &fakeNews{fallback: []types.NewsItem{{Headline: "Weather turns cold"}}}
	cd := newTestEngine(Config{News: news}).Enrich(context.Background(), "", []types.Entity{modi})

	assert.Nil(t, cd.News)
	assert.Equal(t, []string{"Narendra Modi"}, news.queries)
}

func TestEnrich_UpstreamFailuresYieldEmptyContext(t *testing.T) {
	wiki := &fakeWiki{err: errors.New("connection refused")}
	news := &fakeNews{err: errors.New("timeout")}
	cd := newTestEngine(Config{Disambiguator: wiki, News: news}).Enrich(context.Background(), "", []types.Entity{modi, bjp})

	assert.False(t, cd.IsGenerated)
	assert.NotNil(t, cd.Disambiguation)
	assert.Empty(t, cd.Disambiguation)
	assert.Nil(t, cd.News)
}

func TestRelevant(t *testing.T) {
	names := mapset.NewThreadUnsafeSet("narendra modi", "bjp")

	assert.True(t, Relevant("NARENDRA MODI speaks in Delhi", names))
	assert.True(t, Relevant("Opposition targets BJP", names))
	assert.False(t, Relevant("Cricket season opens", names))
	assert.False(t, Relevant("", names))
}
