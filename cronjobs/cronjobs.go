package cronjobs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bluesky-social/indigo/xrpc"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"go-pulse/processor"
	"go-pulse/types"
)

const (
	feedMethod   = "app.bsky.feed.getFeed"
	publicHost   = "https://public.api.bsky.app" // public endpoint for unauthenticated requests.
	defaultLimit = 10
	probeTimeout = 5 * time.Second
	ingestBudget = 2 * time.Minute
)

// FeedCallParameters selects one page of a feed generator.
type FeedCallParameters struct {
	URI   string
	Limit int
}

// FeedClient pulls feed pages from Bluesky.
type FeedClient struct {
	client *xrpc.Client
}

// NewFeedClient returns a client for host, defaulting to the public AppView.
func NewFeedClient(host string) *FeedClient {
	if host == "" {
		host = publicHost
	}
	return &FeedClient{client: &xrpc.Client{
		Client: &http.Client{Timeout: 10 * time.Second},
		Host:   host,
	}}
}

func (f *FeedClient) CallFeed(ctx context.Context, p FeedCallParameters) (types.FeedResponse, error) {
	limit := defaultLimit
	if p.Limit != 0 {
		limit = p.Limit
	}

	// The limit can be adjusted (min 1, max 100, default 50).
	params := map[string]interface{}{
		"feed":  p.URI,
		"limit": limit,
	}

	var out types.FeedResponse
	if err := f.client.Do(ctx, xrpc.Query, "json", feedMethod, params, nil, &out); err != nil {
		return types.FeedResponse{}, fmt.Errorf("fetch feed %s: %w", p.URI, err)
	}
	return out, nil
}

// Prober checks an upstream and reports its latency.
type Prober func(ctx context.Context) (time.Duration, error)

// Jobs holds what the scheduled tasks run against.
type Jobs struct {
	Feeds          *FeedClient
	FeedURIs       []string
	Analyzer       *processor.Analyzer
	Store          processor.Store
	Probe          Prober
	IngestSchedule string
	HealthSchedule string
	Logger         logrus.FieldLogger
}

// Ingest pulls every configured feed once and stores the analyses.
func (j Jobs) Ingest(ctx context.Context) {
	for _, uri := range j.FeedURIs {
		entry := j.Logger.WithField("feed", uri)

		out, err := j.Feeds.CallFeed(ctx, FeedCallParameters{URI: uri, Limit: defaultLimit})
		if err != nil {
			entry.WithError(err).Warn("feed fetch failed")
			continue
		}

		results := processor.ProcessFeed(ctx, j.Analyzer, j.Store, out, j.Logger)
		saved, skipped, failed := 0, 0, 0
		for _, r := range results {
			switch {
			case r.ErrorSaving:
				failed++
			case r.AlreadyExist:
				skipped++
			default:
				saved++
			}
		}
		entry.WithFields(logrus.Fields{
			"posts":   len(out.Feed),
			"saved":   saved,
			"skipped": skipped,
			"failed":  failed,
		}).Info("feed ingested")
	}
}

// CheckHealth runs the probe once and logs the outcome.
func (j Jobs) CheckHealth(ctx context.Context) {
	if j.Probe == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	latency, err := j.Probe(ctx)
	if err != nil {
		j.Logger.WithError(err).Warn("NER service unreachable")
		return
	}
	j.Logger.WithField("latency", latency.String()).Info("NER service reachable")
}

// InitCronJobs schedules ingestion and the health probe and starts the
// scheduler. Ingestion is only scheduled with a store and at least one feed.
func InitCronJobs(j Jobs) (*cron.Cron, error) {
	j.Logger.Info("Starting Cron Jobs")
	c := cron.New()

	if j.Store != nil && len(j.FeedURIs) > 0 {
		_, err := c.AddFunc(j.IngestSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), ingestBudget)
			defer cancel()
			j.Ingest(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("schedule feed ingestion: %w", err)
		}
	}

	if j.Probe != nil {
		_, err := c.AddFunc(j.HealthSchedule, func() {
			j.CheckHealth(context.Background())
		})
		if err != nil {
			return nil, fmt.Errorf("schedule health probe: %w", err)
		}
	}

	c.Start()
	return c, nil
}
