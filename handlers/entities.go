package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-pulse/enrichment"
	"go-pulse/trending"
	"go-pulse/types"
)

const (
	profileWindow  = 7 * 24 * time.Hour
	relatedLimit   = 10
	profileTimeout = 3 * time.Second
)

// Trending lists entities gaining momentum over the last 24 hours.
func Trending(c *gin.Context, store MentionStore, log logrus.FieldLogger) {
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return
	}

	limit, ok := limitParam(c, trending.DefaultLimit)
	if !ok {
		return
	}

	now := time.Now().UTC()
	mentions, err := store.MentionsSince(c.Request.Context(), now.Add(-2*trending.Window))
	if err != nil {
		log.WithError(err).Error("could not load mentions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load mentions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trending": trending.Compute(mentions, now, limit)})
}

// ListEntities lists every stored entity with its mention count and when it
// was last seen, optionally restricted to one label.
func ListEntities(c *gin.Context, store MentionStore, log logrus.FieldLogger) {
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return
	}

	limit, ok := limitParam(c, trending.DefaultListLimit)
	if !ok {
		return
	}
	label := types.Label(strings.ToUpper(strings.TrimSpace(c.Query("label"))))

	mentions, err := store.MentionsSince(c.Request.Context(), time.Time{})
	if err != nil {
		log.WithError(err).Error("could not load mentions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load mentions"})
		return
	}

	filter := string(label)
	if filter == "" {
		filter = "ALL"
	}
	entities := trending.Entities(mentions, label, limit)
	c.JSON(http.StatusOK, gin.H{
		"total":    len(entities),
		"filter":   filter,
		"entities": entities,
	})
}

// EntityStats breaks stored mentions down by label.
func EntityStats(c *gin.Context, store MentionStore, log logrus.FieldLogger) {
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return
	}

	ctx := c.Request.Context()
	mentions, err := store.MentionsSince(ctx, time.Time{})
	if err != nil {
		log.WithError(err).Error("could not load mentions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load mentions"})
		return
	}
	total, err := store.CountPosts(ctx)
	if err != nil {
		log.WithError(err).Error("could not count posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count posts"})
		return
	}

	stats := trending.Summarize(mentions)
	c.JSON(http.StatusOK, gin.H{
		"by_type":             stats.ByType,
		"posts_with_entities": stats.PostsWithEntities,
		"total_posts":         total,
		"entity_coverage":     trending.Coverage(stats.PostsWithEntities, total),
	})
}

// limitParam reads ?limit, answering 400 itself when it is not a positive integer.
func limitParam(c *gin.Context, def int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return n, true
}

type EntityProfile struct {
	Entity       ProfileEntity       `json:"entity"`
	Wikipedia    *enrichment.Summary `json:"wikipedia"`
	MentionCount int64               `json:"mention_count"`
	Related      []trending.Related  `json:"related_entities"`
}

type ProfileEntity struct {
	Text         string      `json:"text"`
	Label        types.Label `json:"label"`
	IdentifiedAs string      `json:"identified_as,omitempty"`
}

// GetEntityProfile returns what is known about one entity: its latest label,
// a page summary, how often it was mentioned and what it co-occurs with.
func GetEntityProfile(c *gin.Context, store MentionStore, wiki Disambiguator, log logrus.FieldLogger) {
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return
	}
	text := strings.TrimSpace(c.Param("text"))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity text is required"})
		return
	}

	ctx := c.Request.Context()
	count, err := store.CountMentions(ctx, text)
	if err != nil {
		log.WithError(err).WithField("entity", text).Error("could not count mentions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load entity"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found in any posts"})
		return
	}

	mentions, err := store.MentionsSince(ctx, time.Now().UTC().Add(-profileWindow))
	if err != nil {
		log.WithError(err).WithField("entity", text).Error("could not load mentions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load entity"})
		return
	}

	profile := EntityProfile{
		Entity:       ProfileEntity{Text: text, Label: types.MISC},
		MentionCount: count,
		Related:      trending.CoOccurring(mentions, text, relatedLimit),
	}
	lookupName := text
	if latest, ok := trending.Latest(mentions, text); ok {
		profile.Entity.Label = latest.Label
		profile.Entity.IdentifiedAs = latest.IdentifiedAs
		if latest.IdentifiedAs != "" {
			lookupName = latest.IdentifiedAs
		}
	}
	profile.Wikipedia = lookupSummary(ctx, wiki, lookupName, log)

	c.JSON(http.StatusOK, profile)
}

func lookupSummary(ctx context.Context, wiki Disambiguator, name string, log logrus.FieldLogger) *enrichment.Summary {
	if wiki == nil {
		return nil
	}
	callCtx, cancel := context.WithTimeout(ctx, profileTimeout)
	defer cancel()

	sum, err := wiki.Lookup(callCtx, name)
	if err != nil {
		if !errors.Is(err, enrichment.ErrNotFound) {
			log.WithError(err).WithField("name", name).Debug("summary lookup failed")
		}
		return nil
	}
	return &sum
}
