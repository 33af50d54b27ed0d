package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-pulse/db"
	"go-pulse/detection"
	"go-pulse/types"
)

type AnalyzeRequest struct {
	Text   string `json:"text"`
	PostID string `json:"postId"`
}

type AnalyzeResponse struct {
	ID       string               `json:"id"`
	Result   types.AnalysisResult `json:"result"`
	Decision detection.Decision   `json:"decision"`
	Saved    bool                 `json:"saved"`
}

// Analyze runs the pipeline on the posted text and reports the moderation
// decision. The analysis is stored when postId is set and a store is configured.
func Analyze(c *gin.Context, analyzer Analyzer, store AnalysisStore, threshold float64, log logrus.FieldLogger) {
	var request AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id := RequestID(c)
	entry := log.WithField("request_id", id)

	result := analyzer.Analyze(ctx, request.Text)
	decision := detection.Decide(result.RiskScore, threshold)

	saved := false
	if request.PostID != "" && store != nil {
		if err := store.SaveAnalysis(ctx, request.PostID, request.Text, result); err != nil {
			entry.WithError(err).WithField("post", request.PostID).Warn("could not save analysis")
		} else {
			saved = true
		}
	}

	entry.WithFields(logrus.Fields{
		"risk_score": result.RiskScore,
		"blocked":    decision.Blocked,
		"entities":   len(result.Entities),
	}).Info("analysis served")

	c.JSON(http.StatusOK, AnalyzeResponse{
		ID:       id,
		Result:   result,
		Decision: decision,
		Saved:    saved,
	})
}

// GetAnalysis returns the stored analysis of a post. The post ID is the rest of
// the path, so at-URIs need no escaping of their slashes.
func GetAnalysis(c *gin.Context, store AnalysisStore, log logrus.FieldLogger) {
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return
	}
	postID := strings.TrimPrefix(c.Param("postId"), "/")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post id is required"})
		return
	}

	result, err := store.GetAnalysis(c.Request.Context(), postID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}
	if err != nil {
		log.WithError(err).WithField("post", postID).Error("could not load analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"postId": postID, "result": result})
}
