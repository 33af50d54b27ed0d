package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"go-pulse/handlers"
)

// Dependencies are the collaborators the HTTP surface needs. Stores and the
// translator may be nil when their backends are not configured.
type Dependencies struct {
	Analyzer       handlers.Analyzer
	Translator     handlers.Translator
	AnalysisStore  handlers.AnalysisStore
	MentionStore   handlers.MentionStore
	Disambiguator  handlers.Disambiguator
	BlockThreshold float64
	Logger         logrus.FieldLogger
}

func SetupRouter(d Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(d.Logger))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Go Pulse!",
		})
	})
	r.GET("/healthz", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// api routes
	api := r.Group("/api/pulse")
	{
		api.POST("/analyze", func(c *gin.Context) {
			handlers.Analyze(c, d.Analyzer, d.AnalysisStore, d.BlockThreshold, d.Logger)
		})
		api.POST("/translate", func(c *gin.Context) {
			handlers.Translate(c, d.Translator, d.Logger)
		})
		api.GET("/analyses/*postId", func(c *gin.Context) {
			handlers.GetAnalysis(c, d.AnalysisStore, d.Logger)
		})
		api.GET("/entities", func(c *gin.Context) {
			handlers.ListEntities(c, d.MentionStore, d.Logger)
		})
		api.GET("/entities/stats", func(c *gin.Context) {
			handlers.EntityStats(c, d.MentionStore, d.Logger)
		})
		api.GET("/entities/trending", func(c *gin.Context) {
			handlers.Trending(c, d.MentionStore, d.Logger)
		})
		api.GET("/entities/:text", func(c *gin.Context) {
			handlers.GetEntityProfile(c, d.MentionStore, d.Disambiguator, d.Logger)
		})
	}

	return r
}
