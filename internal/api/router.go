// Package api exposes the aggregation pipeline over HTTP. Feed endpoints
// always answer 200 with a renderable payload for a valid section; only
// malformed client input earns a 4xx.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"emarknews/internal/cache"
	"emarknews/internal/currency"
	"emarknews/internal/enrich"
	"emarknews/internal/feed"
	"emarknews/internal/metrics"
	"emarknews/internal/youtube"
)

const version = "1.0.0"

type Server struct {
	feeds    *feed.Service
	pipeline *enrich.Pipeline
	currency *currency.Service
	videos   *youtube.Service
	store    *cache.Store
	started  time.Time
}

func NewServer(feeds *feed.Service, pipeline *enrich.Pipeline, cur *currency.Service, videos *youtube.Service, store *cache.Store) *Server {
	return &Server{
		feeds:    feeds,
		pipeline: pipeline,
		currency: cur,
		videos:   videos,
		store:    store,
		started:  time.Now(),
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/healthz", s.health)
	r.GET("/metrics", s.metrics)

	api := r.Group("/api")
	{
		api.GET("/feed", s.getFeedByQuery)
		api.GET("/news/:section", s.getFeedByPath)
		api.GET("/currency", s.getCurrency)
		api.GET("/youtube", s.getVideos)

		api.POST("/translate", s.translate)
		api.POST("/summarize", s.summarize)
		api.POST("/analyze-sentiment", s.analyzeSentiment)
	}
}

func (s *Server) getFeedByQuery(c *gin.Context) {
	section := c.DefaultQuery("section", "world")
	s.serveFeed(c, section)
}

func (s *Server) getFeedByPath(c *gin.Context) {
	s.serveFeed(c, c.Param("section"))
}

func (s *Server) serveFeed(c *gin.Context, section string) {
	env, err := s.feeds.GetNewsData(c.Request.Context(), section)
	if err != nil {
		if errors.Is(err, feed.ErrInvalidSection) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid section",
			})
			return
		}
		// The feed service degrades instead of failing; any other error
		// here is a bug, but the client still gets a valid shape.
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"section": section,
			"data":    gin.H{"section": section, "articles": []any{}, "total": 0},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"section": env.Section,
		"data":    env,
	})
}

type articleRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	TargetLanguage string `json:"targetLanguage"`
}

// bindArticleRequest enforces the only validation failure the AI
// endpoints emit: missing required fields.
func bindArticleRequest(c *gin.Context) (*articleRequest, bool) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "title and description are required",
		})
		return nil, false
	}
	return &req, true
}

func (s *Server) translate(c *gin.Context) {
	req, ok := bindArticleRequest(c)
	if !ok {
		return
	}

	t, err := s.pipeline.Translate(c.Request.Context(), req.Title, req.Description, req.TargetLanguage)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"translatedTitle":       t.TranslatedTitle,
		"translatedDescription": t.TranslatedDescription,
		"targetLanguage":        t.TargetLanguage,
	})
}

func (s *Server) summarize(c *gin.Context) {
	req, ok := bindArticleRequest(c)
	if !ok {
		return
	}

	sum, err := s.pipeline.Summarize(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"summary":   sum.Summary,
		"keyPoints": sum.KeyPoints,
	})
}

func (s *Server) analyzeSentiment(c *gin.Context) {
	req, ok := bindArticleRequest(c)
	if !ok {
		return
	}

	sent, err := s.pipeline.AnalyzeSentiment(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"sentiment":  sent.Sentiment,
		"confidence": sent.Confidence,
		"emotions":   sent.Emotions,
		"tone":       sent.Tone,
	})
}

func (s *Server) getCurrency(c *gin.Context) {
	rates := s.currency.GetRates(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rates,
	})
}

func (s *Server) getVideos(c *gin.Context) {
	section := c.DefaultQuery("section", "world")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    s.videos.GetVideos(section),
	})
}

// health always reports 200: a degraded cache store is part of normal
// operation, not an outage.
func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   version,
		"timestamp": time.Now(),
		"uptime":    time.Since(s.started).Seconds(),
		"redis":     s.store.Health(ctx),
	})
}

func (s *Server) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Global.GetStats())
}
