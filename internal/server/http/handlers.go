package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/Meesho/BharatMLStack/irisserve/internal/handler/predict"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func RegisterRoutes(router *gin.Engine, s *Server) {
	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/ready", s.handleReady)
	router.POST("/predict", s.handlePredict)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "irisserve",
		"version": s.engine.ModelVersion(),
		"endpoints": gin.H{
			"predict": "/predict",
			"health":  "/health",
			"ready":   "/ready",
			"metrics": "/metrics",
		},
	})
}

// Liveness probe. Never returns an error status once the process serves.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Readiness probe. 503 until the model artifact has loaded.
func (s *Server) handleReady(c *gin.Context) {
	if !s.tracker.ModelReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "ready",
		"model_version": s.engine.ModelVersion(),
	})
}

func (s *Server) handlePredict(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read predict request body")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	req, verr := predict.ParseAndValidate(body, s.engine.FeatureCount())
	if verr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"detail":     verr.Detail,
			"error_kind": verr.Kind,
		})
		return
	}

	resp, err := s.engine.Infer(req)
	if err != nil {
		var notReady *predict.NotReadyError
		if errors.As(err, &notReady) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "model not loaded"})
			return
		}
		log.Error().Err(err).Str("request_id", req.RequestID).Msg("Inference failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	s.metrics.RecordPrediction(resp.Confidence)
	c.JSON(http.StatusOK, resp)
}
