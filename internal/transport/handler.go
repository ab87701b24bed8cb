package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-posture-inspector/internal/config"
	apperrors "go-posture-inspector/internal/errors"
	"go-posture-inspector/internal/logger"
	"go-posture-inspector/internal/service"
	"go-posture-inspector/pkg/models"
)

func NewHandler(svc service.PostureAnalysisService, cfg *config.Config) http.Handler {
	r := gin.New()

	// Add middleware
	r.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
		rateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/sessions", createSession(svc, cfg))
		v1.DELETE("/sessions/:id", closeSession(svc, cfg))
		v1.POST("/sessions/:id/frames", analyzeFrame(svc, cfg))
		v1.POST("/sessions/:id/frames/detailed", analyzeFrameDetailed(svc, cfg))
		v1.GET("/stream", streamFrames(svc, cfg))
		v1.POST("/analyze/batch", analyzeBatch(svc, cfg))
		v1.GET("/stats", stats(svc))
	}

	return r
}

// requestContext bounds the request by the configured timeout and carries
// the request ID for events
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := context.WithValue(c.Request.Context(), service.RequestIDKey, c.GetString(requestIDKey))
	return context.WithTimeout(ctx, timeout)
}

func createSession(svc service.PostureAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, cfg.RequestTimeout)
		defer cancel()

		// The body is optional
		var req models.CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		resp, err := svc.CreateSession(ctx, req)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to create session", err)
			return
		}

		c.JSON(http.StatusCreated, resp)
	}
}

func closeSession(svc service.PostureAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, cfg.RequestTimeout)
		defer cancel()

		if err := svc.CloseSession(ctx, c.Param("id")); err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to close session", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func analyzeFrame(svc service.PostureAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, cfg.RequestTimeout)
		defer cancel()

		var req models.FrameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		result, err := svc.AnalyzeFrame(ctx, c.Param("id"), req)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "frame analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"session_id": c.Param("id"),
			"status":     result.Status,
			"confidence": result.Confidence,
		}).Debug("Frame analysis completed")

		c.JSON(http.StatusOK, result)
	}
}

func analyzeFrameDetailed(svc service.PostureAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, cfg.RequestTimeout)
		defer cancel()

		var req models.FrameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		resp, err := svc.AnalyzeFrameDetailed(ctx, c.Param("id"), req)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "frame analysis failed", err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func analyzeBatch(svc service.PostureAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := requestContext(c, cfg.RequestTimeout)
		defer cancel()

		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		resp, err := svc.AnalyzeBatch(ctx, req)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "batch analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"streams":            len(resp.Streams),
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Batch analysis completed successfully")

		c.JSON(http.StatusOK, resp)
	}
}

func stats(svc service.PostureAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Stats())
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
