// Package coachhttp exposes the coaching pipeline over HTTP.
package coachhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"riftcoach/internal/app"
	"riftcoach/internal/logger"
	"riftcoach/internal/pipeline"
	"riftcoach/internal/schema"

	"github.com/gin-gonic/gin"
)

// Server serves the coaching API.
type Server struct {
	addr   string
	router *gin.Engine
}

func NewServer(addr string, application *app.App) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := router.Group("/api")
	api.POST("/coach", coachHandler(application))
	api.GET("/patch", patchHandler(application))

	return &Server{addr: addr, router: router}
}

func coachHandler(application *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req schema.CoachRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := application.Coach(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		status := http.StatusOK
		if !result.Success {
			status = http.StatusUnprocessableEntity
			if n := len(result.Stages); n > 0 && result.Stages[n-1].Status == pipeline.StatusNotImplemented {
				status = http.StatusNotImplemented
			}
		}
		c.JSON(status, result)
	}
}

func patchHandler(application *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		patch, err := application.Patch()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"patch": patch})
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.ClientIP(), time.Since(start))
	}
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Infof("http server listening on %s", s.addr)
	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
