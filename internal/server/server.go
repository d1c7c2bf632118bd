package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"codechat/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the gin engine with all API routes.
func NewRouter(resolver *usecase.Resolver, chat *usecase.ChatService, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	h := NewHandler(resolver, chat)
	r.GET("/ping", h.Ping)

	api := r.Group("/api")
	{
		api.POST("/resolve", h.Resolve)

		sessions := api.Group("/sessions")
		sessions.POST("", h.CreateSession)
		sessions.POST("/:id/messages", h.SendMessage)
		sessions.GET("/:id/transcript", h.Transcript)
		sessions.DELETE("/:id", h.DeleteSession)
	}

	return r
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info().Msg("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
