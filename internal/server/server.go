// Package server exposes the feed pipeline over HTTP. Handlers validate the
// url query parameter, run the pipeline, and serialise the result or a
// structured error payload.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/julienpequegnot/feedlens/internal/feed"
)

type Server struct {
	pipeline *feed.Pipeline
	log      *slog.Logger
}

func New(pipeline *feed.Pipeline, log *slog.Logger) *Server {
	return &Server{pipeline: pipeline, log: log}
}

// Router builds the echo instance with its middleware and routes.
func (s *Server) Router(allowedOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{echo.GET, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	v1 := e.Group("/v1")
	v1.GET("/health", s.handleHealth)
	v1.GET("/feed", s.handleFeed)
	v1.GET("/discover", s.handleDiscover)
	return e
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleFeed(c echo.Context) error {
	feedURL, err := feed.ValidateURL(c.QueryParam("url"))
	if err != nil {
		return errorJSON(c, err)
	}

	start := time.Now()
	result, err := s.pipeline.Fetch(c.Request().Context(), feedURL)
	if err != nil {
		s.log.Error("feed fetch failed", "url", feedURL, "error", err)
		return errorJSON(c, err)
	}

	s.log.Info("feed fetched", "url", feedURL, "articles", len(result.Articles), "duration", time.Since(start))
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleDiscover(c echo.Context) error {
	pageURL, err := feed.ValidateURL(c.QueryParam("url"))
	if err != nil {
		return errorJSON(c, err)
	}

	start := time.Now()
	result, err := s.pipeline.Discover(c.Request().Context(), pageURL)
	if err != nil {
		s.log.Error("discovery failed", "url", pageURL, "error", err)
		return errorJSON(c, err)
	}

	s.log.Info("discovery finished", "url", pageURL, "feeds", len(result.Feeds), "duration", time.Since(start))
	return c.JSON(http.StatusOK, result)
}

func errorJSON(c echo.Context, err error) error {
	return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps the error taxonomy onto HTTP statuses: bad input is the
// caller's fault, upstream failures are gateway errors, and anything
// unclassified is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, feed.ErrMissingParameter), errors.Is(err, feed.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, feed.ErrNoFeed):
		return http.StatusUnprocessableEntity
	case feed.IsTimeout(err):
		return http.StatusGatewayTimeout
	}
	var upstream *feed.UpstreamHTTPError
	if errors.As(err, &upstream) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
