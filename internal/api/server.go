// Package api serves the airfoil generators over HTTP.
package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/chazu/foilworks/internal/config"
	"github.com/chazu/foilworks/pkg/airfoil"
)

// Server routes API requests. It is an http.Handler.
type Server struct {
	echo *echo.Echo
	cfg  *config.Config
	lib  airfoil.BaseLibrary
	log  *zap.Logger

	scripts *semaphore.Weighted // script evaluations in flight
}

// New builds a Server. lib may be nil, in which case every 6-series
// request reports a missing base shape.
func New(cfg *config.Config, lib airfoil.BaseLibrary, log *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		cfg:     cfg,
		lib:     lib,
		log:     log,
		scripts: semaphore.NewWeighted(int64(max(cfg.Script.MaxConcurrent, 1))),
	}
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(s.accessLog())
	e.Use(middleware.BodyLimit(cfg.Limits.BodyLimit))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)

	g := s.echo.Group("/api")
	g.POST("/airfoil/naca4", s.naca4)
	g.POST("/airfoil/naca5", s.naca5)
	g.POST("/airfoil/naca6", s.naca6)
	g.GET("/airfoil/:designation", s.airfoilByDesignation)
	g.POST("/re", s.reynolds)
	g.POST("/re/", s.reynolds)
	if s.cfg.Script.Enabled {
		g.POST("/script", s.script)
	}
}

// accessLog writes one line per request.
func (s *Server) accessLog() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				s.log.Info("request", append(fields, zap.String("error", v.Error.Error()))...)
				return nil
			}
			s.log.Info("request", fields...)
			return nil
		},
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
