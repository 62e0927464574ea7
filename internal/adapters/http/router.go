package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jasveersingh-de/opportunity/config"
	"github.com/jasveersingh-de/opportunity/internal/adapters/http/handlers"
)

type Router struct {
	cfg          *config.Config
	profiles     *handlers.ProfileHandler
	jobs         *handlers.JobHandler
	applications *handlers.ApplicationHandler
	artifacts    *handlers.ArtifactHandler
	authMW       echo.MiddlewareFunc
}

func NewRouter(cfg *config.Config, profiles *handlers.ProfileHandler, jobs *handlers.JobHandler, applications *handlers.ApplicationHandler, artifacts *handlers.ArtifactHandler, authMW echo.MiddlewareFunc) *Router {
	return &Router{cfg: cfg, profiles: profiles, jobs: jobs, applications: applications, artifacts: artifacts, authMW: authMW}
}

func (r *Router) Setup(e *echo.Echo) {
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group(r.cfg.HTTPBasePath, r.authMW)

	api.POST("/auth/session", r.profiles.SessionComplete)
	api.GET("/profile", r.profiles.Get)
	api.PATCH("/profile", r.profiles.UpdateSettings)

	api.POST("/jobs", r.jobs.Create)
	api.GET("/jobs", r.jobs.List)
	api.GET("/jobs/:id", r.jobs.Get)
	api.PATCH("/jobs/:id", r.jobs.Update)
	api.DELETE("/jobs/:id", r.jobs.Delete)
	api.POST("/jobs/:id/rank", r.jobs.Rank)

	api.POST("/applications", r.applications.Create)
	api.GET("/applications", r.applications.List)
	api.PATCH("/applications/:id/status", r.applications.UpdateStatus)
	api.DELETE("/applications/:id", r.applications.Delete)

	api.POST("/artifacts/generate", r.artifacts.Generate)
	api.GET("/artifacts", r.artifacts.List)
	api.POST("/artifacts/:id/approve", r.artifacts.Approve)
	api.DELETE("/artifacts/:id", r.artifacts.Delete)
}
