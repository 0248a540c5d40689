package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens/internal/api/handlers"
	"github.com/careerlens/careerlens/internal/api/middleware"
	"github.com/careerlens/careerlens/internal/metrics"
)

const (
	maxJSONBody      = 2 << 20
	maxMultipartBody = 12 << 20
)

type Deps struct {
	Analyze *handlers.AnalyzeHandler
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler

	// UploadDir is served under /uploads when images are stored locally.
	UploadDir string
	// AllowedOrigins restricts CORS; empty allows any origin.
	AllowedOrigins []string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(
		middleware.CrossOriginResource(),
		middleware.CORS(d.AllowedOrigins),
		metrics.GinMiddleware(),
	)

	r.GET("/api/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if d.UploadDir != "" {
		r.StaticFS("/uploads", gin.Dir(d.UploadDir, false))
	}

	api := r.Group("/api")
	api.Use(middleware.BodyLimit(maxJSONBody, maxMultipartBody))

	analyze := api.Group("/analyze")
	analyze.POST("/extract-pdf", d.Analyze.Extract)
	analyze.POST("/run", d.Analyze.Run)
	analyze.POST("/skill-gap", d.Analyze.SkillGap)
	analyze.POST("/career-roadmap", d.Analyze.CareerRoadmap)

	auth := api.Group("/auth")
	auth.POST("/login", d.Auth.Login)
	auth.POST("/signup", d.Auth.Signup)
	auth.POST("/google", d.Auth.Google)
	auth.POST("/get-profile", d.Profile.Get)
	auth.POST("/update-profile", d.Profile.Update)
	auth.POST("/delete-account", d.Profile.Delete)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Not found"})
	})
}
