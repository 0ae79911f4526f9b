// Package server assembles the gin engine and wires every handler onto its
// route.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	authhandler "pagecraft/backend/internal/auth/handler"
	domainshandler "pagecraft/backend/internal/domains/handler"
	mediahandler "pagecraft/backend/internal/media/handler"
	pageshandler "pagecraft/backend/internal/pages/handler"
	sectionshandler "pagecraft/backend/internal/sections/handler"
	seohandler "pagecraft/backend/internal/seo/handler"
	"pagecraft/backend/internal/server/middleware"
	userhandler "pagecraft/backend/internal/user/handler"
)

// Pinger reports store liveness for the health endpoint (e.g. *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps holds the handlers and shared pieces the router wires together.
type Deps struct {
	Auth     *authhandler.Handler
	Users    *userhandler.Handler
	Domains  *domainshandler.Handler
	Pages    *pageshandler.Handler
	Sections *sectionshandler.Handler
	Media    *mediahandler.Handler
	SEO      *seohandler.Handler

	// Resolver authenticates sessions for the protected route group.
	Resolver middleware.IdentityResolver
	// Pinger backs /healthz. If nil, the store check is skipped.
	Pinger Pinger
	// UploadDir is served statically at /uploads.
	UploadDir string
	// ServiceName labels spans emitted by the HTTP middleware.
	ServiceName string
}

// New builds the engine with all routes registered.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.ClientIP())
	if deps.ServiceName != "" {
		r.Use(otelgin.Middleware(deps.ServiceName))
	}

	r.GET("/healthz", func(c *gin.Context) {
		if deps.Pinger != nil {
			if err := deps.Pinger.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.UploadDir != "" {
		r.Static("/uploads", deps.UploadDir)
	}

	v1 := r.Group("/api/v1")

	// Public surface: account entry points and the gallery.
	v1.POST("/auth/register", deps.Auth.Register)
	v1.POST("/auth/login", deps.Auth.Login)
	v1.GET("/gallery/:domain", deps.Media.Gallery)

	authed := v1.Group("", middleware.RequireSession(deps.Resolver))
	{
		authed.POST("/auth/logout", deps.Auth.Logout)
		authed.GET("/auth/me", deps.Auth.Me)
		authed.POST("/auth/change-password", deps.Auth.ChangePassword)

		admin := authed.Group("/users", middleware.RequireAdmin())
		{
			admin.GET("", deps.Users.List)
			admin.GET("/:id", deps.Users.Get)
			admin.PUT("/:id", deps.Users.Update)
			admin.GET("/:id/audit", deps.Users.Audit)
		}

		authed.GET("/domains", deps.Domains.List)
		authed.POST("/domains", deps.Domains.Create)
		authed.GET("/domains/:id", deps.Domains.Get)
		authed.PUT("/domains/:id", deps.Domains.Update)
		authed.DELETE("/domains/:id", deps.Domains.Delete)

		authed.GET("/domains/:id/pages", deps.Pages.ListByDomain)
		authed.POST("/domains/:id/pages", deps.Pages.Create)
		authed.GET("/pages/:id", deps.Pages.Get)
		authed.PUT("/pages/:id", deps.Pages.Update)
		authed.DELETE("/pages/:id", deps.Pages.Delete)

		authed.GET("/pages/:id/sections", deps.Sections.ListByPage)
		authed.POST("/pages/:id/sections", deps.Sections.Create)
		authed.GET("/sections/:id", deps.Sections.Get)
		authed.PUT("/sections/:id", deps.Sections.Update)
		authed.DELETE("/sections/:id", deps.Sections.Delete)

		authed.GET("/sections/:id/media", deps.Media.ListBySection)
		authed.POST("/sections/:id/media", deps.Media.Create)
		authed.POST("/media/upload", deps.Media.Upload)
		authed.GET("/media/mine", deps.Media.Mine)
		authed.GET("/media/:id", deps.Media.Get)
		authed.PUT("/media/:id", deps.Media.Update)
		authed.DELETE("/media/:id", deps.Media.Delete)

		authed.GET("/domains/:id/seo", deps.SEO.Get)
		authed.PUT("/domains/:id/seo", deps.SEO.Put)
		authed.DELETE("/domains/:id/seo", deps.SEO.Delete)
	}

	return r
}
