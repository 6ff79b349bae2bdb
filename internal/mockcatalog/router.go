package mockcatalog

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// Server bundles the store with the token settings shared by handlers.
type Server struct {
	store     *Store
	jwtSecret string
	tokenTTL  time.Duration
}

// NewServer returns a Server over a freshly seeded store.
func NewServer(jwtSecret string, tokenTTL time.Duration) *Server {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Server{store: NewStore(), jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// NewRouter builds the Echo instance with the full catalog contract
// registered under /api.
func (s *Server) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	// Per-server registry so several servers can coexist in one process
	// (integration tests) without duplicate metric registration.
	reg := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "mockcatalog",
		Registerer: reg,
	}))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: reg,
	}))

	api := e.Group("/api")

	// --- Auth ---
	api.POST("/auth/signin", s.Signin)
	api.POST("/auth/signup", s.Signup)

	// --- Public catalog ---
	public := api.Group("/public")
	public.GET("/publications", s.ListPublicPublications)
	public.GET("/publications/search", s.SearchPublications)
	public.GET("/publications/:id", s.GetPublication)
	public.GET("/researchers", s.ListResearchers)
	public.GET("/researchers/search", s.SearchResearchers)
	public.GET("/researchers/:id", s.GetResearcher)
	public.GET("/actualites", s.ListActiveActualites)
	public.GET("/highlights", s.ListActiveHighlights)
	public.GET("/home-content", s.ListActiveHomeContents)

	auth := Auth(s.jwtSecret)
	anyRole := RBAC(domain.RoleUtilisateur, domain.RoleModerateur, domain.RoleAdmin)
	moderator := RBAC(domain.RoleModerateur, domain.RoleAdmin)
	admin := RBAC(domain.RoleAdmin)

	// --- Authenticated catalog (any role) ---
	priv := api.Group("", auth, anyRole)
	priv.GET("/publications", s.ListPublications)
	priv.GET("/publications/search", s.SearchPublications)
	priv.GET("/publications/:id", s.GetPublication)
	priv.GET("/publications/download/:id", s.DownloadPublication)
	priv.GET("/researchers", s.ListResearchers)
	priv.GET("/researchers/search", s.SearchResearchers)
	priv.GET("/researchers/by-user/:userId", s.GetResearcherByUser)
	priv.GET("/researchers/:id", s.GetResearcher)
	priv.GET("/domains", s.ListDomains)
	priv.GET("/domains/roots", s.ListDomainRoots)
	priv.GET("/domains/search", s.SearchDomains)
	priv.GET("/domains/:id", s.GetDomain)
	priv.GET("/actualites", s.ListActualites)
	priv.GET("/actualites/:id", s.GetActualite)

	// --- Moderator / admin mutations ---
	mod := api.Group("", auth, moderator)
	mod.POST("/publications", s.CreatePublication)
	mod.PUT("/publications/:id", s.UpdatePublication)
	mod.DELETE("/publications/:id", s.DeletePublication)
	mod.POST("/researchers", s.CreateResearcher)
	mod.PUT("/researchers/:id", s.UpdateResearcher)
	mod.DELETE("/researchers/:id", s.DeleteResearcher)
	mod.POST("/domains", s.CreateDomain)
	mod.PUT("/domains/:id", s.UpdateDomain)
	mod.DELETE("/domains/:id", s.DeleteDomain)
	mod.POST("/actualites", s.CreateActualite)
	mod.PUT("/actualites/:id", s.UpdateActualite)
	mod.DELETE("/actualites/:id", s.DeleteActualite)
	mod.GET("/moderator/highlights", s.ListHighlights)
	mod.GET("/moderator/highlights/:id", s.GetHighlight)
	mod.POST("/moderator/highlights", s.CreateHighlight)
	mod.PUT("/moderator/highlights/:id", s.UpdateHighlight)
	mod.DELETE("/moderator/highlights/:id", s.DeleteHighlight)
	mod.GET("/moderator/home-content", s.ListHomeContents)
	mod.POST("/moderator/home-content", s.CreateHomeContent)
	mod.PUT("/moderator/home-content/:id", s.UpdateHomeContent)
	mod.PATCH("/moderator/home-content/:id/valeur", s.UpdateHomeContentValeur)
	mod.DELETE("/moderator/home-content/:id", s.DeleteHomeContent)

	// --- Admin ---
	adm := api.Group("", auth, admin)
	adm.GET("/users", s.ListUsers)
	adm.POST("/users", s.CreateUser)
	adm.GET("/users/:id", s.GetUser)
	adm.PUT("/users/:id/role", s.UpdateUserRole)
	adm.DELETE("/users/:id", s.DeleteUser)
	adm.GET("/admin/audit", s.ListAudit)
	adm.GET("/admin/audit/filter", s.FilterAudit)

	return e
}
