// Package vefur serves the marketing site of a web design, SEO and
// advertising agency in Iceland.
//
// Every publishable URL is enumerated once: static pages in a Catalog and
// blog posts from a PostSource. The router, the page metadata emitter and
// the sitemap projector all iterate the same Catalog with the same base URL,
// so rendered pages and /sitemap.xml cannot drift apart.
//
// Users provide templ components via the ViewFuncs struct; the views
// package ships a default set.
package vefur

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ViewFuncs holds the templ components the handlers render.
type ViewFuncs struct {
	Page           func(meta PageMeta, route Route) templ.Component
	BlogIndex      func(meta PageMeta, posts []BlogPost, activeTag string, tags []string) templ.Component
	Post           func(meta PageMeta, post BlogPost, related []BlogPost) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []BlogPost, message string, csrfToken string) templ.Component
	AdminForm      func(post BlogPost, csrfToken string) templ.Component
	AdminImages    func(images []Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App wires together the catalog, post source, cache, metadata emitter,
// sitemap projector, handlers and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Catalog Catalog
	Store   *Store // nil when posts come from another PostSource
	Cache   *PostCache
	Meta    *MetadataEmitter
	Sitemap *SitemapProjector
	Views   ViewFuncs

	source       PostSource
	baseURL      *url.URL
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	now          func() time.Time
	opened       bool
	routed       bool
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Catalog:   DefaultCatalog(),
		Views:     views,
		staticDir: "public",
		now:       time.Now,
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(parseLogLevel(cfg.LogLevel))

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open validates the catalog and base URL, then opens the post source and
// builds the metadata emitter and sitemap projector. It does not need
// admin credentials, so build steps can call it to render the sitemap.
func (a *App) Open() error {
	if a.opened {
		return nil
	}
	if err := a.Catalog.Validate(); err != nil {
		return err
	}
	base, err := absoluteURL(a.Config.URL)
	if err != nil {
		return err
	}
	a.baseURL = base

	if a.source == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("vefur: init store: %w", err)
		}
		a.Store = store
		a.source = store
	}

	a.Cache = NewPostCache(a.source, a.Config.PostCacheTTL)
	a.Meta = NewMetadataEmitter(a.Config, a.Catalog)
	a.Sitemap = NewSitemapProjector(a.Config.URL, a.Catalog, a.Cache, a.Config.BlogPolicy, a.now, a.Echo.Logger)
	a.opened = true
	return nil
}

// Handler opens the app if needed, installs middleware and routes, and
// returns the HTTP handler.
func (a *App) Handler() (http.Handler, error) {
	if err := a.Open(); err != nil {
		return nil, err
	}
	if err := a.Config.validate(a.Store != nil); err != nil {
		return nil, err
	}
	if !a.routed {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
		a.setupMiddleware()
		a.setupRoutes()
		for _, fn := range a.customRoutes {
			fn(a)
		}
		a.routed = true
	}
	return a.Echo, nil
}

// Start serves HTTP on Config.Addr until the server is shut down.
func (a *App) Start() error {
	if _, err := a.Handler(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("serving %d routes for %s on %s", len(a.Catalog), a.Config.URL, a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// InvalidatePosts drops cached posts; content watchers call it on change.
func (a *App) InvalidatePosts() {
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
}

// echoPath maps a catalog path to the router path ("" is served at "/").
func echoPath(route string) string {
	if route == RouteHome {
		return "/"
	}
	return route
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	// One handler per catalog route: the catalog is the only list of pages.
	for _, r := range a.Catalog {
		switch r.Kind {
		case KindBlogIndex:
			e.GET(echoPath(r.Path), a.handleBlogIndex(r))
		default:
			e.GET(echoPath(r.Path), a.handlePage(r))
		}
	}
	e.GET(RouteBlog+"/feed.xml", a.handleFeed)
	e.GET(blogPrefix+":id", a.handlePost)

	// The editor only exists for the built-in SQLite store.
	if a.Store != nil {
		e.GET("/admin", a.handleAdmin)
		e.POST("/admin/login", a.handleAdminLogin)
		e.POST("/admin/logout", handleAdminLogout)
		e.GET("/admin/post/:id", a.handleAdminPost)
		e.POST("/admin/save", a.handleAdminSave)
		e.DELETE("/admin/post/:id", a.handleAdminDelete)
		e.GET("/admin/images", a.handleImageList)
		e.POST("/admin/images/upload", a.handleImageUpload)
		e.DELETE("/admin/images/:filename", a.handleImageDelete)
	}
}

// Close releases the store and background workers. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func parseLogLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
