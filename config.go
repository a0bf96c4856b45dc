package vefur

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Business name (default "Vefstofa")
	URL         string // Base URL, no trailing slash (default "http://localhost:3000")
	Description string // Site description for RSS and JSON-LD
	Locale      string // og:locale (default "is_IS")
	Email       string // Contact address for JSON-LD
	Phone       string // Contact phone for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/vefur.db")
	LogLevel     string // debug, info, warn, error (default "info")

	AdminPassword string // Required with the SQLite store: admin password, plain or a bcrypt hash
	SessionSecret string // Required with the SQLite store: session signing secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
	BlogPolicy   BlogPolicy    // Sitemap behavior when the post source fails (default static-only)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Vefstofa"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = NormalizeBaseURL(c.URL)
	if c.Locale == "" {
		c.Locale = "is_IS"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/vefur.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// validate checks the settings the server cannot run without. Admin
// credentials are only required when the editor is served.
func (c *SiteConfig) validate(admin bool) error {
	if admin && c.AdminPassword == "" {
		return fmt.Errorf("vefur: AdminPassword is required")
	}
	if admin && c.SessionSecret == "" {
		return fmt.Errorf("vefur: SessionSecret is required")
	}
	_, err := absoluteURL(c.URL)
	return err
}

func absoluteURL(base string) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("vefur: parse site URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("vefur: site URL %q must be absolute", base)
	}
	return u, nil
}

// NormalizeBaseURL strips trailing slashes so base+route never doubles up.
func NormalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets and uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithPostSource replaces the SQLite store as the source of blog posts.
// The admin editor is disabled when the source is not the built-in store.
func WithPostSource(src PostSource) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithCatalog replaces DefaultCatalog.
func WithCatalog(c Catalog) Option {
	return func(a *App) {
		a.Catalog = c
	}
}

// WithClock sets the time source used to stamp static sitemap entries.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
