package vefur

import (
	"fmt"
	"strings"
	"time"
)

// Paths of the site's static pages. Home is the empty path so that
// baseURL+path never produces a trailing slash.
const (
	RouteHome      = ""
	RouteWebDesign = "/vefsidugerd"
	RouteSEO       = "/leitarvelabestun"
	RouteAds       = "/auglysingar"
	RoutePricing   = "/verdskra"
	RouteAbout     = "/um-okkur"
	RouteBlog      = "/blogg"
)

// blogPrefix is the namespace individual posts live under.
const blogPrefix = RouteBlog + "/"

// RouteKind tells the router which handler serves a route.
type RouteKind int

const (
	// KindPage is a static page rendered from its metadata alone.
	KindPage RouteKind = iota
	// KindBlogIndex lists blog posts.
	KindBlogIndex
)

// Route is one static, publishable page of the site.
type Route struct {
	Path        string
	Kind        RouteKind
	Title       string
	Description string

	// Open Graph variants; empty falls back to Title and Description.
	OGTitle       string
	OGDescription string

	// Updated is the authored last-modified time. Zero means the sitemap
	// stamps the route with the time it was generated.
	Updated time.Time

	ChangeFreq string // sitemap changefreq, optional
	Priority   string // sitemap priority, optional
}

// Catalog is the ordered list of static routes. Its order is the sitemap order.
type Catalog []Route

// Paths returns the route paths in catalog order.
func (c Catalog) Paths() []string {
	paths := make([]string, len(c))
	for i, r := range c {
		paths[i] = r.Path
	}
	return paths
}

// Lookup finds the route with the given path.
func (c Catalog) Lookup(path string) (Route, bool) {
	for _, r := range c {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Validate reports authoring defects: duplicate paths, paths that are not
// rooted, trailing slashes, and paths inside the blog post namespace.
func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for i, r := range c {
		if _, dup := seen[r.Path]; dup {
			return fmt.Errorf("%w: duplicate route %q at index %d", ErrInvalidCatalog, r.Path, i)
		}
		seen[r.Path] = struct{}{}
		if r.Title == "" {
			return fmt.Errorf("%w: route %q has no title", ErrInvalidCatalog, r.Path)
		}
		if r.Path == RouteHome {
			continue
		}
		switch {
		case !strings.HasPrefix(r.Path, "/"):
			return fmt.Errorf("%w: route %q must start with /", ErrInvalidCatalog, r.Path)
		case strings.HasSuffix(r.Path, "/"):
			return fmt.Errorf("%w: route %q must not end with /", ErrInvalidCatalog, r.Path)
		case strings.ContainsAny(r.Path, "?#"):
			return fmt.Errorf("%w: route %q contains a query or fragment", ErrInvalidCatalog, r.Path)
		case strings.HasPrefix(r.Path, blogPrefix):
			return fmt.Errorf("%w: route %q collides with blog post URLs", ErrInvalidCatalog, r.Path)
		}
	}
	return nil
}

// DefaultCatalog returns the routes of the agency site.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Path:          RouteHome,
			Title:         "Vefsíðugerð, leitarvélabestun og auglýsingar",
			Description:   "Við hönnum hraðar vefsíður, komum þeim ofarlega á Google og stýrum auglýsingum fyrir íslensk fyrirtæki.",
			OGTitle:       "Vefsíður sem skila viðskiptum",
			OGDescription: "Vefhönnun, SEO og auglýsingar fyrir íslensk fyrirtæki.",
			ChangeFreq:    "weekly",
			Priority:      "1.0",
		},
		{
			Path:        RouteWebDesign,
			Title:       "Vefsíðugerð",
			Description: "Sérsniðnar vefsíður og vefverslanir sem eru hraðar, aðgengilegar og auðveldar í umsjón.",
			ChangeFreq:  "monthly",
			Priority:    "0.9",
		},
		{
			Path:          RouteSEO,
			Title:         "Leitarvélabestun (SEO)",
			Description:   "Tæknileg leitarvélabestun, efnisgerð og staðbundin leit svo viðskiptavinir finni þig á Google.",
			OGDescription: "Komdu fyrirtækinu þínu ofar í leitarniðurstöðum Google.",
			ChangeFreq:    "monthly",
			Priority:      "0.9",
		},
		{
			Path:        RouteAds,
			Title:       "Auglýsingar á Google og samfélagsmiðlum",
			Description: "Uppsetning og rekstur auglýsingaherferða á Google, Facebook og Instagram með mælanlegum árangri.",
			ChangeFreq:  "monthly",
			Priority:    "0.8",
		},
		{
			Path:        RoutePricing,
			Title:       "Verðskrá",
			Description: "Gagnsæ verðskrá fyrir vefsíðugerð, leitarvélabestun og auglýsingaumsjón.",
			OGTitle:     "Verðskrá – föst verð, engin smáa letur",
			ChangeFreq:  "monthly",
			Priority:    "0.8",
		},
		{
			Path:        RouteAbout,
			Title:       "Um okkur",
			Description: "Lítil stofa í Reykjavík sem smíðar vefi fyrir fyrirtæki um allt land.",
			ChangeFreq:  "yearly",
			Priority:    "0.5",
		},
		{
			Path:        RouteBlog,
			Kind:        KindBlogIndex,
			Title:       "Blogg",
			Description: "Greinar um vefhönnun, leitarvélabestun og stafræna markaðssetningu.",
			ChangeFreq:  "weekly",
			Priority:    "0.7",
		},
	}
}
