package vefur

import (
	"fmt"
	"strings"
)

// MetadataEmitter builds the <head> metadata of every page from the catalog.
type MetadataEmitter struct {
	baseURL  string
	siteName string
	locale   string
	catalog  Catalog
}

// NewMetadataEmitter returns an emitter for cfg's base URL over catalog.
func NewMetadataEmitter(cfg SiteConfig, catalog Catalog) *MetadataEmitter {
	return &MetadataEmitter{
		baseURL:  NormalizeBaseURL(cfg.URL),
		siteName: cfg.Name,
		locale:   cfg.Locale,
		catalog:  catalog,
	}
}

// MetadataFor returns the metadata of a catalog route. Paths outside the
// catalog return ErrUnknownRoute.
func (m *MetadataEmitter) MetadataFor(route string) (PageMeta, error) {
	r, ok := m.catalog.Lookup(route)
	if !ok {
		return PageMeta{}, fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	canonical := m.baseURL + r.Path
	title := m.pageTitle(r.Title, r.Path == RouteHome)
	return PageMeta{
		Title:        title,
		Description:  r.Description,
		CanonicalURL: canonical,
		OpenGraph: OpenGraph{
			URL:         canonical,
			Title:       firstNonEmpty(r.OGTitle, title),
			Description: firstNonEmpty(r.OGDescription, r.Description),
			Type:        "website",
			Locale:      m.locale,
			SiteName:    m.siteName,
		},
	}, nil
}

// PostMetadata returns the metadata of a blog post page.
func (m *MetadataEmitter) PostMetadata(post BlogPost) PageMeta {
	canonical := m.baseURL + post.Link()
	title := m.pageTitle(post.Title, false)
	og := OpenGraph{
		URL:         canonical,
		Title:       post.Title,
		Description: post.Summary,
		Type:        "article",
		Locale:      m.locale,
		SiteName:    m.siteName,
	}
	if post.Image != "" {
		og.Image = m.baseURL + "/public/" + uploadsSubdir + "/" + post.Image
	}
	return PageMeta{
		Title:        title,
		Description:  post.Summary,
		CanonicalURL: canonical,
		OpenGraph:    og,
	}
}

// pageTitle appends the site name to inner pages. The home page title
// leads with the site name instead.
func (m *MetadataEmitter) pageTitle(title string, home bool) string {
	switch {
	case m.siteName == "" || strings.Contains(title, m.siteName):
		return title
	case home:
		return m.siteName + " | " + title
	default:
		return title + " | " + m.siteName
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
