package vefur

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SitemapProjector enumerates every publishable URL of the site.
// It holds no mutable state and is safe for concurrent use.
type SitemapProjector struct {
	baseURL string
	catalog Catalog
	source  PostSource
	policy  BlogPolicy
	now     func() time.Time
	log     Logger
}

// NewSitemapProjector builds a projector over catalog and source. A nil
// source yields static routes only; a nil now defaults to time.Now.
func NewSitemapProjector(baseURL string, catalog Catalog, source PostSource, policy BlogPolicy, now func() time.Time, log Logger) *SitemapProjector {
	if now == nil {
		now = time.Now
	}
	return &SitemapProjector{
		baseURL: NormalizeBaseURL(baseURL),
		catalog: catalog,
		source:  source,
		policy:  policy,
		now:     now,
		log:     log,
	}
}

// BuildSitemap returns one entry per catalog route, in catalog order,
// followed by one entry per post, in source order.
func (p *SitemapProjector) BuildSitemap(ctx context.Context) ([]SitemapEntry, error) {
	var posts []BlogPost
	if p.source != nil {
		var err error
		posts, err = p.source.ListPosts(ctx)
		if err != nil {
			if p.policy == BlogFail {
				return nil, fmt.Errorf("vefur: list posts for sitemap: %w", err)
			}
			if p.log != nil {
				p.log.Warnf("sitemap: omitting blog posts: %v", err)
			}
			posts = nil
		}
	}

	stamp := p.now().UTC().Format(time.RFC3339)
	entries := make([]SitemapEntry, 0, len(p.catalog)+len(posts))
	for _, r := range p.catalog {
		lastMod := stamp
		if !r.Updated.IsZero() {
			lastMod = r.Updated.UTC().Format(time.RFC3339)
		}
		entries = append(entries, SitemapEntry{
			URL:          p.baseURL + r.Path,
			LastModified: lastMod,
			ChangeFreq:   r.ChangeFreq,
			Priority:     r.Priority,
		})
	}
	for _, post := range posts {
		entries = append(entries, SitemapEntry{
			URL:          p.baseURL + blogPrefix + post.ID,
			LastModified: post.Date,
		})
	}
	return entries, nil
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// WriteSitemapXML encodes entries as a sitemaps.org 0.9 urlset.
func WriteSitemapXML(w io.Writer, entries []SitemapEntry) error {
	urls := make([]sitemapURL, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, sitemapURL{
			Loc:        e.URL,
			LastMod:    e.LastModified,
			ChangeFreq: e.ChangeFreq,
			Priority:   e.Priority,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(sitemap); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (a *App) handleSitemap(c echo.Context) error {
	entries, err := a.Sitemap.BuildSitemap(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemapXML(c.Response(), entries)
}
