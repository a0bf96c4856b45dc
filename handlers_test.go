package vefur_test

import (
	"context"
	"encoding/xml"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vefstofa/vefur"
	"github.com/vefstofa/vefur/views"
)

const testBase = "https://vefstofa.is"

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) vefur.SiteConfig {
	return vefur.SiteConfig{
		Name:          "Vefstofa",
		URL:           testBase + "/",
		Locale:        "is_IS",
		AdminPassword: "leyndo",
		SessionSecret: "prufuleyndarmal",
		DatabasePath:  filepath.Join(t.TempDir(), "vefur.db"),
		LogLevel:      "off",
	}
}

func newTestApp(t *testing.T, cfg vefur.SiteConfig, opts ...vefur.Option) *vefur.App {
	t.Helper()
	v, err := views.New(cfg, vefur.DefaultCatalog())
	require.NoError(t, err)
	opts = append([]vefur.Option{vefur.WithClock(func() time.Time { return testNow }), vefur.WithStaticDir(t.TempDir())}, opts...)
	app := vefur.New(cfg, v.Funcs(), opts...)
	t.Cleanup(func() { app.Close() })
	return app
}

func testPosts() vefur.StaticPosts {
	return vefur.StaticPosts{
		{ID: "seo-rad", Title: "Fimm SEO ráð", Date: "2024-05-01", Tags: []string{"seo"}, Summary: "Ráð.", Content: "Texti **feitur**.", Published: true},
		{ID: "hradi", Title: "Hraði vefsíðna", Date: "2024-04-01", Tags: []string{"seo", "vefir"}, Summary: "Hraði.", Content: "Texti.", Published: true},
	}
}

// client keeps cookies between requests to the app's handler.
// Requests are sent to the host of the app's base URL.
type client struct {
	t       *testing.T
	h       http.Handler
	host    string
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, app *vefur.App) *client {
	h, err := app.Handler()
	require.NoError(t, err)
	u, err := url.Parse(app.Config.URL)
	require.NoError(t, err)
	return &client{t: t, h: h, host: u.Host, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if req.Host == "example.com" {
		req.Host = c.host
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	if ck, ok := c.cookies["_csrf"]; ok {
		form.Set("_csrf", ck.Value)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

type urlset struct {
	URLs []struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod"`
	} `xml:"url"`
}

func fetchSitemap(t *testing.T, c *client) urlset {
	t.Helper()
	rec := c.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	var set urlset
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	return set
}

func TestSitemapEndpoint(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t), vefur.WithPostSource(testPosts())))

	set := fetchSitemap(t, c)
	catalog := vefur.DefaultCatalog()
	require.Len(t, set.URLs, len(catalog)+2)
	for i, r := range catalog {
		assert.Equal(t, testBase+r.Path, set.URLs[i].Loc)
		assert.Equal(t, "2024-06-01T12:00:00Z", set.URLs[i].LastMod)
	}
	assert.Equal(t, testBase+"/blogg/seo-rad", set.URLs[len(catalog)].Loc)
	assert.Equal(t, "2024-05-01", set.URLs[len(catalog)].LastMod)
	assert.Equal(t, testBase+"/blogg/hradi", set.URLs[len(catalog)+1].Loc)
}

// Every sitemap URL must be served, and the page must declare that URL as
// its canonical.
func TestSitemapURLsAreServedAndCanonical(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t), vefur.WithPostSource(testPosts())))

	for _, u := range fetchSitemap(t, c).URLs {
		path := strings.TrimPrefix(u.Loc, testBase)
		if path == "" {
			path = "/"
		}
		rec := c.get(path)
		if !assert.Equal(t, http.StatusOK, rec.Code, "GET %s", path) {
			continue
		}
		assert.Contains(t, rec.Body.String(), `<link rel="canonical" href="`+u.Loc+`">`, "GET %s", path)
	}
}

func TestSitemapSourceFailure(t *testing.T) {
	failing := vefur.PostSourceFunc(func(context.Context) ([]vefur.BlogPost, error) {
		return nil, errors.New("gagnagrunnur niðri")
	})

	t.Run("static-only", func(t *testing.T) {
		c := newClient(t, newTestApp(t, testConfig(t), vefur.WithPostSource(failing)))
		set := fetchSitemap(t, c)
		assert.Len(t, set.URLs, len(vefur.DefaultCatalog()))
	})

	t.Run("fail", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.BlogPolicy = vefur.BlogFail
		c := newClient(t, newTestApp(t, cfg, vefur.WithPostSource(failing)))
		rec := c.get("/sitemap.xml")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Villa kom upp")
	})
}

func TestRobots(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t), vefur.WithPostSource(testPosts())))

	rec := c.get("/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: "+testBase+"/sitemap.xml")
	assert.Contains(t, rec.Body.String(), "Disallow: /admin")
}

func TestTrailingSlashRedirects(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t), vefur.WithPostSource(testPosts())))

	rec := c.get("/verdskra/")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/verdskra", rec.Header().Get("Location"))

	rec = c.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFound(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t), vefur.WithPostSource(testPosts())))

	for _, path := range []string{"/ekki-til", "/blogg/vantar"} {
		rec := c.get(path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Síða fannst ekki", path)
	}
}

func TestBlogPages(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t), vefur.WithPostSource(testPosts())))

	rec := c.get("/blogg?tag=vefir")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hraði vefsíðna")
	assert.NotContains(t, rec.Body.String(), "Fimm SEO ráð")

	rec = c.get("/blogg/seo-rad")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>feitur</strong>")
	assert.Contains(t, body, `<meta property="og:type" content="article">`)
	assert.Contains(t, body, "Hraði vefsíðna", "related post is linked")
}

func TestFeed(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t), vefur.WithPostSource(testPosts())))

	rec := c.get("/blogg/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, xml.Header), "feed starts with the XML declaration")
	assert.Contains(t, body, "<link>"+testBase+"/blogg/seo-rad</link>")
	assert.Contains(t, body, "<pubDate>Wed, 01 May 2024 00:00:00 +0000</pubDate>")
}

func TestAdminDisabledForExternalSource(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t), vefur.WithPostSource(testPosts())))

	assert.Equal(t, http.StatusNotFound, c.get("/admin").Code)
}

func TestHandlerRequiresCredentialsForEditor(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminPassword = ""
	app := newTestApp(t, cfg)

	_, err := app.Handler()
	assert.Error(t, err)
}

func TestHandlerWithoutEditorNeedsNoCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminPassword = ""
	cfg.SessionSecret = ""
	c := newClient(t, newTestApp(t, cfg, vefur.WithPostSource(testPosts())))

	assert.Equal(t, http.StatusOK, c.get("/verdskra").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/admin").Code)
}

func TestCanonicalHost(t *testing.T) {
	cfg := testConfig(t)
	cfg.URL = "https://www.vefstofa.is"
	c := newClient(t, newTestApp(t, cfg, vefur.WithPostSource(testPosts())))

	for _, path := range []string{"/", "/verdskra", "/blogg/seo-rad", "/sitemap.xml"} {
		assert.Equal(t, http.StatusOK, c.get(path).Code, "GET %s on the configured host", path)
	}
	set := fetchSitemap(t, c)
	assert.Equal(t, "https://www.vefstofa.is/verdskra", set.URLs[4].Loc)

	req := httptest.NewRequest(http.MethodGet, "/verdskra?a=1", nil)
	req.Host = "vefstofa.is"
	rec := c.do(req)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://www.vefstofa.is/verdskra?a=1", rec.Header().Get("Location"))
}

func TestAdminPublishesToSitemap(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t)))

	rec := c.get("/admin")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, c.cookies, "_csrf")

	rec = c.postForm("/admin/login", url.Values{"password": {"rangt"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.postForm("/admin/login", url.Values{"password": {"leyndo"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	before := len(fetchSitemap(t, c).URLs)

	rec = c.postForm("/admin/save", url.Values{
		"title":     {"Ný færsla um auglýsingar"},
		"date":      {"2024-05-20"},
		"tags":      {"auglysingar"},
		"content":   {"Halló"},
		"published": {"on"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	set := fetchSitemap(t, c)
	require.Len(t, set.URLs, before+1)
	last := set.URLs[len(set.URLs)-1]
	assert.Equal(t, testBase+"/blogg/ny-faersla-um-auglysingar", last.Loc)
	assert.Equal(t, "2024-05-20", last.LastMod)

	assert.Equal(t, http.StatusOK, c.get("/blogg/ny-faersla-um-auglysingar").Code)
}

func TestAdminRejectsMissingCSRF(t *testing.T) {
	c := newClient(t, newTestApp(t, testConfig(t)))

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader("password=leyndo"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusForbidden, c.do(req).Code)
}
