// Package views is the default look of the site: templ components backed
// by html/template files embedded in the binary.
package views

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/vefstofa/vefur"
	"github.com/vefstofa/vefur/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

// noRoute marks pages outside the catalog so no nav item is current.
const noRoute = "-"

type navItem struct {
	Path  string
	Label string
}

// pageData is what every template receives.
type pageData struct {
	Site      vefur.SiteConfig
	Meta      vefur.PageMeta
	Nav       []navItem
	Current   string
	JSONLD    template.JS
	Year      int
	Body      template.HTML
	Route     vefur.Route
	Posts     []vefur.BlogPost
	Tags      []string
	ActiveTag string
	Post      vefur.BlogPost
	Related   []vefur.BlogPost
	Images    []vefur.Image
	Message   string
	CSRF      string
	ShowError bool
}

// Views renders the default templates for one site configuration.
type Views struct {
	cfg  vefur.SiteConfig
	nav  []navItem
	tmpl *template.Template
}

// New parses the embedded templates. The navigation is built from catalog
// so every catalog page is linked and nothing else is.
func New(cfg vefur.SiteConfig, catalog vefur.Catalog) (*Views, error) {
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"markdown":  renderMarkdown,
		"date":      FormatDate,
		"href":      href,
		"joinTags":  vefur.JoinTags,
		"uploadURL": func(name string) string { return "/public/uploads/" + name },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	nav := make([]navItem, 0, len(catalog))
	for _, r := range catalog {
		label := r.Title
		if r.Path == vefur.RouteHome {
			label = "Forsíða"
		}
		nav = append(nav, navItem{Path: r.Path, Label: shortLabel(label)})
	}
	return &Views{cfg: cfg, nav: nav, tmpl: tmpl}, nil
}

// Funcs returns the ViewFuncs the App renders with.
func (v *Views) Funcs() vefur.ViewFuncs {
	return vefur.ViewFuncs{
		Page:           v.Page,
		BlogIndex:      v.BlogIndex,
		Post:           v.Post,
		AdminLogin:     v.AdminLogin,
		AdminDashboard: v.AdminDashboard,
		AdminForm:      v.AdminForm,
		AdminImages:    v.AdminImages,
		NotFound:       v.NotFound,
		ServerError:    v.ServerError,
	}
}

// Page renders a static catalog page. Routes without a dedicated template
// fall back to a generic title and description page.
func (v *Views) Page(meta vefur.PageMeta, route vefur.Route) templ.Component {
	name := bodyTemplate(route.Path)
	if v.tmpl.Lookup(name) == nil {
		name = "page-generic"
	}
	d := v.data(meta, route.Path)
	d.Route = route
	d.JSONLD = template.JS(vefur.OrganizationJsonLD(v.cfg))
	return v.layout(name, d)
}

// BlogIndex renders the post listing.
func (v *Views) BlogIndex(meta vefur.PageMeta, posts []vefur.BlogPost, activeTag string, tags []string) templ.Component {
	d := v.data(meta, vefur.RouteBlog)
	d.Posts = posts
	d.Tags = tags
	d.ActiveTag = activeTag
	return v.layout("blog-index", d)
}

// Post renders one blog post with related posts.
func (v *Views) Post(meta vefur.PageMeta, post vefur.BlogPost, related []vefur.BlogPost) templ.Component {
	d := v.data(meta, vefur.RouteBlog)
	d.Post = post
	d.Related = related
	d.JSONLD = template.JS(vefur.BlogPostingJsonLD(post, v.cfg))
	return v.layout("blog-post", d)
}

// NotFound renders the 404 page.
func (v *Views) NotFound() templ.Component {
	return v.layout("not-found", v.data(v.plainMeta("Síða fannst ekki"), noRoute))
}

// ServerError renders the 500 page.
func (v *Views) ServerError() templ.Component {
	return v.layout("server-error", v.data(v.plainMeta("Villa kom upp"), noRoute))
}

// AdminLogin renders the login form.
func (v *Views) AdminLogin(showError bool, csrfToken string) templ.Component {
	d := v.data(v.plainMeta("Innskráning"), noRoute)
	d.ShowError = showError
	d.CSRF = csrfToken
	return v.layout("admin-login", d)
}

// AdminDashboard renders the post list and an empty editor.
func (v *Views) AdminDashboard(posts []vefur.BlogPost, message string, csrfToken string) templ.Component {
	d := v.data(v.plainMeta("Stjórnborð"), noRoute)
	d.Posts = posts
	d.Message = message
	d.CSRF = csrfToken
	return v.layout("admin-dashboard", d)
}

// AdminForm renders the editor for one post as a fragment.
func (v *Views) AdminForm(post vefur.BlogPost, csrfToken string) templ.Component {
	d := v.data(vefur.PageMeta{}, noRoute)
	d.Post = post
	d.CSRF = csrfToken
	return v.fragment("admin-form", d)
}

// AdminImages renders the uploaded image list as a fragment.
func (v *Views) AdminImages(images []vefur.Image, csrfToken string) templ.Component {
	d := v.data(vefur.PageMeta{}, noRoute)
	d.Images = images
	d.CSRF = csrfToken
	return v.fragment("admin-images", d)
}

func (v *Views) data(meta vefur.PageMeta, current string) *pageData {
	return &pageData{
		Site:    v.cfg,
		Meta:    meta,
		Nav:     v.nav,
		Current: current,
		Year:    time.Now().Year(),
	}
}

// plainMeta is the metadata of pages outside the catalog; they are not indexed.
func (v *Views) plainMeta(title string) vefur.PageMeta {
	return vefur.PageMeta{Title: title + " | " + v.cfg.Name}
}

// layout renders the body template, then wraps it in the page layout.
func (v *Views) layout(body string, d *pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := v.tmpl.ExecuteTemplate(&buf, body, d); err != nil {
			return err
		}
		d.Body = template.HTML(buf.String())
		return v.tmpl.ExecuteTemplate(w, "layout", d)
	})
}

func (v *Views) fragment(name string, d *pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return v.tmpl.ExecuteTemplate(w, name, d)
	})
}

// bodyTemplate names the template of a route: "" -> "page-home",
// "/um-okkur" -> "page-um-okkur".
func bodyTemplate(path string) string {
	if path == vefur.RouteHome {
		return "page-home"
	}
	return "page-" + strings.ReplaceAll(strings.Trim(path, "/"), "/", "-")
}

// href maps a catalog path to a link target.
func href(path string) string {
	if path == vefur.RouteHome {
		return "/"
	}
	return path
}

// shortLabel keeps navigation labels to the part before a parenthesis or "á".
func shortLabel(title string) string {
	if i := strings.Index(title, " ("); i > 0 {
		title = title[:i]
	}
	if i := strings.Index(title, " á "); i > 0 {
		title = title[:i]
	}
	if i := strings.Index(title, ","); i > 0 {
		title = title[:i]
	}
	return title
}

func renderMarkdown(s string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Markdown(s).Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var months = [...]string{
	"janúar", "febrúar", "mars", "apríl", "maí", "júní",
	"júlí", "ágúst", "september", "október", "nóvember", "desember",
}

// FormatDate renders a post date the Icelandic way: "1. mars 2024".
// Unparseable dates are returned unchanged.
func FormatDate(s string) string {
	t, ok := vefur.ParsePostDate(s)
	if !ok {
		return s
	}
	return t.Format("2") + ". " + months[t.Month()-1] + " " + t.Format("2006")
}
