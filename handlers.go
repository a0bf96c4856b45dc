package vefur

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handlePage(r Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		meta, err := a.Meta.MetadataFor(r.Path)
		if err != nil {
			return err
		}
		return Render(c, a.Views.Page(meta, r))
	}
}

func (a *App) handleBlogIndex(r Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		meta, err := a.Meta.MetadataFor(r.Path)
		if err != nil {
			return err
		}
		tag := c.QueryParam("tag")
		posts, err := a.Cache.ListPostsByTag(ctx, tag)
		if err != nil {
			return err
		}
		tags, err := a.Cache.ListTags(ctx)
		if err != nil {
			return err
		}
		if tag != "" {
			// Filtered listings are not separate documents.
			meta.Title = tag + " | " + meta.Title
		}
		return Render(c, a.Views.BlogIndex(meta, posts, tag, tags))
	}
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := a.Cache.GetPost(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(a.Meta.PostMetadata(post), post, FilterRelatedPosts(post, posts)))
}

// handleRobots generates robots.txt pointing crawlers at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if (ok && he.Code == http.StatusNotFound) || errors.Is(err, ErrUnknownRoute) {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
