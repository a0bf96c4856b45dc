package main

import (
	"github.com/vefstofa/vefur"
	"github.com/vefstofa/vefur/content"
	"github.com/vefstofa/vefur/views"
)

// newApp builds the App for s. With a content directory the posts come
// from Markdown files; otherwise from the SQLite database.
func newApp(s *settings) (*vefur.App, *content.Dir, error) {
	catalog := vefur.DefaultCatalog()
	v, err := views.New(withDefaults(s.Site), catalog)
	if err != nil {
		return nil, nil, err
	}

	opts := []vefur.Option{
		vefur.WithCatalog(catalog),
		vefur.WithStaticDir(s.StaticDir),
	}
	var dir *content.Dir
	if s.ContentDir != "" {
		dir = content.NewDir(s.ContentDir)
		opts = append(opts, vefur.WithPostSource(dir))
	}
	return vefur.New(s.Site, v.Funcs(), opts...), dir, nil
}

// withDefaults fills the fields views read before vefur.New normalizes them.
func withDefaults(cfg vefur.SiteConfig) vefur.SiteConfig {
	if cfg.Locale == "" {
		cfg.Locale = "is_IS"
	}
	cfg.URL = vefur.NormalizeBaseURL(cfg.URL)
	return cfg
}
