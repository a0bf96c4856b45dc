package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vefstofa/vefur"
)

// fileConfig mirrors vefur.yaml. Every key can be overridden with an
// environment variable: site.url -> VEFUR_SITE_URL.
type fileConfig struct {
	Site struct {
		Name        string `mapstructure:"name"`
		URL         string `mapstructure:"url"`
		Description string `mapstructure:"description"`
		Locale      string `mapstructure:"locale"`
		Email       string `mapstructure:"email"`
		Phone       string `mapstructure:"phone"`
	} `mapstructure:"site"`
	Server struct {
		Addr         string `mapstructure:"addr"`
		StaticDir    string `mapstructure:"static_dir"`
		CookieSecure bool   `mapstructure:"cookie_secure"`
	} `mapstructure:"server"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Content struct {
		Dir   string `mapstructure:"dir"`
		Watch bool   `mapstructure:"watch"`
	} `mapstructure:"content"`
	Admin struct {
		Password      string `mapstructure:"password"`
		SessionSecret string `mapstructure:"session_secret"`
	} `mapstructure:"admin"`
	Cache struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`
	Sitemap struct {
		BlogPolicy string `mapstructure:"blog_policy"`
	} `mapstructure:"sitemap"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// settings is the resolved configuration of one command run.
type settings struct {
	Site       vefur.SiteConfig
	StaticDir  string
	ContentDir string
	Watch      bool
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("site.name", "Vefstofa")
	v.SetDefault("site.url", "http://localhost:3000")
	v.SetDefault("site.description", "Vefsíðugerð, leitarvélabestun og auglýsingar fyrir íslensk fyrirtæki.")
	v.SetDefault("site.locale", "is_IS")
	v.SetDefault("site.email", "")
	v.SetDefault("site.phone", "")
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("server.cookie_secure", false)
	v.SetDefault("database.path", "data/vefur.db")
	v.SetDefault("content.dir", "")
	v.SetDefault("content.watch", true)
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.session_secret", "")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("sitemap.blog_policy", "static-only")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("VEFUR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file (if any), environment and flags.
// A missing default config file is not an error; a missing --config file is.
func loadConfig(cmd *cobra.Command) (*settings, error) {
	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("vefur")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, flag := range map[string]string{
		"site.url":    "url",
		"content.dir": "content-dir",
		"server.addr": "addr",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind --%s: %w", flag, err)
			}
		}
	}

	return decodeConfig(v)
}

func decodeConfig(v *viper.Viper) (*settings, error) {
	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	policy, err := vefur.ParseBlogPolicy(fc.Sitemap.BlogPolicy)
	if err != nil {
		return nil, err
	}
	return &settings{
		Site: vefur.SiteConfig{
			Name:          fc.Site.Name,
			URL:           vefur.NormalizeBaseURL(fc.Site.URL),
			Description:   fc.Site.Description,
			Locale:        fc.Site.Locale,
			Email:         fc.Site.Email,
			Phone:         fc.Site.Phone,
			Addr:          fc.Server.Addr,
			DatabasePath:  fc.Database.Path,
			LogLevel:      fc.Log.Level,
			AdminPassword: fc.Admin.Password,
			SessionSecret: fc.Admin.SessionSecret,
			CookieSecure:  fc.Server.CookieSecure,
			PostCacheTTL:  fc.Cache.TTL,
			BlogPolicy:    policy,
		},
		StaticDir:  fc.Server.StaticDir,
		ContentDir: fc.Content.Dir,
		Watch:      fc.Content.Watch,
	}, nil
}
