package vefur

import (
	"context"
	"testing"
)

func TestParseBlogPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    BlogPolicy
		wantErr bool
	}{
		{"", BlogStaticOnly, false},
		{"static-only", BlogStaticOnly, false},
		{"Static", BlogStaticOnly, false},
		{" fail ", BlogFail, false},
		{"stundum", BlogStaticOnly, true},
	}
	for _, tt := range tests {
		got, err := ParseBlogPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBlogPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBlogPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, p := range []BlogPolicy{BlogStaticOnly, BlogFail} {
		if back, err := ParseBlogPolicy(p.String()); err != nil || back != p {
			t.Errorf("ParseBlogPolicy(%q) = %v, %v", p.String(), back, err)
		}
	}
}

func TestPostSourceFunc(t *testing.T) {
	src := PostSourceFunc(func(context.Context) ([]BlogPost, error) {
		return []BlogPost{{ID: "a"}}, nil
	})
	posts, err := src.ListPosts(context.Background())
	if err != nil || len(posts) != 1 || posts[0].ID != "a" {
		t.Errorf("ListPosts = %+v, %v", posts, err)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := map[string]string{
		"https://x.io":    "https://x.io",
		"https://x.io/":   "https://x.io",
		" https://x.io// ": "https://x.io",
	}
	for in, want := range tests {
		if got := NormalizeBaseURL(in); got != want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := SiteConfig{AdminPassword: "pw", SessionSecret: "s"}
	cfg.setDefaults()
	if err := cfg.validate(true); err != nil {
		t.Errorf("validate: %v", err)
	}

	for name, c := range map[string]SiteConfig{
		"no password": {SessionSecret: "s", URL: "https://x.io"},
		"no secret":   {AdminPassword: "pw", URL: "https://x.io"},
		"relative":    {AdminPassword: "pw", SessionSecret: "s", URL: "vefstofa.is"},
	} {
		if err := c.validate(true); err == nil {
			t.Errorf("%s: validate should fail", name)
		}
	}
}

func TestConfigValidateWithoutAdmin(t *testing.T) {
	if err := (&SiteConfig{URL: "https://x.io"}).validate(false); err != nil {
		t.Errorf("credentials should not be required without the editor: %v", err)
	}
	if err := (&SiteConfig{URL: "x.io"}).validate(false); err == nil {
		t.Error("relative URL should still be rejected")
	}
}
