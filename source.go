package vefur

import (
	"context"
	"fmt"
	"strings"
)

// PostSource supplies blog posts in the order they should be listed.
// Implementations may be remote and fail; callers decide how to degrade.
type PostSource interface {
	ListPosts(ctx context.Context) ([]BlogPost, error)
}

// PostSourceFunc adapts a function to PostSource.
type PostSourceFunc func(ctx context.Context) ([]BlogPost, error)

// ListPosts calls f.
func (f PostSourceFunc) ListPosts(ctx context.Context) ([]BlogPost, error) {
	return f(ctx)
}

// StaticPosts is an in-memory PostSource.
type StaticPosts []BlogPost

// ListPosts returns the posts as given.
func (s StaticPosts) ListPosts(context.Context) ([]BlogPost, error) {
	return s, nil
}

// BlogPolicy selects what the sitemap does when the post source fails.
type BlogPolicy int

const (
	// BlogStaticOnly logs the failure and emits static routes only.
	BlogStaticOnly BlogPolicy = iota
	// BlogFail propagates the error to the caller.
	BlogFail
)

func (p BlogPolicy) String() string {
	switch p {
	case BlogFail:
		return "fail"
	default:
		return "static-only"
	}
}

// ParseBlogPolicy parses "fail" or "static-only". Empty means static-only.
func ParseBlogPolicy(s string) (BlogPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "static-only", "static":
		return BlogStaticOnly, nil
	case "fail":
		return BlogFail, nil
	}
	return BlogStaticOnly, fmt.Errorf("vefur: unknown blog policy %q", s)
}

// Logger is the subset of echo.Logger the projector writes to.
type Logger interface {
	Warnf(format string, args ...interface{})
}
