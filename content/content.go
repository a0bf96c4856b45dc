// Package content loads blog posts from a directory of Markdown files with
// YAML front matter:
//
//	---
//	title: Hvað kostar vefsíða?
//	date: 2024-03-01
//	tags: [vefsidugerd, verd]
//	summary: Yfirlit yfir kostnað við nýja vefsíðu.
//	---
//	Texti greinarinnar ...
//
// The file name (without .md) is the post id unless the front matter sets
// one. Files with draft: true are skipped.
package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vefstofa/vefur"
	"github.com/vefstofa/vefur/markdown"
)

const summaryLength = 160

// ErrNoDate is returned for a post file without a date.
var ErrNoDate = errors.New("content: post has no date")

type frontMatter struct {
	ID      string   `yaml:"id" toml:"id" json:"id"`
	Title   string   `yaml:"title" toml:"title" json:"title"`
	Date    string   `yaml:"date" toml:"date" json:"date"`
	Tags    []string `yaml:"tags" toml:"tags" json:"tags"`
	Summary string   `yaml:"summary" toml:"summary" json:"summary"`
	Image   string   `yaml:"image" toml:"image" json:"image"`
	Draft   bool     `yaml:"draft" toml:"draft" json:"draft"`
}

// Dir is a vefur.PostSource reading *.md files from a directory.
// It rereads the directory on every call; put a vefur.PostCache in front.
type Dir struct {
	root string
}

// NewDir returns a source over the Markdown files directly inside root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory the source reads.
func (d *Dir) Root() string {
	return d.root
}

// ListPosts returns the published posts, newest first, ties broken by id.
func (d *Dir) ListPosts(ctx context.Context) ([]vefur.BlogPost, error) {
	files, err := filepath.Glob(filepath.Join(d.root, "*.md"))
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(d.root); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}

	posts := make([]vefur.BlogPost, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		post, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if !post.Published {
			continue
		}
		if prev, dup := seen[post.ID]; dup {
			return nil, fmt.Errorf("content: post id %q used by both %s and %s", post.ID, prev, path)
		}
		seen[post.ID] = path
		posts = append(posts, post)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

// LoadFile parses one Markdown post file.
func LoadFile(path string) (vefur.BlogPost, error) {
	f, err := os.Open(path)
	if err != nil {
		return vefur.BlogPost{}, err
	}
	defer f.Close()

	var fm frontMatter
	body, err := frontmatter.Parse(f, &fm)
	if err != nil {
		return vefur.BlogPost{}, fmt.Errorf("content: parse %s: %w", path, err)
	}

	id := vefur.Slugify(fm.ID)
	if id == "" {
		id = vefur.Slugify(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	if id == "" {
		return vefur.BlogPost{}, fmt.Errorf("content: %s: cannot derive a post id", path)
	}
	date := strings.TrimSpace(fm.Date)
	if date == "" {
		return vefur.BlogPost{}, fmt.Errorf("%w: %s", ErrNoDate, path)
	}
	if _, ok := vefur.ParsePostDate(date); !ok {
		return vefur.BlogPost{}, fmt.Errorf("content: %s: invalid date %q", path, date)
	}

	text := strings.TrimSpace(string(body))
	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = titleFromID(id)
	}
	summary := strings.TrimSpace(fm.Summary)
	if summary == "" {
		summary = markdown.PlainText(text, summaryLength)
	}
	return vefur.BlogPost{
		ID:        id,
		Title:     title,
		Date:      date,
		Tags:      vefur.FilterEmpty(fm.Tags),
		Summary:   summary,
		Content:   text,
		Image:     fm.Image,
		Published: !fm.Draft,
	}, nil
}

// titleFromID turns "nyr-vefur-2024" into "Nyr Vefur 2024".
func titleFromID(id string) string {
	return cases.Title(language.Icelandic).String(strings.ReplaceAll(id, "-", " "))
}
