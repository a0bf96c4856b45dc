package vefur

// BlogPost is a blog entry served under /blogg/<id>. The sitemap only reads
// ID and Date; the remaining fields are for rendering.
type BlogPost struct {
	ID        string
	Title     string
	Date      string // "2006-01-02" or RFC 3339
	Tags      []string
	Summary   string
	Content   string // Markdown
	Image     string // filename under the uploads directory, used for og:image
	Published bool
}

// Link returns the site-relative path of the post.
func (p BlogPost) Link() string {
	return blogPrefix + p.ID
}

// OpenGraph is the og:* tag set rendered into <head>.
type OpenGraph struct {
	URL         string
	Title       string
	Description string
	Type        string // "website" or "article"
	Image       string
	Locale      string
	SiteName    string
}

// PageMeta carries per-page SEO and Open Graph metadata into the <head> template.
type PageMeta struct {
	Title        string
	Description  string
	CanonicalURL string
	OpenGraph    OpenGraph
}

// SitemapEntry is one URL of the sitemap feed.
type SitemapEntry struct {
	URL          string
	LastModified string
	ChangeFreq   string
	Priority     string
}

// Image is an uploaded Open Graph image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
