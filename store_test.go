package vefur

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveAndGetPost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	post := BlogPost{
		ID:        "fyrsta-faerslan",
		Title:     "Fyrsta færslan",
		Date:      "2024-01-15",
		Tags:      []string{"SEO", " vefhonnun "},
		Summary:   "Stutt lýsing",
		Content:   "# Fyrirsögn\n\nTexti.",
		Image:     "forsida.jpg",
		Published: true,
	}
	if err := s.SavePost(ctx, post); err != nil {
		t.Fatalf("SavePost: %v", err)
	}

	got, err := s.GetPost(ctx, "fyrsta-faerslan")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Date != post.Date {
		t.Errorf("Date = %q, want %q", got.Date, post.Date)
	}
	if got.Content != post.Content {
		t.Errorf("Content = %q, want %q", got.Content, post.Content)
	}
	if got.Image != "forsida.jpg" {
		t.Errorf("Image = %q, want forsida.jpg", got.Image)
	}
	if got.Link() != "/blogg/fyrsta-faerslan" {
		t.Errorf("Link = %q, want /blogg/fyrsta-faerslan", got.Link())
	}
	if len(got.Tags) != 2 || got.Tags[0] != "seo" || got.Tags[1] != "vefhonnun" {
		t.Errorf("Tags = %v, want [seo vefhonnun]", got.Tags)
	}
}

func TestStoreSavePostUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	post := BlogPost{ID: "uppfaersla", Title: "Upprunalegt", Date: "2024-01-01", Published: true}
	if err := s.SavePost(ctx, post); err != nil {
		t.Fatalf("SavePost: %v", err)
	}
	post.Title = "Breytt"
	if err := s.SavePost(ctx, post); err != nil {
		t.Fatalf("SavePost update: %v", err)
	}

	got, err := s.GetPost(ctx, "uppfaersla")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "Breytt" {
		t.Errorf("Title = %q, want Breytt", got.Title)
	}
	all, err := s.ListAllPosts(ctx)
	if err != nil {
		t.Fatalf("ListAllPosts: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ListAllPosts count = %d, want 1", len(all))
	}
}

func TestStoreGetPostNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPost(context.Background(), "vantar")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreUnpublishedHidden(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePost(ctx, BlogPost{ID: "drog", Title: "Drög", Date: "2024-01-01"}); err != nil {
		t.Fatalf("SavePost: %v", err)
	}
	if _, err := s.GetPost(ctx, "drog"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPost should hide drafts, got %v", err)
	}
	got, err := s.GetPostAny(ctx, "drog")
	if err != nil {
		t.Fatalf("GetPostAny: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
	posts, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("ListPosts = %d posts, want 0", len(posts))
	}
}

func TestStoreListPostsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []BlogPost{
		{ID: "b", Title: "B", Date: "2024-01-02", Tags: []string{"seo"}, Published: true},
		{ID: "c", Title: "C", Date: "2024-01-03", Tags: []string{"auglysingar"}, Published: true},
		{ID: "a", Title: "A", Date: "2024-01-02", Tags: []string{"seo", "vefir"}, Published: true},
		{ID: "d", Title: "D", Date: "2024-01-04", Tags: []string{"seo"}},
	} {
		if err := s.SavePost(ctx, p); err != nil {
			t.Fatalf("SavePost: %v", err)
		}
	}

	got, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	if want := []string{"c", "a", "b"}; !equalStrings(ids, want) {
		t.Errorf("ListPosts ids = %v, want %v", ids, want)
	}

	byTag, err := s.ListPostsByTag(ctx, "SEO")
	if err != nil {
		t.Fatalf("ListPostsByTag: %v", err)
	}
	if len(byTag) != 2 {
		t.Errorf("ListPostsByTag(SEO) = %d posts, want 2", len(byTag))
	}

	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if want := []string{"auglysingar", "seo", "vefir"}; !equalStrings(tags, want) {
		t.Errorf("ListTags = %v, want %v", tags, want)
	}
}

func TestStoreDeletePost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePost(ctx, BlogPost{ID: "eyda", Title: "Eyða", Date: "2024-01-01", Published: true}); err != nil {
		t.Fatalf("SavePost: %v", err)
	}
	if err := s.DeletePost(ctx, "eyda"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, err := s.GetPostAny(ctx, "eyda"); !errors.Is(err, ErrNotFound) {
		t.Errorf("post still present after delete: %v", err)
	}
}

func TestStoreImages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	imgs := []Image{
		{Filename: "eldri.jpg", OriginalName: "Eldri.png", Width: 1200, Height: 630, Size: 100, UploadedAt: "2024-01-01T10:00:00Z"},
		{Filename: "nyrri.jpg", OriginalName: "Nýrri.png", Width: 1200, Height: 630, Size: 200, UploadedAt: "2024-02-01T10:00:00Z"},
	}
	for _, img := range imgs {
		if err := s.SaveImage(ctx, img); err != nil {
			t.Fatalf("SaveImage: %v", err)
		}
	}

	got, err := s.ListImages(ctx)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(got) != 2 || got[0].Filename != "nyrri.jpg" {
		t.Fatalf("ListImages = %+v, want nyrri.jpg first", got)
	}

	exists, err := s.ImageExists(ctx, "eldri.jpg")
	if err != nil || !exists {
		t.Errorf("ImageExists(eldri.jpg) = %v, %v; want true", exists, err)
	}
	if err := s.DeleteImage(ctx, "eldri.jpg"); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	exists, err = s.ImageExists(ctx, "eldri.jpg")
	if err != nil || exists {
		t.Errorf("ImageExists after delete = %v, %v; want false", exists, err)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{",,", nil},
		{",seo,", []string{"seo"}},
		{",seo, vefir ,", []string{"seo", "vefir"}},
	}
	for _, tt := range tests {
		if got := ParseTags(tt.in); !equalStrings(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
