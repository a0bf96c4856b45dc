package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func toHTML(t *testing.T, content string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Markdown(content).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render %q: %v", content, err)
	}
	return buf.String()
}

func TestMarkdownInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**feitletrað**", "<strong>feitletrað</strong>"},
		{"*skáletrað*", "<em>skáletrað</em>"},
		{"`kóði`", "<code>kóði</code>"},
		{"[Verðskrá](/verdskra)", `<a href="/verdskra">Verðskrá</a>`},
		{"~~gamalt~~", "<del>gamalt</del>"},
	}
	for _, tt := range tests {
		got := toHTML(t, tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Markdown(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestMarkdownHeadingIDs(t *testing.T) {
	got := toHTML(t, "## Hvað kostar vefsíða")
	if !strings.Contains(got, "<h2 id=") {
		t.Errorf("expected heading with id, got %q", got)
	}
}

func TestMarkdownEscapesRawHTML(t *testing.T) {
	got := toHTML(t, "<script>alert(1)</script>\n\ntexti")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML must not pass through: %q", got)
	}
}

func TestMarkdownTable(t *testing.T) {
	input := "| Pakki | Verð |\n|---|---|\n| Grunnur | 250.000 kr. |"
	got := toHTML(t, input)
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>Grunnur</td>") {
		t.Errorf("expected table markup, got %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("Halló **heimur**").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.Contains(got, "<p>Halló <strong>heimur</strong></p>") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestPlainText(t *testing.T) {
	input := "# Fyrirsögn\n\nGóð vefsíða er **hröð** og [aðgengileg](/a).\n\n```go\nfmt.Println()\n```\n\nSíðari málsgrein."
	got := PlainText(input, 200)
	want := "Góð vefsíða er hröð og aðgengileg. Síðari málsgrein."
	if got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestPlainTextTruncatesAtWord(t *testing.T) {
	got := PlainText("Leitarvélabestun skilar árangri til lengri tíma", 25)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if strings.Contains(got, "árangri") {
		t.Errorf("expected cut before the third word, got %q", got)
	}
	if len(strings.TrimSuffix(got, "…")) > 25 {
		t.Errorf("truncated text too long: %q", got)
	}
}
