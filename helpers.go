package vefur

import (
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that do not decompose into a base letter plus a combining mark.
var icelandicLetters = strings.NewReplacer(
	"þ", "th", "Þ", "th",
	"ð", "d", "Ð", "d",
	"æ", "ae", "Æ", "ae",
	"ø", "o", "Ø", "o",
)

// Slugify converts a title to a URL-safe ASCII slug, transliterating
// Icelandic letters ("Þjónusta á Íslandi" -> "thjonusta-a-islandi").
func Slugify(s string) string {
	s = icelandicLetters.Replace(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FilterRelatedPosts finds posts that share at least one tag with current.
func FilterRelatedPosts(current BlogPost, posts []BlogPost) []BlogPost {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if tag := normalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []BlogPost
	for _, p := range posts {
		if p.ID == current.ID {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// OrganizationJsonLD returns a schema.org ProfessionalService block for the agency.
func OrganizationJsonLD(cfg SiteConfig) string {
	base := NormalizeBaseURL(cfg.URL)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "ProfessionalService",
		"name":        cfg.Name,
		"url":         base,
		"description": cfg.Description,
		"areaServed":  "IS",
		"address": map[string]string{
			"@type":          "PostalAddress",
			"addressCountry": "IS",
		},
		"makesOffer": []map[string]string{
			{"@type": "Offer", "name": "Vefsíðugerð", "url": base + RouteWebDesign},
			{"@type": "Offer", "name": "Leitarvélabestun", "url": base + RouteSEO},
			{"@type": "Offer", "name": "Auglýsingar", "url": base + RouteAds},
		},
	}
	if cfg.Email != "" {
		data["email"] = cfg.Email
	}
	if cfg.Phone != "" {
		data["telephone"] = cfg.Phone
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post BlogPost, cfg SiteConfig) string {
	postURL := NormalizeBaseURL(cfg.URL) + post.Link()
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Summary,
		"datePublished": post.Date,
		"url":           postURL,
		"inLanguage":    "is",
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
