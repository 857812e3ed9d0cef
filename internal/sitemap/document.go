package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS   = "http://www.w3.org/1999/xhtml"
)

type urlset struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	XHTML   string     `xml:"xmlns:xhtml,attr,omitempty"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string      `xml:"loc"`
	Alternates []alternate `xml:"xhtml:link"`
	LastMod    string      `xml:"lastmod"`
	ChangeFreq string      `xml:"changefreq"`
	Priority   string      `xml:"priority"`
}

type alternate struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Document renders the sitemap for the default locale with alternates for
// every configured locale.
func (g *Generator) Document(baseURL string, lastmod time.Time) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	def := g.locales[0]
	day := lastmod.UTC().Format("2006-01-02")

	entries := g.Entries(def)
	doc := urlset{Xmlns: sitemapNS, XHTML: xhtmlNS, URLs: make([]urlEntry, 0, len(entries))}
	for _, e := range entries {
		rest := strings.TrimPrefix(e.Path, "/"+def)
		doc.URLs = append(doc.URLs, urlEntry{
			Loc:        base + e.Path,
			Alternates: g.alternates(base, rest),
			LastMod:    day,
			ChangeFreq: e.ChangeFreq,
			Priority:   fmt.Sprintf("%.1f", e.Priority),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func (g *Generator) alternates(base, rest string) []alternate {
	out := make([]alternate, 0, len(g.locales)+1)
	for _, l := range g.locales {
		out = append(out, alternate{Rel: "alternate", Hreflang: l, Href: base + "/" + l + rest})
	}
	return append(out, alternate{Rel: "alternate", Hreflang: "x-default", Href: base + "/" + g.locales[0] + rest})
}

// FallbackDocument is a single-entry sitemap pointing at the home page,
// served when Document fails.
func FallbackDocument(baseURL string, lastmod time.Time) []byte {
	doc := urlset{
		Xmlns: sitemapNS,
		URLs: []urlEntry{{
			Loc:        strings.TrimRight(baseURL, "/") + "/en",
			LastMod:    lastmod.UTC().Format("2006-01-02"),
			ChangeFreq: "daily",
			Priority:   "1.0",
		}},
	}
	out, _ := xml.Marshal(doc)
	return append([]byte(xml.Header), out...)
}
