package seo

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize turns a slug into a title: hyphens become spaces and every word
// is capitalized ("mini-excavator" -> "Mini Excavator").
func Humanize(slug string) string {
	text := strings.ReplaceAll(strings.TrimSpace(slug), "-", " ")
	// Casers are stateful; one per call.
	return cases.Title(language.English).String(text)
}

// Slugify is the inverse of Humanize for ASCII alphanumeric tokens:
// lower-case, spaces become hyphens.
func Slugify(text string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), " ", "-")
}

// Words returns slug with hyphens replaced by spaces, lower-cased. It is
// the form used for substring matching against inventory fields.
func Words(slug string) string {
	return strings.ToLower(strings.ReplaceAll(slug, "-", " "))
}
