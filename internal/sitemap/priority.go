package sitemap

import (
	"strings"

	a "github.com/petar-dambovaliev/aho-corasick"

	"rentalhub-storefront-api/internal/seo"
)

// DefaultPriority applies to paths no rule matches.
const DefaultPriority = 0.5

// DefaultChangeFreq applies to paths no rule matches.
const DefaultChangeFreq = "weekly"

// priorityRule assigns a priority to any path containing one of its
// markers. When several rules match, the one listed first wins.
type priorityRule struct {
	markers    []string
	priority   float64
	changeFreq string
}

// headlineMarkers are "/<type>-rental" for the headline types, which only
// occur on base equipment pages.
func headlineMarkers() []string {
	out := make([]string, 0, len(seo.HeadlineTypes))
	for _, t := range seo.HeadlineTypes {
		out = append(out, "/"+t+"-rental")
	}
	return out
}

var priorityRules = []priorityRule{
	{[]string{"/guide/"}, 0.4, "monthly"},
	{[]string{"/compare/"}, 0.5, "monthly"},
	{[]string{"/pricing/", "/seasonal/"}, 0.6, "weekly"},
	{[]string{"/project/", "/attachment/", "/specification/"}, 0.6, "weekly"},
	{[]string{"/industry/", "/service/", "/brand/"}, 0.7, "weekly"},
	{headlineMarkers(), 0.9, "daily"},
	{[]string{"-rental-"}, 0.8, "daily"},
}

// Prioritizer scores paths with a single Aho-Corasick pass over all rule
// markers.
type Prioritizer struct {
	matcher a.AhoCorasick
	rank    map[string]int
}

// NewPrioritizer builds the matcher over priorityRules.
func NewPrioritizer() *Prioritizer {
	rank := make(map[string]int)
	var patterns []string
	for i, r := range priorityRules {
		for _, m := range r.markers {
			if _, dup := rank[m]; dup {
				continue
			}
			rank[m] = i
			patterns = append(patterns, m)
		}
	}

	builder := a.NewAhoCorasickBuilder(a.Opts{
		AsciiCaseInsensitive: true,
		MatchKind:            a.LeftMostLongestMatch,
	})
	return &Prioritizer{matcher: builder.Build(patterns), rank: rank}
}

// Score returns the priority and change frequency for path.
func (p *Prioritizer) Score(path string) (float64, string) {
	lower := strings.ToLower(path)
	best := len(priorityRules)
	for _, m := range p.matcher.FindAll(lower) {
		if r, ok := p.rank[lower[m.Start():m.End()]]; ok && r < best {
			best = r
		}
	}
	if best == len(priorityRules) {
		return DefaultPriority, DefaultChangeFreq
	}
	return priorityRules[best].priority, priorityRules[best].changeFreq
}
