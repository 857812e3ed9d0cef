package sitemap

import (
	"sort"

	"rentalhub-storefront-api/internal/model"
	"rentalhub-storefront-api/internal/seo"
)

// Entry is one sitemap URL before the host is attached.
type Entry struct {
	Path       string           `json:"path"`
	Kind       model.IntentKind `json:"kind"`
	Priority   float64          `json:"priority"`
	ChangeFreq string           `json:"changefreq"`
}

// Generator enumerates every long-tail page the resolver accepts.
type Generator struct {
	suffix      string
	locales     []string
	prioritizer *Prioritizer
}

// NewGenerator creates a generator that emits paths in the resolver's
// suffix and locale set.
func NewGenerator(suffix string, locales []string) *Generator {
	if len(locales) == 0 {
		locales = []string{"en"}
	}
	return &Generator{suffix: suffix, locales: locales, prioritizer: NewPrioritizer()}
}

// Locales returns the locales documents carry alternates for.
func (g *Generator) Locales() []string {
	return g.locales
}

// GenerateAll returns every path for locale, deduplicated and sorted by
// priority then path.
func (g *Generator) GenerateAll(locale string) []string {
	entries := g.Entries(locale)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

// Entries returns the scored entries for locale.
func (g *Generator) Entries(locale string) []Entry {
	seen := make(map[string]struct{})
	var entries []Entry

	add := func(kind model.IntentKind, section, slug string) {
		p := "/" + locale
		if section != "" {
			p += "/" + section
		}
		p += "/" + slug + g.suffix
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		priority, freq := g.prioritizer.Score(p)
		entries = append(entries, Entry{Path: p, Kind: kind, Priority: priority, ChangeFreq: freq})
	}

	for _, t := range seo.EquipmentTypes {
		for _, v := range t.Variations {
			add(model.KindEquipment, "", v+"-rental")
		}
	}

	for _, b := range seo.Brands {
		add(model.KindBrand, "brand", b.Slug)
		for _, m := range b.Models {
			add(model.KindBrand, "brand", b.Slug+"-"+m)
		}
	}

	for _, svc := range seo.ServiceTypes {
		for _, t := range seo.EquipmentTypes {
			add(model.KindService, "service", svc+"-"+t.Slug+"-rental")
		}
	}

	for _, ind := range seo.Industries {
		add(model.KindIndustry, "industry", ind.Slug)
		for _, t := range seo.EquipmentTypes {
			add(model.KindIndustry, "industry", ind.Slug+"-"+t.Slug+"-rental")
		}
	}

	for _, p := range seo.Projects {
		add(model.KindProject, "project", p.Slug)
	}

	for _, size := range seo.SpecificationSizes {
		for _, t := range seo.EquipmentTypes {
			add(model.KindSpecification, "specification", size+"-"+t.Slug+"-rental")
		}
	}

	for _, att := range seo.Attachments {
		add(model.KindAttachment, "attachment", att)
		add(model.KindAttachment, "attachment", seo.AttachmentHostType+"-"+att)
	}

	for _, s := range seo.SeasonalEvents {
		add(model.KindSeasonal, "seasonal", s.Slug)
	}

	for _, pair := range seo.ComparisonPairs {
		add(model.KindCompare, "compare", pair[0]+"-vs-"+pair[1])
	}

	for _, topic := range seo.PricingTopics {
		add(model.KindPricing, "pricing", topic)
		for _, t := range seo.HeadlineTypes {
			add(model.KindPricing, "pricing", t+"-"+topic)
		}
	}

	for _, topic := range seo.GuideTopics {
		add(model.KindGuide, "guide", topic)
		for _, t := range seo.HeadlineTypes {
			add(model.KindGuide, "guide", t+"-"+topic)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}
