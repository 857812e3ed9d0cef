package seo

import (
	"strings"

	"rentalhub-storefront-api/internal/model"
)

// path is the normalized input a rule matches against.
type path struct {
	segments []string
	locale   string
}

func (p path) single() (string, bool) {
	if len(p.segments) != 1 {
		return "", false
	}
	return p.segments[0], true
}

// rule maps a path shape to an intent.
type rule struct {
	name  string
	match func(p path) (model.Intent, bool)
}

// Resolver maps URL path segments onto intents. Rules are evaluated in
// order and the first match wins.
type Resolver struct {
	suffix  string
	state   string
	locales []string

	seoRules    []rule
	routeRules  []rule
	legacyRules []rule
}

// SEOSuffix returns the long-tail suffix for a service area city
// ("Lafayette", "LA" -> "-lafayette-la").
func SEOSuffix(city, state string) string {
	return "-" + Slugify(city) + "-" + strings.ToLower(strings.TrimSpace(state))
}

// NewResolver builds a resolver for the service area. The first locale is
// the default when a path carries none.
func NewResolver(area model.ServiceArea, locales []string) *Resolver {
	if len(locales) == 0 {
		locales = []string{"en"}
	}
	r := &Resolver{
		suffix:  SEOSuffix(area.City, area.State),
		state:   strings.ToLower(area.State),
		locales: locales,
	}

	r.seoRules = []rule{
		{"equipment", func(p path) (model.Intent, bool) {
			seg, ok := p.single()
			if !ok || !strings.HasSuffix(seg, "-rental") || seg == "-rental" {
				return model.Intent{}, false
			}
			return model.Intent{Kind: model.KindEquipment, Category: strings.TrimSuffix(seg, "-rental")}, true
		}},
		section("service", model.KindService),
		{"brand", func(p path) (model.Intent, bool) {
			if len(p.segments) != 2 || p.segments[0] != "brand" || p.segments[1] == "" {
				return model.Intent{}, false
			}
			slug := p.segments[1]
			if brand, rest, ok := SplitBrand(slug); ok {
				return model.Intent{Kind: model.KindBrand, Category: brand, Subcategory: rest}, true
			}
			return model.Intent{Kind: model.KindBrand, Category: slug}, true
		}},
		section("industry", model.KindIndustry),
		section("project", model.KindProject),
		section("specification", model.KindSpecification),
		section("attachment", model.KindAttachment),
		section("seasonal", model.KindSeasonal),
		section("compare", model.KindCompare),
		section("pricing", model.KindPricing),
		section("guide", model.KindGuide),
	}

	r.routeRules = []rule{
		{"make_model", func(p path) (model.Intent, bool) {
			s := p.segments
			if len(s) != 3 || s[0] != "equipment" {
				return model.Intent{}, false
			}
			return model.Intent{Kind: model.KindMakeModel, Category: s[1], Subcategory: s[2]}, true
		}},
		{"make_model_city", func(p path) (model.Intent, bool) {
			s := p.segments
			if len(s) != 4 || s[0] != "equipment" {
				return model.Intent{}, false
			}
			city, state, ok := SplitCityState(s[3])
			if !ok {
				return model.Intent{}, false
			}
			return model.Intent{Kind: model.KindMakeModelCity, Category: s[1], Subcategory: s[2], City: city, State: state}, true
		}},
		{"type_city", func(p path) (model.Intent, bool) {
			s := p.segments
			if len(s) != 3 || s[0] != "rent" {
				return model.Intent{}, false
			}
			city, state, ok := SplitCityState(s[2])
			if !ok {
				return model.Intent{}, false
			}
			return model.Intent{Kind: model.KindTypeCity, Category: s[1], City: city, State: state}, true
		}},
	}

	r.legacyRules = []rule{
		{"type_rental_city", func(p path) (model.Intent, bool) {
			seg, ok := p.single()
			if !ok {
				return model.Intent{}, false
			}
			typ, rest, found := strings.Cut(seg, "-rental-")
			if !found || typ == "" {
				return model.Intent{}, false
			}
			city, state, ok := SplitCityState(rest)
			if !ok {
				return model.Intent{}, false
			}
			return r.redirect(p, typ, "", city, state, "rent", typ, city+"-"+state), true
		}},
		{"make_model_rental", func(p path) (model.Intent, bool) {
			seg, ok := p.single()
			if !ok || !strings.HasSuffix(seg, "-rental") {
				return model.Intent{}, false
			}
			base := strings.TrimSuffix(seg, "-rental")
			mk, modelSlug, found := strings.Cut(base, "-")
			if brand, rest, ok := SplitBrand(base); ok && rest != "" {
				mk, modelSlug, found = brand, rest, true
			}
			if !found || mk == "" || modelSlug == "" {
				return model.Intent{}, false
			}
			return r.redirect(p, mk, modelSlug, "", "", "equipment", mk, modelSlug), true
		}},
		{"make_model_rental_city", func(p path) (model.Intent, bool) {
			s := p.segments
			if len(s) != 3 || !strings.HasPrefix(s[2], "rental-") || s[2] == "rental-" {
				return model.Intent{}, false
			}
			city, state := r.cityWithState(strings.TrimPrefix(s[2], "rental-"))
			return r.redirect(p, s[0], s[1], city, state, "equipment", s[0], s[1], city+"-"+state), true
		}},
		{"type_city_state", func(p path) (model.Intent, bool) {
			s := p.segments
			if len(s) != 3 || !isStateCode(s[2]) {
				return model.Intent{}, false
			}
			return r.redirect(p, s[0], "", s[1], s[2], "rent", s[0], s[1]+"-"+s[2]), true
		}},
		{"type_equipment_city", func(p path) (model.Intent, bool) {
			seg, ok := p.single()
			if !ok {
				return model.Intent{}, false
			}
			typ, rest, found := strings.Cut(seg, "-equipment-")
			if !found || typ == "" || rest == "" {
				return model.Intent{}, false
			}
			city, state := r.cityWithState(rest)
			return r.redirect(p, typ, "", city, state, "rent", typ, city+"-"+state), true
		}},
	}

	return r
}

// Suffix returns the long-tail suffix this resolver recognises.
func (r *Resolver) Suffix() string {
	return r.suffix
}

// Locales returns the configured locales, default first.
func (r *Resolver) Locales() []string {
	return r.locales
}

// Resolve maps path segments to an intent. Unmatched paths resolve to
// KindUnknown.
func (r *Resolver) Resolve(segments []string) model.Intent {
	p := path{locale: r.locales[0]}
	for _, s := range segments {
		if s = strings.ToLower(strings.Trim(s, " /")); s != "" {
			p.segments = append(p.segments, s)
		}
	}
	if len(p.segments) > 0 && r.isLocale(p.segments[0]) {
		p.locale = p.segments[0]
		p.segments = p.segments[1:]
	}

	unknown := model.Intent{Kind: model.KindUnknown, Locale: p.locale, Path: joinPath(p.segments)}
	if len(p.segments) == 0 {
		return unknown
	}

	last := p.segments[len(p.segments)-1]
	if strings.HasSuffix(last, r.suffix) && len(last) > len(r.suffix) {
		stripped := path{locale: p.locale, segments: append([]string(nil), p.segments...)}
		stripped.segments[len(stripped.segments)-1] = strings.TrimSuffix(last, r.suffix)
		if intent, ok := first(r.seoRules, stripped); ok {
			intent.IsCanonicalSEOForm = true
			return finish(intent, p)
		}
		return unknown
	}

	if intent, ok := first(r.routeRules, p); ok {
		return finish(intent, p)
	}
	if intent, ok := first(r.legacyRules, p); ok {
		return finish(intent, p)
	}
	return unknown
}

// ResolvePath splits a slash-separated path and resolves it.
func (r *Resolver) ResolvePath(raw string) model.Intent {
	return r.Resolve(strings.Split(raw, "/"))
}

func (r *Resolver) isLocale(seg string) bool {
	for _, l := range r.locales {
		if seg == l {
			return true
		}
	}
	return false
}

// redirect builds a legacy intent pointing at the canonical route.
func (r *Resolver) redirect(p path, category, subcategory, city, state string, target ...string) model.Intent {
	return model.Intent{
		Kind:         model.KindRedirectLegacy,
		Category:     category,
		Subcategory:  subcategory,
		City:         city,
		State:        state,
		RedirectPath: "/" + p.locale + joinPath(target),
	}
}

// cityWithState splits slug into city and state, defaulting the state to
// the service area's when slug carries none.
func (r *Resolver) cityWithState(slug string) (string, string) {
	if city, state, ok := SplitCityState(slug); ok {
		return city, state
	}
	return slug, r.state
}

// SplitCityState splits "new-iberia-la" into ("new-iberia", "la"). The last
// hyphen part must be a two-letter state code.
func SplitCityState(slug string) (city, state string, ok bool) {
	i := strings.LastIndex(slug, "-")
	if i <= 0 {
		return "", "", false
	}
	city, state = slug[:i], slug[i+1:]
	if !isStateCode(state) {
		return "", "", false
	}
	return city, state, true
}

func isStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, c := range s {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func section(prefix string, kind model.IntentKind) rule {
	return rule{prefix, func(p path) (model.Intent, bool) {
		if len(p.segments) != 2 || p.segments[0] != prefix || p.segments[1] == "" {
			return model.Intent{}, false
		}
		return model.Intent{Kind: kind, Category: p.segments[1]}, true
	}}
}

func first(rules []rule, p path) (model.Intent, bool) {
	for _, r := range rules {
		if intent, ok := r.match(p); ok {
			return intent, true
		}
	}
	return model.Intent{}, false
}

func finish(intent model.Intent, p path) model.Intent {
	intent.Locale = p.locale
	intent.Path = joinPath(p.segments)
	return intent
}

func joinPath(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return "/" + strings.Join(segments, "/")
}
