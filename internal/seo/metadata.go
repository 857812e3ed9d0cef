package seo

import (
	"fmt"
	"strings"

	"rentalhub-storefront-api/internal/model"

	"golang.org/x/text/language"
)

// Metadata is the head content for a page.
type Metadata struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Keywords      []string          `json:"keywords"`
	CanonicalURL  string            `json:"canonicalUrl"`
	AlternateURLs map[string]string `json:"alternateUrls"`
	Locale        string            `json:"locale"`
}

type template struct {
	title       string
	description string
	keywords    []string
}

// templates use {X} (humanized category), {A}/{B} (comparison sides),
// {Make}/{Model}, {City}/{ST}, {Loc} ("City, ST") and {Biz}.
var templates = map[model.IntentKind]template{
	model.KindEquipment: {
		"{X} Rental in {Loc} | {Biz}",
		"Rent a {X} in {Loc}. Daily, weekly and monthly rates with delivery across the area from {Biz}.",
		[]string{"{x} rental", "{x} rental {loc}", "rent {x}", "{x} for rent near me"},
	},
	model.KindService: {
		"{X} in {Loc} | {Biz}",
		"{X} in {Loc}. Flexible terms and fast delivery from {Biz}.",
		[]string{"{x}", "{x} {loc}", "equipment rental {loc}"},
	},
	model.KindBrand: {
		"{X} Equipment Rental in {Loc} | {Biz}",
		"Rent {X} equipment in {Loc}. Browse available {X} machines from {Biz}.",
		[]string{"{x} rental", "{x} equipment rental", "{x} {loc}"},
	},
	model.KindIndustry: {
		"{X} Equipment Rental in {Loc} | {Biz}",
		"Equipment for {X} work in {Loc}. The machines {X} crews rent most, from {Biz}.",
		[]string{"{x} equipment rental", "{x} equipment {loc}"},
	},
	model.KindProject: {
		"Equipment for {X} in {Loc} | {Biz}",
		"Everything you need for {X} in {Loc}. Rent the right machine from {Biz}.",
		[]string{"{x} equipment", "{x} equipment rental", "{x} {loc}"},
	},
	model.KindSpecification: {
		"{X} Rental in {Loc} | {Biz}",
		"Rent a {X} in {Loc}. Sized for your job, delivered by {Biz}.",
		[]string{"{x} rental", "{x} {loc}"},
	},
	model.KindAttachment: {
		"{X} Attachment Rental in {Loc} | {Biz}",
		"Rent a {X} attachment in {Loc}. Fits the machines you already run, from {Biz}.",
		[]string{"{x} attachment", "{x} rental", "{x} {loc}"},
	},
	model.KindSeasonal: {
		"{X} Equipment Rental in {Loc} | {Biz}",
		"Equipment for {X} in {Loc}. Book ahead with {Biz}.",
		[]string{"{x} equipment rental", "{x} {loc}"},
	},
	model.KindCompare: {
		"{A} vs {B}: Which Should You Rent in {Loc}? | {Biz}",
		"Comparing {A} and {B} rentals in {Loc}. Capabilities, costs and when to choose each, from {Biz}.",
		[]string{"{a} vs {b}", "{a} or {b}", "{a} rental {loc}", "{b} rental {loc}"},
	},
	model.KindPricing: {
		"{X} in {Loc} | {Biz}",
		"{X} in {Loc}. Transparent equipment rental pricing from {Biz}.",
		[]string{"{x}", "{x} {loc}", "equipment rental prices"},
	},
	model.KindGuide: {
		"{X} | Equipment Rental Guide | {Biz}",
		"{X}: a practical equipment rental guide from {Biz} in {Loc}.",
		[]string{"{x}", "equipment rental guide"},
	},
	model.KindMakeModel: {
		"{Make} {Model} Rental | {Biz}",
		"Rent the {Make} {Model}. Specs, rates and availability from {Biz}.",
		[]string{"{make} {model} rental", "{make} {model}", "{make} rental"},
	},
	model.KindMakeModelCity: {
		"{Make} {Model} Rental in {City}, {ST} | {Biz}",
		"Rent the {Make} {Model} in {City}, {ST}. Delivered by {Biz}.",
		[]string{"{make} {model} rental {city}", "{make} {model} {city} {st}"},
	},
	model.KindTypeCity: {
		"{X} Rental in {City}, {ST} | {Biz}",
		"Rent a {X} in {City}, {ST}. Rates and availability from {Biz}.",
		[]string{"{x} rental {city}", "{x} rental {city} {st}", "rent {x} {city}"},
	},
}

var notFound = template{
	"Page Not Found | {Biz}",
	"The page you requested could not be found. Browse equipment rentals in {Loc} from {Biz}.",
	nil,
}

var home = template{
	"Equipment Rental in {Loc} | {Biz}",
	"Rent excavators, skid steers, lifts and more in {Loc}. Local inventory and nationwide buy-it-now machines from {Biz}.",
	[]string{"equipment rental {loc}", "heavy equipment rental", "construction equipment rental"},
}

// MetadataBuilder renders page metadata for resolved intents.
type MetadataBuilder struct {
	baseURL  string
	locales  []string
	location string
	business string
}

// NewMetadataBuilder validates every locale as a BCP 47 tag.
func NewMetadataBuilder(baseURL string, locales []string, area model.ServiceArea) (*MetadataBuilder, error) {
	if len(locales) == 0 {
		locales = []string{"en"}
	}
	for _, l := range locales {
		if _, err := language.Parse(l); err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", l, err)
		}
	}
	return &MetadataBuilder{
		baseURL:  strings.TrimRight(baseURL, "/"),
		locales:  locales,
		location: area.Label(),
		business: area.BusinessName,
	}, nil
}

// Build renders metadata for intent. The canonical URL always points at the
// English path whatever locale was requested.
func (b *MetadataBuilder) Build(intent model.Intent, locale string) Metadata {
	tpl, ok := templates[intent.Kind]
	if !ok {
		tpl = notFound
	}
	return b.render(tpl, b.values(intent), intent.Path, locale)
}

// Home renders metadata for the landing page.
func (b *MetadataBuilder) Home(locale string) Metadata {
	return b.render(home, b.values(model.Intent{}), "", locale)
}

func (b *MetadataBuilder) render(tpl template, vals map[string]string, path, locale string) Metadata {
	pairs := make([]string, 0, len(vals)*4)
	lower := make([]string, 0, len(vals)*2)
	for k, v := range vals {
		pairs = append(pairs, "{"+k+"}", v)
		lower = append(lower, "{"+strings.ToLower(k)+"}", strings.ToLower(v))
	}
	title := strings.NewReplacer(pairs...)
	kw := strings.NewReplacer(lower...)

	keywords := make([]string, 0, len(tpl.keywords))
	for _, k := range tpl.keywords {
		keywords = append(keywords, strings.Join(strings.Fields(kw.Replace(k)), " "))
	}

	if !b.isLocale(locale) {
		locale = b.locales[0]
	}

	alternates := make(map[string]string, len(b.locales)+1)
	for _, l := range b.locales {
		alternates[l] = b.url(l, path)
	}
	alternates["x-default"] = b.url("en", path)

	return Metadata{
		Title:         title.Replace(tpl.title),
		Description:   title.Replace(tpl.description),
		Keywords:      keywords,
		CanonicalURL:  b.url("en", path),
		AlternateURLs: alternates,
		Locale:        locale,
	}
}

func (b *MetadataBuilder) values(intent model.Intent) map[string]string {
	x := intent.Category
	if intent.Subcategory != "" {
		x += "-" + intent.Subcategory
	}
	vals := map[string]string{
		"X":     Humanize(x),
		"Make":  Humanize(intent.Category),
		"Model": strings.ToUpper(intent.Subcategory),
		"City":  Humanize(intent.City),
		"ST":    strings.ToUpper(intent.State),
		"Loc":   b.location,
		"Biz":   b.business,
	}
	if a, bSide, ok := strings.Cut(intent.Category, "-vs-"); ok {
		vals["A"] = Humanize(a)
		vals["B"] = Humanize(bSide)
	}
	return vals
}

func (b *MetadataBuilder) url(locale, path string) string {
	return b.baseURL + "/" + locale + path
}

func (b *MetadataBuilder) isLocale(l string) bool {
	for _, c := range b.locales {
		if c == l {
			return true
		}
	}
	return false
}
