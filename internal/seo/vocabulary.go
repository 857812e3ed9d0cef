package seo

import (
	"sort"
	"strings"

	"rentalhub-storefront-api/internal/model"
)

// EquipmentType is a base machine category and the slug variations
// searchers use for it.
type EquipmentType struct {
	Slug       string
	Variations []string
}

// Topic is a page subject with the equipment recommended for it.
type Topic struct {
	Slug      string
	Equipment []string
}

// Brand is a manufacturer and its curated model list.
type Brand struct {
	Slug   string
	Models []string
}

// EquipmentTypes is the base type list. The first variation is always the
// base slug itself.
var EquipmentTypes = []EquipmentType{
	{"excavator", []string{"excavator", "mini-excavator", "compact-excavator", "track-excavator", "crawler-excavator", "hydraulic-excavator", "small-excavator", "midi-excavator", "digger", "trackhoe"}},
	{"skid-steer", []string{"skid-steer", "skid-steer-loader", "compact-track-loader", "track-loader", "mini-skid-steer", "tracked-skid-steer", "wheeled-skid-steer", "skid-loader", "multi-terrain-loader", "stand-on-skid-steer"}},
	{"backhoe", []string{"backhoe", "backhoe-loader", "tractor-loader-backhoe", "rubber-tire-backhoe", "4x4-backhoe", "extendahoe", "loader-backhoe", "compact-backhoe", "tlb", "digger-loader"}},
	{"wheel-loader", []string{"wheel-loader", "front-end-loader", "compact-wheel-loader", "payloader", "bucket-loader", "rubber-tire-loader", "small-wheel-loader", "articulated-loader", "tractor-loader", "loader"}},
	{"bulldozer", []string{"bulldozer", "dozer", "crawler-dozer", "compact-dozer", "small-dozer", "track-dozer", "mini-dozer", "crawler-tractor", "grading-dozer", "lgp-dozer"}},
	{"telehandler", []string{"telehandler", "telescopic-handler", "reach-forklift", "zoom-boom", "rough-terrain-forklift", "telescopic-forklift", "material-handler", "shooting-boom-forklift", "all-terrain-forklift", "forklift"}},
	{"boom-lift", []string{"boom-lift", "articulating-boom-lift", "telescopic-boom-lift", "man-lift", "cherry-picker", "aerial-lift", "towable-boom-lift", "knuckle-boom-lift", "bucket-lift", "manlift"}},
	{"scissor-lift", []string{"scissor-lift", "electric-scissor-lift", "rough-terrain-scissor-lift", "slab-scissor-lift", "aerial-work-platform", "scissor-platform", "indoor-scissor-lift", "outdoor-scissor-lift", "personnel-lift", "mobile-elevating-work-platform"}},
	{"dump-truck", []string{"dump-truck", "articulated-dump-truck", "off-road-dump-truck", "rock-truck", "haul-truck", "tandem-dump-truck", "dumper", "site-dumper", "mini-dumper", "tracked-dumper"}},
	{"trencher", []string{"trencher", "ride-on-trencher", "walk-behind-trencher", "chain-trencher", "mini-trencher", "compact-trencher", "trenching-machine", "rock-trencher", "micro-trencher", "pedestrian-trencher"}},
}

// HeadlineTypes are the highest-intent types, combined with pricing and
// guide topics.
var HeadlineTypes = []string{"excavator", "skid-steer", "boom-lift", "scissor-lift"}

// Brands is the curated brand and model list.
var Brands = []Brand{
	{"caterpillar", []string{"320", "308", "259d", "299d3", "950m", "d6"}},
	{"john-deere", []string{"310sl", "333g", "50g", "544l"}},
	{"bobcat", []string{"e35", "t770", "s650", "t66"}},
	{"kubota", []string{"kx040-4", "svl75-3", "u55-5"}},
	{"komatsu", []string{"pc210", "pc88mr", "d61px"}},
	{"case", []string{"580sn", "tr340", "cx145d"}},
	{"jcb", []string{"3cx", "505-110", "86c"}},
	{"takeuchi", []string{"tb240", "tl12r2"}},
	{"genie", []string{"s-65", "gs-1930", "z-45"}},
	{"jlg", []string{"600s", "1930es", "450aj"}},
}

// ServiceTypes are rental terms combined with every base type.
var ServiceTypes = []string{
	"daily", "weekly", "monthly", "long-term", "short-term", "weekend",
	"same-day", "emergency", "delivered", "operated", "dry-hire", "rent-to-own",
}

// Industries with the equipment they use most.
var Industries = []Topic{
	{"construction", []string{"excavator", "skid-steer", "wheel-loader"}},
	{"landscaping", []string{"skid-steer", "excavator", "trencher"}},
	{"agriculture", []string{"wheel-loader", "skid-steer", "telehandler"}},
	{"oil-and-gas", []string{"excavator", "bulldozer", "telehandler"}},
	{"demolition", []string{"excavator", "skid-steer", "dump-truck"}},
	{"utilities", []string{"trencher", "backhoe", "boom-lift"}},
	{"roadwork", []string{"wheel-loader", "dump-truck", "bulldozer"}},
	{"forestry", []string{"bulldozer", "excavator", "skid-steer"}},
	{"mining", []string{"dump-truck", "wheel-loader", "bulldozer"}},
	{"municipal", []string{"backhoe", "skid-steer", "boom-lift"}},
	{"residential", []string{"excavator", "skid-steer", "scissor-lift"}},
	{"commercial-building", []string{"boom-lift", "scissor-lift", "telehandler"}},
}

// Projects with the equipment they need.
var Projects = []Topic{
	{"pool-installation", []string{"excavator", "skid-steer", "dump-truck"}},
	{"driveway-paving", []string{"skid-steer", "wheel-loader", "dump-truck"}},
	{"land-clearing", []string{"bulldozer", "excavator", "skid-steer"}},
	{"foundation-excavation", []string{"excavator", "backhoe", "dump-truck"}},
	{"septic-installation", []string{"excavator", "backhoe"}},
	{"pond-digging", []string{"excavator", "bulldozer"}},
	{"fence-installation", []string{"skid-steer", "trencher"}},
	{"tree-removal", []string{"boom-lift", "skid-steer"}},
	{"drainage-ditch", []string{"trencher", "excavator"}},
	{"site-grading", []string{"bulldozer", "skid-steer", "wheel-loader"}},
	{"retaining-wall", []string{"excavator", "skid-steer"}},
	{"demolition-cleanup", []string{"skid-steer", "dump-truck", "wheel-loader"}},
}

// SpecificationSizes are size and capacity classes combined with every base type.
var SpecificationSizes = []string{
	"1-ton", "2-ton", "3-ton", "5-ton", "8-ton", "10-ton", "20-ton", "30-ton",
}

// Attachments are sold standalone and combined with AttachmentHostType.
var Attachments = []string{
	"hydraulic-breaker", "auger", "grapple", "thumb", "tilt-bucket",
	"trenching-bucket", "pallet-forks", "brush-cutter", "plate-compactor", "rake",
}

// AttachmentHostType is the machine attachments are paired with.
const AttachmentHostType = "excavator"

// SeasonalEvents with the equipment they call for.
var SeasonalEvents = []Topic{
	{"spring-landscaping", []string{"skid-steer", "trencher"}},
	{"summer-construction", []string{"excavator", "skid-steer"}},
	{"fall-cleanup", []string{"skid-steer", "wheel-loader"}},
	{"winter-storm-cleanup", []string{"skid-steer", "wheel-loader"}},
	{"hurricane-recovery", []string{"skid-steer", "excavator", "boom-lift"}},
	{"flood-cleanup", []string{"skid-steer", "dump-truck"}},
	{"holiday-lighting", []string{"boom-lift", "scissor-lift"}},
	{"festival-setup", []string{"telehandler", "scissor-lift"}},
}

// ComparisonPairs are curated head-to-head pages.
var ComparisonPairs = [][2]string{
	{"excavator", "backhoe"},
	{"mini-excavator", "excavator"},
	{"skid-steer", "compact-track-loader"},
	{"boom-lift", "scissor-lift"},
	{"telehandler", "forklift"},
	{"bulldozer", "excavator"},
	{"wheel-loader", "skid-steer"},
	{"dump-truck", "articulated-dump-truck"},
	{"trencher", "excavator"},
	{"rent", "buy"},
}

// PricingTopics are standalone and combined with HeadlineTypes.
var PricingTopics = []string{
	"rental-rates", "daily-rates", "weekly-rates", "monthly-rates",
	"cost-calculator", "rental-cost", "delivery-fees", "deposit-requirements",
}

// GuideTopics are standalone and combined with HeadlineTypes.
var GuideTopics = []string{
	"how-to-choose", "safety-tips", "operating-guide", "maintenance-checklist",
	"size-guide", "rental-checklist", "transport-guide", "first-time-renter",
}

// typeMatchers maps every variation to its base type, longest variation
// first so "mini-excavator" wins over "excavator".
var typeMatchers = func() []struct{ variation, base string } {
	var out []struct{ variation, base string }
	for _, t := range EquipmentTypes {
		for _, v := range t.Variations {
			out = append(out, struct{ variation, base string }{v, t.Slug})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].variation) > len(out[j].variation) })
	return out
}()

// TypesIn returns the base types whose variations occur in slug as whole
// hyphen-delimited words, in type list order. A matched variation is
// consumed so "skid-steer-loader" does not also count as "loader".
func TypesIn(slug string) []string {
	padded := "-" + slug + "-"
	found := map[string]bool{}
	for _, m := range typeMatchers {
		needle := "-" + m.variation + "-"
		if strings.Contains(padded, needle) {
			found[m.base] = true
			padded = strings.ReplaceAll(padded, needle, "--")
		}
	}
	var out []string
	for _, t := range EquipmentTypes {
		if found[t.Slug] {
			out = append(out, t.Slug)
		}
	}
	return out
}

// TopicKeywords returns the equipment keywords a topic page lists. Types
// named in the slug win; otherwise the topic's recommended equipment is
// used. An empty result means the whole buy-it-now pool.
func TopicKeywords(intent model.Intent) []string {
	slug := intent.Category
	if intent.Subcategory != "" {
		slug += "-" + intent.Subcategory
	}

	types := TypesIn(slug)
	if len(types) == 0 {
		types = recommended(intent.Kind, slug)
	}

	keywords := make([]string, 0, len(types))
	for _, t := range types {
		keywords = append(keywords, Words(t))
	}
	return keywords
}

func recommended(kind model.IntentKind, slug string) []string {
	var topics []Topic
	switch kind {
	case model.KindIndustry:
		topics = Industries
	case model.KindProject:
		topics = Projects
	case model.KindSeasonal:
		topics = SeasonalEvents
	default:
		return nil
	}
	for _, t := range topics {
		if slug == t.Slug || strings.HasPrefix(slug, t.Slug+"-") {
			return t.Equipment
		}
	}
	return nil
}

// brandsByLength lists brand slugs longest first for prefix matching.
var brandsByLength = func() []string {
	out := make([]string, 0, len(Brands))
	for _, b := range Brands {
		out = append(out, b.Slug)
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// SplitBrand separates a known brand prefix from a model remainder.
func SplitBrand(slug string) (brand, model string, ok bool) {
	for _, b := range brandsByLength {
		if slug == b {
			return b, "", true
		}
		if strings.HasPrefix(slug, b+"-") {
			return b, strings.TrimPrefix(slug, b+"-"), true
		}
	}
	return "", "", false
}
