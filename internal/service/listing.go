package service

import (
	"strings"

	"rentalhub-storefront-api/internal/geo"
	"rentalhub-storefront-api/internal/model"
)

// SecondarySectionLimit caps the "more equipment" section under a page's
// primary listing.
const SecondarySectionLimit = 6

// ListingContext selects how candidates are admitted into a listing.
type ListingContext int

const (
	// ServiceAreaContext lists local items as they are and blends in
	// buy-it-now items from elsewhere, masked to the service area.
	ServiceAreaContext ListingContext = iota
	// NamedCityContext lists only buy-it-now items, masked to the named city.
	NamedCityContext
	// TopicContext lists the buy-it-now pool narrowed by keywords.
	TopicContext
)

func (c ListingContext) String() string {
	switch c {
	case ServiceAreaContext:
		return "service_area"
	case NamedCityContext:
		return "named_city"
	case TopicContext:
		return "topic"
	default:
		return "unknown"
	}
}

// ListingPolicy parameterizes ResolveListing. City and State are used by
// NamedCityContext, Keywords by TopicContext.
type ListingPolicy struct {
	Context  ListingContext
	City     string
	State    string
	Keywords []string
}

// ResolveListing filters and masks candidates for one page. Items without
// coordinates never appear. Candidate order is preserved.
func ResolveListing(area model.ServiceArea, candidates []model.EquipmentItem, policy ListingPolicy) []model.EquipmentItem {
	if policy.Context == TopicContext {
		return TopicPool(area, candidates, policy.Keywords)
	}

	out := make([]model.EquipmentItem, 0, len(candidates))
	for _, item := range candidates {
		if item.Coordinates == nil {
			continue
		}
		inRadius := geo.WithinRadius(area, item.Coordinates.Lat, item.Coordinates.Lon)

		switch policy.Context {
		case ServiceAreaContext:
			switch {
			case inRadius:
				out = append(out, item)
			case item.BuyItNowEnabled:
				out = append(out, ApplyLocationMaskingPolicy(item, area.City, area.State))
			}
		case NamedCityContext:
			if item.BuyItNowEnabled {
				out = append(out, ApplyLocationMaskingPolicy(item, policy.City, policy.State))
			}
		}
	}
	return out
}

// ApplyLocationMaskingPolicy presents a buy-it-now item as located in city,
// state. The physical coordinates are dropped so the response never carries
// the real position. It returns a copy; the input is not modified. This is
// the only place an item's displayed location is rewritten.
func ApplyLocationMaskingPolicy(item model.EquipmentItem, city, state string) model.EquipmentItem {
	item.BuyItNowOnly = true
	item.Location = model.Location{City: city, State: state}
	item.Coordinates = nil
	return item
}

// TopicPool returns the buy-it-now items outside the service area, masked
// to it, narrowed to those whose type or display name contains any keyword.
// An empty keyword list keeps the whole pool.
func TopicPool(area model.ServiceArea, candidates []model.EquipmentItem, keywords []string) []model.EquipmentItem {
	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			terms = append(terms, k)
		}
	}

	out := make([]model.EquipmentItem, 0, len(candidates))
	for _, item := range candidates {
		if item.Coordinates == nil || !item.BuyItNowEnabled {
			continue
		}
		if geo.WithinRadius(area, item.Coordinates.Lat, item.Coordinates.Lon) {
			continue
		}
		if len(terms) > 0 && !matchesAny(item, terms) {
			continue
		}
		out = append(out, ApplyLocationMaskingPolicy(item, area.City, area.State))
	}
	return out
}

func matchesAny(item model.EquipmentItem, terms []string) bool {
	primaryType := strings.ToLower(item.PrimaryType)
	name := strings.ToLower(item.DisplayName())
	for _, t := range terms {
		if strings.Contains(primaryType, t) || strings.Contains(name, t) {
			return true
		}
	}
	return false
}

// ExcludeShown drops items whose ids were already shown and caps the rest
// at limit. A non-positive limit means SecondarySectionLimit.
func ExcludeShown(items, shown []model.EquipmentItem, limit int) []model.EquipmentItem {
	if limit <= 0 {
		limit = SecondarySectionLimit
	}
	seen := make(map[string]struct{}, len(shown))
	for _, s := range shown {
		seen[s.ID] = struct{}{}
	}

	out := make([]model.EquipmentItem, 0, limit)
	for _, item := range items {
		if len(out) == limit {
			break
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// mergeByID concatenates result sets keeping the first occurrence of each id.
func mergeByID(sets ...[]model.EquipmentItem) []model.EquipmentItem {
	seen := make(map[string]struct{})
	var out []model.EquipmentItem
	for _, set := range sets {
		for _, item := range set {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
