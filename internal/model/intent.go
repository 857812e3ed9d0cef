package model

// IntentKind enumerates the page types an inbound path can resolve to.
type IntentKind string

const (
	KindEquipment      IntentKind = "equipment"
	KindService        IntentKind = "service"
	KindBrand          IntentKind = "brand"
	KindIndustry       IntentKind = "industry"
	KindProject        IntentKind = "project"
	KindSpecification  IntentKind = "specification"
	KindAttachment     IntentKind = "attachment"
	KindSeasonal       IntentKind = "seasonal"
	KindCompare        IntentKind = "compare"
	KindPricing        IntentKind = "pricing"
	KindGuide          IntentKind = "guide"
	KindMakeModel      IntentKind = "makeModel"
	KindMakeModelCity  IntentKind = "makeModelCity"
	KindTypeCity       IntentKind = "typeCity"
	KindRedirectLegacy IntentKind = "redirectLegacy"
	KindUnknown        IntentKind = "unknown"
)

// Intent is the normalized result of parsing an inbound path.
type Intent struct {
	Kind               IntentKind `json:"kind"`
	Category           string     `json:"category,omitempty"`
	Subcategory        string     `json:"subcategory,omitempty"`
	City               string     `json:"city,omitempty"`
	State              string     `json:"state,omitempty"`
	Locale             string     `json:"locale"`
	IsCanonicalSEOForm bool       `json:"isCanonicalSEOForm"`

	// Path is the locale-free path the intent was resolved from.
	Path string `json:"path,omitempty"`
	// RedirectPath is set for KindRedirectLegacy only and carries the locale prefix.
	RedirectPath string `json:"redirectPath,omitempty"`
}

// IsNotFound reports whether no rule matched.
func (i Intent) IsNotFound() bool {
	return i.Kind == KindUnknown || i.Kind == ""
}

// IsRedirect reports whether the path is a recognised legacy shape.
func (i Intent) IsRedirect() bool {
	return i.Kind == KindRedirectLegacy
}

// IsTopic reports whether listings for the kind come from the buy-it-now topic pool.
func (i Intent) IsTopic() bool {
	switch i.Kind {
	case KindService, KindIndustry, KindProject, KindSpecification, KindAttachment,
		KindSeasonal, KindCompare, KindPricing, KindGuide:
		return true
	}
	return false
}
