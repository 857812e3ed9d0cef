package seo

import (
	"testing"

	"rentalhub-storefront-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lafayette() model.ServiceArea {
	return model.ServiceArea{
		Center:       model.Coordinates{Lat: 30.2241, Lon: -92.0198},
		RadiusMiles:  100,
		City:         "Lafayette",
		State:        "LA",
		BusinessName: "Acadiana Equipment Rentals",
	}
}

func newTestResolver() *Resolver {
	return NewResolver(lafayette(), []string{"en", "es"})
}

func TestSEOSuffix(t *testing.T) {
	assert.Equal(t, "-lafayette-la", SEOSuffix("Lafayette", "LA"))
	assert.Equal(t, "-new-iberia-la", SEOSuffix("New Iberia", "la"))
}

func TestResolve_SEOForms(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name        string
		path        string
		kind        model.IntentKind
		category    string
		subcategory string
	}{
		{"equipment", "excavator-rental-lafayette-la", model.KindEquipment, "excavator", ""},
		{"equipment variation", "mini-excavator-rental-lafayette-la", model.KindEquipment, "mini-excavator", ""},
		{"service", "service/daily-excavator-rental-lafayette-la", model.KindService, "daily-excavator-rental", ""},
		{"brand only", "brand/caterpillar-lafayette-la", model.KindBrand, "caterpillar", ""},
		{"brand and model", "brand/john-deere-310sl-lafayette-la", model.KindBrand, "john-deere", "310sl"},
		{"unknown brand", "brand/acme-lafayette-la", model.KindBrand, "acme", ""},
		{"industry", "industry/construction-excavator-rental-lafayette-la", model.KindIndustry, "construction-excavator-rental", ""},
		{"project", "project/pool-installation-lafayette-la", model.KindProject, "pool-installation", ""},
		{"specification", "specification/5-ton-excavator-rental-lafayette-la", model.KindSpecification, "5-ton-excavator-rental", ""},
		{"attachment", "attachment/excavator-auger-lafayette-la", model.KindAttachment, "excavator-auger", ""},
		{"seasonal", "seasonal/hurricane-recovery-lafayette-la", model.KindSeasonal, "hurricane-recovery", ""},
		{"compare", "compare/excavator-vs-backhoe-lafayette-la", model.KindCompare, "excavator-vs-backhoe", ""},
		{"pricing", "pricing/excavator-rental-rates-lafayette-la", model.KindPricing, "excavator-rental-rates", ""},
		{"guide", "guide/safety-tips-lafayette-la", model.KindGuide, "safety-tips", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolvePath(tt.path)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.subcategory, got.Subcategory)
			assert.True(t, got.IsCanonicalSEOForm)
			assert.Equal(t, "en", got.Locale)
			assert.Equal(t, "/"+tt.path, got.Path)
		})
	}
}

func TestResolve_LocalePrefix(t *testing.T) {
	r := newTestResolver()

	got := r.Resolve([]string{"es", "excavator-rental-lafayette-la"})
	assert.Equal(t, model.KindEquipment, got.Kind)
	assert.Equal(t, "es", got.Locale)
	assert.Equal(t, "/excavator-rental-lafayette-la", got.Path)

	got = r.Resolve([]string{"", "en", "", "guide", "size-guide-lafayette-la", ""})
	assert.Equal(t, model.KindGuide, got.Kind)
	assert.Equal(t, "size-guide", got.Category)
}

func TestResolve_SuffixedWithoutMatchIsUnknown(t *testing.T) {
	r := newTestResolver()

	for _, p := range []string{
		"excavator-lafayette-la",
		"widgets/excavator-lafayette-la",
		"service/daily/excavator-lafayette-la",
	} {
		got := r.ResolvePath(p)
		assert.Equal(t, model.KindUnknown, got.Kind, p)
		assert.True(t, got.IsNotFound(), p)
		assert.False(t, got.IsCanonicalSEOForm, p)
	}
}

func TestResolve_CanonicalRoutes(t *testing.T) {
	r := newTestResolver()

	got := r.ResolvePath("/en/equipment/caterpillar/320")
	assert.Equal(t, model.KindMakeModel, got.Kind)
	assert.Equal(t, "caterpillar", got.Category)
	assert.Equal(t, "320", got.Subcategory)
	assert.False(t, got.IsCanonicalSEOForm)

	got = r.ResolvePath("equipment/bobcat/t770/houston-tx")
	assert.Equal(t, model.KindMakeModelCity, got.Kind)
	assert.Equal(t, "houston", got.City)
	assert.Equal(t, "tx", got.State)

	got = r.ResolvePath("rent/skid-steer/new-iberia-la")
	assert.Equal(t, model.KindTypeCity, got.Kind)
	assert.Equal(t, "skid-steer", got.Category)
	assert.Equal(t, "new-iberia", got.City)
	assert.Equal(t, "la", got.State)
}

func TestResolve_LegacyRedirects(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name     string
		path     string
		category string
		sub      string
		redirect string
	}{
		{"type rental city", "excavator-rental-houston-tx", "excavator", "", "/en/rent/excavator/houston-tx"},
		{"make model rental", "caterpillar-320-rental", "caterpillar", "320", "/en/equipment/caterpillar/320"},
		{"multi-word brand", "john-deere-310sl-rental", "john-deere", "310sl", "/en/equipment/john-deere/310sl"},
		{"make model rental city", "bobcat/t770/rental-baton-rouge-la", "bobcat", "t770", "/en/equipment/bobcat/t770/baton-rouge-la"},
		{"make model rental city without state", "bobcat/t770/rental-lafayette", "bobcat", "t770", "/en/equipment/bobcat/t770/lafayette-la"},
		{"type city state", "backhoe/lafayette/la", "backhoe", "", "/en/rent/backhoe/lafayette-la"},
		{"type equipment city", "scissor-lift-equipment-houston-tx", "scissor-lift", "", "/en/rent/scissor-lift/houston-tx"},
		{"locale kept", "es/caterpillar-320-rental", "caterpillar", "320", "/es/equipment/caterpillar/320"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolvePath(tt.path)
			require.Equal(t, model.KindRedirectLegacy, got.Kind)
			assert.True(t, got.IsRedirect())
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.sub, got.Subcategory)
			assert.Equal(t, tt.redirect, got.RedirectPath)
		})
	}
}

func TestResolve_RedirectTargetsResolve(t *testing.T) {
	r := newTestResolver()

	for _, p := range []string{
		"excavator-rental-houston-tx",
		"caterpillar-320-rental",
		"bobcat/t770/rental-lafayette",
		"backhoe/lafayette/la",
		"scissor-lift-equipment-houston-tx",
	} {
		first := r.ResolvePath(p)
		require.True(t, first.IsRedirect(), p)
		target := r.ResolvePath(first.RedirectPath)
		assert.False(t, target.IsNotFound(), p)
		assert.False(t, target.IsRedirect(), p)
	}
}

func TestResolve_Unknown(t *testing.T) {
	r := newTestResolver()

	for _, p := range []string{"", "en", "about", "rental", "excavator-rental", "a/b/c/d/e", "rent/excavator/lafayette"} {
		assert.True(t, r.ResolvePath(p).IsNotFound(), p)
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	r := newTestResolver()

	got := r.ResolvePath("EN/Excavator-Rental-Lafayette-LA")
	assert.Equal(t, model.KindEquipment, got.Kind)
	assert.Equal(t, "excavator", got.Category)
}

func TestResolver_RuleOrder(t *testing.T) {
	r := newTestResolver()

	names := func(rules []rule) []string {
		out := make([]string, len(rules))
		for i, rl := range rules {
			out[i] = rl.name
		}
		return out
	}

	assert.Equal(t, []string{
		"equipment", "service", "brand", "industry", "project", "specification",
		"attachment", "seasonal", "compare", "pricing", "guide",
	}, names(r.seoRules))
	assert.Equal(t, []string{
		"type_rental_city", "make_model_rental", "make_model_rental_city",
		"type_city_state", "type_equipment_city",
	}, names(r.legacyRules))
}

func TestSplitCityState(t *testing.T) {
	city, state, ok := SplitCityState("new-iberia-la")
	require.True(t, ok)
	assert.Equal(t, "new-iberia", city)
	assert.Equal(t, "la", state)

	_, _, ok = SplitCityState("lafayette")
	assert.False(t, ok)
	_, _, ok = SplitCityState("lafayette-louisiana")
	assert.False(t, ok)
	_, _, ok = SplitCityState("-la")
	assert.False(t, ok)
}
