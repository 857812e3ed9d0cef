package service

import (
	"testing"

	"rentalhub-storefront-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lafayetteCenter = model.Coordinates{Lat: 30.2241, Lon: -92.0198}
	broussard       = model.Coordinates{Lat: 30.1471, Lon: -91.9612}
	houston         = model.Coordinates{Lat: 29.7604, Lon: -95.3698}
	dallas          = model.Coordinates{Lat: 32.7767, Lon: -96.7970}
)

func testArea() model.ServiceArea {
	return model.ServiceArea{
		Center:       lafayetteCenter,
		RadiusMiles:  100,
		City:         "Lafayette",
		State:        "LA",
		BusinessName: "Acadiana Equipment Rentals",
	}
}

func item(id string, at *model.Coordinates, buyItNow bool) model.EquipmentItem {
	var coords *model.Coordinates
	if at != nil {
		c := *at
		coords = &c
	}
	return model.EquipmentItem{
		ID:              id,
		PrimaryType:     "Excavator",
		Make:            "Caterpillar",
		Model:           "320",
		BuyItNowEnabled: buyItNow,
		Coordinates:     coords,
		Location:        model.Location{City: "Origin " + id, State: "ZZ"},
	}
}

func TestResolveListing_ServiceAreaScenario(t *testing.T) {
	local1 := item("local-1", &lafayetteCenter, false)
	local2 := item("local-2", &broussard, true)
	remoteBIN := item("remote-bin", &houston, true)
	remoteRental := item("remote-rental", &dallas, false)

	got := ResolveListing(testArea(), []model.EquipmentItem{local1, local2, remoteBIN, remoteRental},
		ListingPolicy{Context: ServiceAreaContext})

	require.Len(t, got, 3)
	assert.Equal(t, local1, got[0])
	assert.Equal(t, local2, got[1])

	assert.Equal(t, "remote-bin", got[2].ID)
	assert.True(t, got[2].BuyItNowOnly)
	assert.Equal(t, model.Location{City: "Lafayette", State: "LA"}, got[2].Location)
	assert.Nil(t, got[2].Coordinates)
}

func TestResolveListing_DropsItemsWithoutCoordinates(t *testing.T) {
	candidates := []model.EquipmentItem{
		item("no-coords-bin", nil, true),
		item("no-coords", nil, false),
	}

	for _, ctx := range []ListingContext{ServiceAreaContext, NamedCityContext, TopicContext} {
		t.Run(ctx.String(), func(t *testing.T) {
			got := ResolveListing(testArea(), candidates, ListingPolicy{Context: ctx, City: "Houston", State: "TX"})
			assert.Empty(t, got)
		})
	}
}

func TestResolveListing_InRadiusUnchanged(t *testing.T) {
	in := item("in", &broussard, true)
	got := ResolveListing(testArea(), []model.EquipmentItem{in}, ListingPolicy{Context: ServiceAreaContext})

	require.Len(t, got, 1)
	assert.False(t, got[0].BuyItNowOnly)
	assert.Equal(t, in.Location, got[0].Location)
}

func TestResolveListing_NamedCity(t *testing.T) {
	candidates := []model.EquipmentItem{
		item("local-rental", &lafayetteCenter, false),
		item("local-bin", &broussard, true),
		item("remote-bin", &dallas, true),
		item("remote-rental", &houston, false),
	}

	got := ResolveListing(testArea(), candidates, ListingPolicy{Context: NamedCityContext, City: "Houston", State: "TX"})

	require.Len(t, got, 2)
	for _, it := range got {
		assert.True(t, it.BuyItNowOnly, it.ID)
		assert.Equal(t, model.Location{City: "Houston", State: "TX"}, it.Location, it.ID)
		assert.Nil(t, it.Coordinates, it.ID)
	}
	assert.Equal(t, "local-bin", got[0].ID)
	assert.Equal(t, "remote-bin", got[1].ID)
}

func TestApplyLocationMaskingPolicy_DoesNotMutateInput(t *testing.T) {
	in := item("x", &houston, true)
	out := ApplyLocationMaskingPolicy(in, "Lafayette", "LA")

	assert.True(t, out.BuyItNowOnly)
	assert.Equal(t, "Lafayette", out.Location.City)
	assert.Nil(t, out.Coordinates)
	assert.False(t, in.BuyItNowOnly)
	assert.Equal(t, "Origin x", in.Location.City)
	require.NotNil(t, in.Coordinates)
	assert.Equal(t, houston, *in.Coordinates)
}

func TestTopicPool(t *testing.T) {
	skid := item("skid", &houston, true)
	skid.PrimaryType = "Skid Steer Loader"
	skid.Make, skid.Model = "Bobcat", "T770"

	lift := item("lift", &dallas, true)
	lift.PrimaryType = "Aerial"
	lift.Name = "Genie S-65 Boom Lift"

	excavator := item("exc", &houston, true)
	localBIN := item("local", &broussard, true)
	remoteRental := item("rental", &dallas, false)

	candidates := []model.EquipmentItem{skid, lift, excavator, localBIN, remoteRental}

	t.Run("empty keywords keep the whole pool", func(t *testing.T) {
		got := TopicPool(testArea(), candidates, nil)
		ids := make([]string, 0, len(got))
		for _, it := range got {
			ids = append(ids, it.ID)
			assert.True(t, it.BuyItNowOnly)
			assert.Equal(t, "Lafayette", it.Location.City)
		}
		assert.Equal(t, []string{"skid", "lift", "exc"}, ids)
	})

	t.Run("keywords match type or display name", func(t *testing.T) {
		got := TopicPool(testArea(), candidates, []string{"SKID STEER", "boom lift"})
		require.Len(t, got, 2)
		assert.Equal(t, "skid", got[0].ID)
		assert.Equal(t, "lift", got[1].ID)
	})

	t.Run("display name falls back to make and model", func(t *testing.T) {
		got := TopicPool(testArea(), candidates, []string{"bobcat t770"})
		require.Len(t, got, 1)
		assert.Equal(t, "skid", got[0].ID)
	})

	t.Run("topic context delegates", func(t *testing.T) {
		got := ResolveListing(testArea(), candidates, ListingPolicy{Context: TopicContext, Keywords: []string{"excavator"}})
		require.Len(t, got, 1)
		assert.Equal(t, "exc", got[0].ID)
	})
}

func TestExcludeShown(t *testing.T) {
	var items []model.EquipmentItem
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		items = append(items, model.EquipmentItem{ID: id})
	}
	shown := []model.EquipmentItem{{ID: "b"}, {ID: "d"}}

	got := ExcludeShown(items, shown, 0)

	require.Len(t, got, SecondarySectionLimit)
	ids := make([]string, 0, len(got))
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"a", "c", "e", "f", "g", "h"}, ids)

	assert.Len(t, ExcludeShown(items, nil, 2), 2)
}

func TestMergeByID(t *testing.T) {
	got := mergeByID(
		[]model.EquipmentItem{{ID: "a"}, {ID: "b"}},
		[]model.EquipmentItem{{ID: "b", Name: "dup"}, {ID: "c"}},
	)
	require.Len(t, got, 3)
	assert.Empty(t, got[1].Name)
}
