package service

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"rentalhub-storefront-api/internal/model"
	"rentalhub-storefront-api/internal/repository"
	"rentalhub-storefront-api/pkg/apierror"
	"rentalhub-storefront-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository answers every search with the same items, narrowed by
// keyword when the criteria carry one.
type fakeRepository struct {
	mu    sync.Mutex
	items []model.EquipmentItem
	err   error
	calls []model.SearchCriteria
}

func (f *fakeRepository) Search(_ context.Context, c model.SearchCriteria) (*model.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if f.err != nil {
		if repository.IsConfigurationError(f.err) {
			return nil, f.err
		}
		return &model.SearchResult{Items: []model.EquipmentItem{}, Error: f.err.Error()}, f.err
	}
	return &model.SearchResult{Items: f.items, TotalCount: len(f.items)}, nil
}

func (f *fakeRepository) keywordsQueried() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		out = append(out, c.Keywords...)
	}
	sort.Strings(out)
	return out
}

func newTestService(repo repository.InventoryRepository) *InventoryService {
	return NewInventoryService(repo, testArea(), 50, logger.Nop())
}

func catalog() []model.EquipmentItem {
	local := item("local", &broussard, false)
	remoteExc := item("remote-exc", &houston, true)
	remoteSkid := item("remote-skid", &dallas, true)
	remoteSkid.PrimaryType = "Skid Steer"
	remoteSkid.Make, remoteSkid.Model = "Bobcat", "T770"
	remoteRental := item("remote-rental", &houston, false)
	return []model.EquipmentItem{local, remoteExc, remoteSkid, remoteRental}
}

func TestSearch_Validation(t *testing.T) {
	svc := newTestService(&fakeRepository{})
	neg := -1.0
	lo, hi := 10.0, 5.0

	tests := []struct {
		name     string
		criteria model.SearchCriteria
		code     string
	}{
		{"empty", model.SearchCriteria{}, "BAD_REQUEST"},
		{"blank keywords only", model.SearchCriteria{Keywords: []string{" ", ""}}, "BAD_REQUEST"},
		{"limit too large", model.SearchCriteria{PrimaryType: "Excavator", Limit: 500}, "VALIDATION_ERROR"},
		{"negative capacity", model.SearchCriteria{PrimaryType: "Excavator", MinCapacity: &neg}, "VALIDATION_ERROR"},
		{"inverted capacity", model.SearchCriteria{PrimaryType: "Excavator", MinCapacity: &lo, MaxCapacity: &hi}, "VALIDATION_ERROR"},
		{"bad latitude", model.SearchCriteria{Location: &model.GeoFilter{Lat: 95, Lon: 0, RadiusMiles: 10}}, "VALIDATION_ERROR"},
		{"zero radius", model.SearchCriteria{Location: &model.GeoFilter{Lat: 30, Lon: -92}}, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tt.criteria)
			apiErr, ok := apierror.As(err)
			require.True(t, ok, "expected *apierror.Error, got %v", err)
			assert.Equal(t, 400, apiErr.StatusCode)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestSearch_ValidationDetailsUseJSONNames(t *testing.T) {
	svc := newTestService(&fakeRepository{})
	_, err := svc.Search(context.Background(), model.SearchCriteria{Location: &model.GeoFilter{Lat: 95, Lon: 0, RadiusMiles: 10}})

	apiErr, ok := apierror.As(err)
	require.True(t, ok)
	require.NotEmpty(t, apiErr.Details)
	assert.Equal(t, "location.lat", apiErr.Details[0].Field)
}

func TestSearch_LocationOnlyIsValid(t *testing.T) {
	repo := &fakeRepository{items: catalog()}
	svc := newTestService(repo)

	res, err := svc.Search(context.Background(), model.SearchCriteria{Location: &model.GeoFilter{Lat: 30.2, Lon: -92, RadiusMiles: 25}})
	require.NoError(t, err)
	assert.Len(t, res.Items, 4)
}

func TestSearch_UpstreamFailureDegrades(t *testing.T) {
	repo := &fakeRepository{err: &repository.UpstreamError{StatusCode: 503}}
	svc := newTestService(repo)

	res, err := svc.Search(context.Background(), model.SearchCriteria{PrimaryType: "Excavator"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.TotalCount)
	assert.NotEmpty(t, res.Error)
}

func TestSearch_DegradeLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"upstream failure", &repository.UpstreamError{StatusCode: 502}, `"level":"WARN"`},
		{"unexpected failure", errors.New("decoder exploded"), `"level":"ERROR"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			svc := NewInventoryService(&fakeRepository{err: tt.err}, testArea(), 50, logger.New(logger.Config{Writer: &buf}))

			res, err := svc.Search(context.Background(), model.SearchCriteria{PrimaryType: "Excavator"})
			require.NoError(t, err)
			assert.Empty(t, res.Items)
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), "inventory search degraded to empty result")
		})
	}
}

func TestSearch_ConfigurationErrorReturned(t *testing.T) {
	svc := newTestService(&fakeRepository{err: repository.ErrNotConfigured})

	_, err := svc.Search(context.Background(), model.SearchCriteria{PrimaryType: "Excavator"})
	assert.True(t, repository.IsConfigurationError(err))
}

func TestFindBest(t *testing.T) {
	items := []model.EquipmentItem{
		{ID: "1", Make: "Caterpillar", Model: "308"},
		{ID: "2", Make: "Caterpillar", Model: "320"},
	}
	svc := newTestService(&fakeRepository{items: items})

	got, err := svc.FindBest(context.Background(), model.SearchCriteria{Make: "caterpillar", Model: "320", Single: true})
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)

	got, err = svc.FindBest(context.Background(), model.SearchCriteria{Make: "caterpillar", Model: "999"})
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	empty := newTestService(&fakeRepository{})
	_, err = empty.FindBest(context.Background(), model.SearchCriteria{Make: "caterpillar"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestHome(t *testing.T) {
	svc := newTestService(&fakeRepository{items: catalog()})

	listing, err := svc.Home(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(listing.Primary))
	for _, it := range listing.Primary {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"local", "remote-exc", "remote-skid"}, ids)
	assert.False(t, listing.Primary[0].BuyItNowOnly)
	assert.True(t, listing.Primary[1].BuyItNowOnly)
	assert.Empty(t, listing.More)
}

func TestListing_ServiceAreaIntent(t *testing.T) {
	repo := &fakeRepository{items: catalog()}
	svc := newTestService(repo)

	listing, err := svc.Listing(context.Background(), model.Intent{Kind: model.KindEquipment, Category: "mini-excavator"})
	require.NoError(t, err)

	assert.Len(t, listing.Primary, 3)
	assert.Empty(t, listing.More, "every general item is already in the primary section")
	assert.Contains(t, repo.keywordsQueried(), "mini excavator")
}

func TestListing_NamedCityIntent(t *testing.T) {
	svc := newTestService(&fakeRepository{items: catalog()})

	listing, err := svc.Listing(context.Background(), model.Intent{
		Kind: model.KindTypeCity, Category: "excavator", City: "baton-rouge", State: "la",
	})
	require.NoError(t, err)

	require.Len(t, listing.Primary, 2)
	for _, it := range listing.Primary {
		assert.True(t, it.BuyItNowOnly)
		assert.Equal(t, model.Location{City: "Baton Rouge", State: "LA"}, it.Location)
	}
	require.Len(t, listing.More, 1)
	assert.Equal(t, "local", listing.More[0].ID)
}

func TestListing_ServiceAreaCityIntent(t *testing.T) {
	svc := newTestService(&fakeRepository{items: catalog()})

	listing, err := svc.Listing(context.Background(), model.Intent{
		Kind: model.KindMakeModelCity, Category: "caterpillar", Subcategory: "320", City: "lafayette", State: "la",
	})
	require.NoError(t, err)

	require.Len(t, listing.Primary, 3)
	assert.False(t, listing.Primary[0].BuyItNowOnly)
	assert.Equal(t, "Origin local", listing.Primary[0].Location.City)
}

func TestListing_TopicIntentFansOut(t *testing.T) {
	repo := &fakeRepository{items: catalog()}
	svc := newTestService(repo)

	listing, err := svc.Listing(context.Background(), model.Intent{Kind: model.KindProject, Category: "pool-installation"})
	require.NoError(t, err)

	assert.Equal(t, []string{"dump truck", "excavator", "skid steer"}, repo.keywordsQueried())

	ids := make([]string, 0, len(listing.Primary))
	for _, it := range listing.Primary {
		ids = append(ids, it.ID)
		assert.True(t, it.BuyItNowOnly)
		assert.Equal(t, "Lafayette", it.Location.City)
	}
	assert.Equal(t, []string{"remote-exc", "remote-skid"}, ids)

	require.Len(t, listing.More, 1)
	assert.Equal(t, "local", listing.More[0].ID)
}

func TestListing_ConfigurationErrorPropagates(t *testing.T) {
	svc := newTestService(&fakeRepository{err: repository.ErrNotConfigured})

	_, err := svc.Listing(context.Background(), model.Intent{Kind: model.KindGuide, Category: "safety-tips"})
	assert.True(t, repository.IsConfigurationError(err))

	_, err = svc.Listing(context.Background(), model.Intent{Kind: model.KindEquipment, Category: "excavator"})
	assert.True(t, repository.IsConfigurationError(err))
}

func TestListing_UnplannedKindIsEmpty(t *testing.T) {
	repo := &fakeRepository{items: catalog()}
	svc := newTestService(repo)

	listing, err := svc.Listing(context.Background(), model.Intent{Kind: model.KindUnknown})
	require.NoError(t, err)
	assert.Empty(t, listing.Primary)
	assert.Empty(t, repo.calls)
}

func TestTopicListing_UpstreamFailureIsEmpty(t *testing.T) {
	svc := newTestService(&fakeRepository{err: errors.New("boom")})

	items, err := svc.TopicListing(context.Background(), []string{"excavator", "skid steer"})
	require.NoError(t, err)
	assert.Empty(t, items)
}
