package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"rentalhub-storefront-api/internal/model"
	"rentalhub-storefront-api/internal/repository"
	"rentalhub-storefront-api/internal/seo"
	"rentalhub-storefront-api/pkg/apierror"
	"rentalhub-storefront-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// ErrNoMatch is returned by FindBest when the search came back empty.
var ErrNoMatch = errors.New("no matching equipment")

// InventoryService turns searches and resolved page intents into listings.
type InventoryService struct {
	repo           repository.InventoryRepository
	area           model.ServiceArea
	candidateLimit int
	validate       *validator.Validate
	log            *slog.Logger
}

// NewInventoryService creates the service. candidateLimit is the page size
// requested from the index for page listings, before radius and masking
// policies narrow it.
func NewInventoryService(repo repository.InventoryRepository, area model.ServiceArea, candidateLimit int, log *slog.Logger) *InventoryService {
	if candidateLimit <= 0 {
		candidateLimit = 96
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &InventoryService{
		repo:           repo,
		area:           area,
		candidateLimit: candidateLimit,
		validate:       v,
		log:            log.With("component", "inventory_service"),
	}
}

// Area returns the configured service area.
func (s *InventoryService) Area() model.ServiceArea {
	return s.area
}

// Validate normalizes c in place and checks it. Failures are returned as
// *apierror.Error with per-field details.
func (s *InventoryService) Validate(c *model.SearchCriteria) error {
	c.PrimaryType = strings.TrimSpace(c.PrimaryType)
	c.Make = strings.TrimSpace(c.Make)
	c.Model = strings.TrimSpace(c.Model)
	c.CatClass = strings.TrimSpace(c.CatClass)
	keywords := c.Keywords[:0:0]
	for _, k := range c.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	c.Keywords = keywords

	if err := s.validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]apierror.FieldError, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, apierror.FieldError{
					Field:   strings.TrimPrefix(fe.Namespace(), "SearchCriteria."),
					Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
				})
			}
			return apierror.ValidationError("invalid search criteria", details...)
		}
		return apierror.BadRequest("invalid search criteria")
	}

	if c.MinCapacity != nil && c.MaxCapacity != nil && *c.MinCapacity > *c.MaxCapacity {
		return apierror.ValidationError("invalid search criteria", apierror.FieldError{
			Field:   "minCapacity",
			Message: "must not exceed maxCapacity",
		})
	}
	if !c.HasTerms() && c.Location == nil {
		return apierror.BadRequest("at least one search criterion is required")
	}
	return nil
}

// Search validates c and queries the inventory. Upstream failures degrade
// to an empty result carrying Error; configuration errors are returned.
func (s *InventoryService) Search(ctx context.Context, c model.SearchCriteria) (*model.SearchResult, error) {
	if err := s.Validate(&c); err != nil {
		return nil, err
	}
	return s.query(ctx, c)
}

// FindBest returns the item whose make and model equal the criteria's,
// ignoring case, or the first result when none does.
func (s *InventoryService) FindBest(ctx context.Context, c model.SearchCriteria) (*model.EquipmentItem, error) {
	res, err := s.Search(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return nil, ErrNoMatch
	}
	if c.Make != "" && c.Model != "" {
		for i := range res.Items {
			item := res.Items[i]
			if strings.EqualFold(item.Make, strings.TrimSpace(c.Make)) && strings.EqualFold(item.Model, strings.TrimSpace(c.Model)) {
				return &item, nil
			}
		}
	}
	item := res.Items[0]
	return &item, nil
}

// Listing resolves the inventory shown on the page for intent.
func (s *InventoryService) Listing(ctx context.Context, intent model.Intent) (model.Listing, error) {
	if intent.IsTopic() {
		primary, err := s.TopicListing(ctx, seo.TopicKeywords(intent))
		if err != nil {
			return model.Listing{}, err
		}
		return s.withMore(ctx, primary)
	}

	criteria, policy, ok := s.plan(intent)
	if !ok {
		return model.Listing{Primary: []model.EquipmentItem{}, More: []model.EquipmentItem{}}, nil
	}

	var primary, general []model.EquipmentItem
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.query(gctx, criteria)
		if err != nil {
			return err
		}
		primary = ResolveListing(s.area, res.Items, policy)
		return nil
	})
	g.Go(func() error {
		var err error
		general, err = s.serviceArea(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Listing{}, err
	}

	return model.Listing{Primary: primary, More: ExcludeShown(general, primary, SecondarySectionLimit)}, nil
}

// TopicListing queries each keyword separately, merges the results by id
// and returns the masked buy-it-now pool narrowed to the keywords. Queries
// run concurrently and each waits on the client's rate limiter.
func (s *InventoryService) TopicListing(ctx context.Context, keywords []string) ([]model.EquipmentItem, error) {
	if len(keywords) == 0 {
		res, err := s.query(ctx, model.SearchCriteria{Limit: s.candidateLimit})
		if err != nil {
			return nil, err
		}
		return TopicPool(s.area, res.Items, nil), nil
	}

	results := make([][]model.EquipmentItem, len(keywords))
	g, gctx := errgroup.WithContext(ctx)
	for i, kw := range keywords {
		i, kw := i, kw
		g.Go(func() error {
			res, err := s.query(gctx, model.SearchCriteria{Keywords: []string{kw}, Limit: s.candidateLimit})
			if err != nil {
				return fmt.Errorf("topic query %q: %w", kw, err)
			}
			results[i] = res.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return TopicPool(s.area, mergeByID(results...), keywords), nil
}

// Home returns the unfiltered service area listing.
func (s *InventoryService) Home(ctx context.Context) (model.Listing, error) {
	items, err := s.serviceArea(ctx)
	if err != nil {
		return model.Listing{}, err
	}
	return model.Listing{Primary: items, More: []model.EquipmentItem{}}, nil
}

func (s *InventoryService) withMore(ctx context.Context, primary []model.EquipmentItem) (model.Listing, error) {
	general, err := s.serviceArea(ctx)
	if err != nil {
		return model.Listing{}, err
	}
	return model.Listing{Primary: primary, More: ExcludeShown(general, primary, SecondarySectionLimit)}, nil
}

func (s *InventoryService) serviceArea(ctx context.Context) ([]model.EquipmentItem, error) {
	res, err := s.query(ctx, model.SearchCriteria{Limit: s.candidateLimit})
	if err != nil {
		return nil, err
	}
	return ResolveListing(s.area, res.Items, ListingPolicy{Context: ServiceAreaContext}), nil
}

// plan maps a non-topic intent onto index criteria and a listing policy.
func (s *InventoryService) plan(intent model.Intent) (model.SearchCriteria, ListingPolicy, bool) {
	c := model.SearchCriteria{Limit: s.candidateLimit}
	policy := ListingPolicy{Context: ServiceAreaContext}

	switch intent.Kind {
	case model.KindEquipment:
		c.Keywords = []string{seo.Words(intent.Category)}
	case model.KindBrand, model.KindMakeModel:
		c.Make = seo.Humanize(intent.Category)
		if intent.Subcategory != "" {
			c.Keywords = []string{seo.Words(intent.Subcategory)}
		}
	case model.KindMakeModelCity:
		c.Make = seo.Humanize(intent.Category)
		c.Keywords = []string{seo.Words(intent.Subcategory)}
		policy = s.cityPolicy(intent)
	case model.KindTypeCity:
		c.Keywords = []string{seo.Words(intent.Category)}
		policy = s.cityPolicy(intent)
	default:
		return c, policy, false
	}
	return c, policy, true
}

// cityPolicy lists the service area city like any service area page and
// any other city as buy-it-now only.
func (s *InventoryService) cityPolicy(intent model.Intent) ListingPolicy {
	if intent.City == seo.Slugify(s.area.City) && strings.EqualFold(intent.State, s.area.State) {
		return ListingPolicy{Context: ServiceAreaContext}
	}
	return ListingPolicy{
		Context: NamedCityContext,
		City:    seo.Humanize(intent.City),
		State:   strings.ToUpper(intent.State),
	}
}

// query calls the repository. Upstream failures are logged and degrade to
// an empty result; only configuration errors are returned.
func (s *InventoryService) query(ctx context.Context, c model.SearchCriteria) (*model.SearchResult, error) {
	res, err := s.repo.Search(ctx, c)
	if err != nil {
		if repository.IsConfigurationError(err) {
			return nil, err
		}
		level := slog.LevelError
		if repository.IsUpstreamError(err) {
			level = slog.LevelWarn
		}
		logger.FromContext(ctx, s.log).Log(ctx, level, "inventory search degraded to empty result", slog.String("error", err.Error()))
		if res == nil {
			res = &model.SearchResult{Error: err.Error()}
		}
		res.Items = []model.EquipmentItem{}
		res.TotalCount = 0
		return res, nil
	}
	if res == nil {
		return &model.SearchResult{Items: []model.EquipmentItem{}}, nil
	}
	return res, nil
}
