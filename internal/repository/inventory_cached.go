package repository

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"rentalhub-storefront-api/internal/cache"
	"rentalhub-storefront-api/internal/geo"
	"rentalhub-storefront-api/internal/metrics"
	"rentalhub-storefront-api/internal/model"
)

// CachedInventoryRepository is a read-through cache in front of another
// InventoryRepository. Only successful results are stored.
type CachedInventoryRepository struct {
	next    InventoryRepository
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewCachedInventoryRepository wraps next with c.
func NewCachedInventoryRepository(next InventoryRepository, c cache.Cache, ttl time.Duration, m *metrics.Metrics, log *slog.Logger) *CachedInventoryRepository {
	return &CachedInventoryRepository{
		next:    next,
		cache:   c,
		ttl:     ttl,
		metrics: m,
		log:     log.With("component", "inventory_cache"),
	}
}

// Search serves c from the cache or fills it from the wrapped repository.
func (r *CachedInventoryRepository) Search(ctx context.Context, c model.SearchCriteria) (*model.SearchResult, error) {
	key := SearchKey(c)

	var fresh *model.SearchResult
	data, err := r.cache.GetOrSet(ctx, key, r.ttl, func() ([]byte, error) {
		res, err := r.next.Search(ctx, c)
		fresh = res
		if err != nil {
			return nil, err
		}
		if res == nil || res.Error != "" {
			return nil, errUncacheable
		}
		return json.Marshal(res)
	})
	if errors.Is(err, errUncacheable) {
		return fresh, nil
	}
	if err != nil {
		return fresh, err
	}

	if fresh != nil {
		r.metrics.Cache("miss")
		return fresh, nil
	}

	var cached model.SearchResult
	if err := json.Unmarshal(data, &cached); err != nil {
		r.log.Warn("discarding unreadable cache entry", slog.String("key", key), slog.String("error", err.Error()))
		r.metrics.Cache("corrupt")
		return r.next.Search(ctx, c)
	}
	r.metrics.Cache("hit")
	return &cached, nil
}

// errUncacheable keeps error-carrying results out of the cache.
var errUncacheable = errors.New("result not cacheable")

// SearchKey is the cache key for c. Keyword order is irrelevant and a
// location filter contributes its geohash cell and radius.
func SearchKey(c model.SearchCriteria) string {
	keywords := make([]string, 0, len(c.Keywords))
	for _, k := range c.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	sort.Strings(keywords)

	var b strings.Builder
	fmt.Fprintf(&b, "t=%s|mk=%s|md=%s|cc=%s|kw=%s|lim=%d",
		c.PrimaryType, c.Make, c.Model, c.CatClass, strings.Join(keywords, ","), c.Limit)
	if c.MinCapacity != nil {
		fmt.Fprintf(&b, "|min=%g", *c.MinCapacity)
	}
	if c.MaxCapacity != nil {
		fmt.Fprintf(&b, "|max=%g", *c.MaxCapacity)
	}
	if c.Location != nil {
		cell := geo.Geohash(model.Coordinates{Lat: c.Location.Lat, Lon: c.Location.Lon})
		fmt.Fprintf(&b, "|geo=%s/%g", cell, c.Location.RadiusMiles)
	}

	sum := sha1.Sum([]byte(b.String()))
	return "inventory:search:" + hex.EncodeToString(sum[:])
}

var _ InventoryRepository = (*CachedInventoryRepository)(nil)
