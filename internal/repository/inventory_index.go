package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rentalhub-storefront-api/internal/geo"
	"rentalhub-storefront-api/internal/metrics"
	"rentalhub-storefront-api/internal/model"

	"golang.org/x/time/rate"
)

// maxPerPage is the largest page the index serves.
const maxPerPage = 250

// availabilityFilter is applied to every query: only available or
// onboarding machines that need no admin approval. The index has no
// predicate for a missing field, so the approval status check is done on
// the decoded records by Approved.
const availabilityFilter = "status:=[`Available`,`Onboarding`] && requiresAdminApproval:!=true"

// IndexConfig holds the search index connection settings.
type IndexConfig struct {
	BaseURL             string
	APIKey              string
	Timeout             time.Duration
	DefaultLimit        int
	CandidateMultiplier int
	ImageBaseURL        string

	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// IndexInventoryRepository implements InventoryRepository over the index's
// HTTP search API.
type IndexInventoryRepository struct {
	cfg     IndexConfig
	client  *http.Client
	limiter *rate.Limiter
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewIndexInventoryRepository creates the index client. limiter bounds
// outbound calls and is shared by every caller; nil disables throttling.
func NewIndexInventoryRepository(cfg IndexConfig, limiter *rate.Limiter, m *metrics.Metrics, log *slog.Logger) *IndexInventoryRepository {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 24
	}
	if cfg.CandidateMultiplier < 1 {
		cfg.CandidateMultiplier = 1
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &IndexInventoryRepository{
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		metrics: m,
		log:     log.With("component", "inventory_index"),
	}
}

type searchResponse struct {
	Items []map[string]any `json:"items"`
	Total int              `json:"total"`
}

// Search queries the index. Radius filtering is done here on a widened
// candidate set, never by the index.
func (r *IndexInventoryRepository) Search(ctx context.Context, c model.SearchCriteria) (*model.SearchResult, error) {
	if strings.TrimSpace(r.cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return r.fail("throttled", &UpstreamError{Err: err})
		}
	}

	limit := c.Limit
	if limit <= 0 {
		limit = r.cfg.DefaultLimit
	}
	perPage := limit
	if c.Location != nil {
		perPage = limit * r.cfg.CandidateMultiplier
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.searchURL(c, perPage), nil)
	if err != nil {
		return r.fail("request_error", &UpstreamError{Err: err})
	}
	req.Header.Set("X-API-Key", r.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return r.fail("network_error", &UpstreamError{Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return r.fail("http_error", &UpstreamError{
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(snippet))),
		})
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var body searchResponse
	if err := dec.Decode(&body); err != nil {
		return r.fail("decode_error", &UpstreamError{Err: fmt.Errorf("decode response: %w", err)})
	}

	items := make([]model.EquipmentItem, 0, len(body.Items))
	unapproved := 0
	for _, raw := range body.Items {
		if !Approved(raw) {
			unapproved++
			continue
		}
		item, ok := NormalizeItem(raw, r.cfg.ImageBaseURL)
		if !ok {
			continue
		}
		if c.Location != nil && (item.Coordinates == nil || !geo.WithinFilter(*c.Location, *item.Coordinates)) {
			continue
		}
		items = append(items, item)
	}

	total := max(body.Total-unapproved, 0)
	if c.Location != nil {
		total = len(items)
	}
	if len(items) > limit {
		items = items[:limit]
	}

	r.metrics.Upstream("ok")
	r.log.Debug("index search",
		slog.Int("returned", len(items)),
		slog.Int("total", total),
		slog.Duration("took", time.Since(start)),
	)

	return &model.SearchResult{Items: items, TotalCount: total}, nil
}

func (r *IndexInventoryRepository) fail(outcome string, err *UpstreamError) (*model.SearchResult, error) {
	r.metrics.Upstream(outcome)
	r.log.Warn("index search failed", slog.String("outcome", outcome), slog.String("error", err.Error()))
	return &model.SearchResult{Items: []model.EquipmentItem{}, Error: err.Error()}, err
}

func (r *IndexInventoryRepository) searchURL(c model.SearchCriteria, perPage int) string {
	q := url.Values{}
	q.Set("q", searchText(c.Keywords))
	q.Set("filter_by", BuildFilter(c))
	q.Set("facet_by", "primaryType,make")
	q.Set("per_page", strconv.Itoa(perPage))
	return r.cfg.BaseURL + "/v1/machines/search?" + q.Encode()
}

func searchText(keywords []string) string {
	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			terms = append(terms, k)
		}
	}
	if len(terms) == 0 {
		return "*"
	}
	return strings.Join(terms, " ")
}

// BuildFilter renders the index filter expression: the fixed availability
// predicates followed by the caller's equality and range predicates.
func BuildFilter(c model.SearchCriteria) string {
	parts := []string{availabilityFilter}

	eq := func(field, value string) {
		value = strings.TrimSpace(strings.ReplaceAll(value, "`", ""))
		if value != "" {
			parts = append(parts, field+":=`"+value+"`")
		}
	}
	eq("primaryType", c.PrimaryType)
	eq("make", c.Make)
	eq("model", c.Model)
	eq("catClass", c.CatClass)

	if c.MinCapacity != nil {
		parts = append(parts, "capacity:>="+strconv.FormatFloat(*c.MinCapacity, 'f', -1, 64))
	}
	if c.MaxCapacity != nil {
		parts = append(parts, "capacity:<="+strconv.FormatFloat(*c.MaxCapacity, 'f', -1, 64))
	}

	return strings.Join(parts, " && ")
}

var _ InventoryRepository = (*IndexInventoryRepository)(nil)
