package repository

import (
	"context"

	"rentalhub-storefront-api/internal/model"
)

// InventoryRepository reads equipment from the external search index.
type InventoryRepository interface {
	// Search returns items matching c. Upstream failures return an empty
	// result carrying Error together with an *UpstreamError; a missing API
	// key returns ErrNotConfigured and no result.
	Search(ctx context.Context, c model.SearchCriteria) (*model.SearchResult, error)
}
