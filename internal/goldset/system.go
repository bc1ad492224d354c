package goldset

import (
	"context"

	"github.com/google/uuid"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/pkg/pagination"
)

// System defines the public contract for gold set domain operations.
type System interface {
	Handler() *Handler

	// Add records a confirmed example. Returns ErrDuplicate when an example
	// with the same category, subtype, organization scope, and leading text
	// prefix already exists; callers treating corrections as best-effort
	// feedback should log and continue on that error.
	Add(ctx context.Context, cmd AddCommand) (*Example, error)

	// Examples returns up to limit examples for the category, most recent
	// first: the tenant's own examples unioned with global ones. A nil
	// organizationID fetches global examples only. A non-positive limit
	// falls back to DefaultExampleLimit.
	Examples(ctx context.Context, category categories.Category, organizationID *uuid.UUID, limit int) ([]Example, error)

	// Stats returns the per-category example count for the tenant plus
	// global scope.
	Stats(ctx context.Context, organizationID *uuid.UUID) (map[categories.Category]int, error)

	// Count returns the example count for one category, tenant plus global.
	Count(ctx context.Context, category categories.Category, organizationID *uuid.UUID) (int, error)

	// List returns a paginated page of examples for the admin surface.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Example], error)
}
