package classifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/vaultry/triage/pkg/pagination"
)

// System defines the public contract for classification domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Classification], error)

	Find(ctx context.Context, id uuid.UUID) (*Classification, error)
	FindByDocument(ctx context.Context, documentID uuid.UUID) (*Classification, error)

	// Classify runs the decision pipeline for an extracted document and
	// upserts the resulting decision.
	Classify(ctx context.Context, documentID uuid.UUID, cmd ClassifyCommand) (*Classification, error)

	// Correct applies a human correction, transitions the document to
	// filed, and records the corrected example in the gold set.
	Correct(ctx context.Context, id uuid.UUID, cmd CorrectCommand) (*Classification, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
