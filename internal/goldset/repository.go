package goldset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/pkg/pagination"
	"github.com/vaultry/triage/pkg/query"
	"github.com/vaultry/triage/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a gold set repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "goldset"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Add(ctx context.Context, cmd AddCommand) (*Example, error) {
	if strings.TrimSpace(cmd.OcrText) == "" {
		return nil, ErrEmptyTextSample
	}
	if !categories.Valid(cmd.Category) {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidExample, cmd.Category)
	}
	if cmd.Source == "" {
		cmd.Source = SourceUserCorrection
	}

	// Check-then-insert is not atomic: concurrent corrections for the same
	// near-duplicate text may both pass the check and both insert. The store
	// backs similarity search, not exact dedup, so the redundancy is accepted.
	dupQ := `
		SELECT EXISTS(
			SELECT 1 FROM gold_set_examples
			WHERE category = $1
			  AND subtype IS NOT DISTINCT FROM $2
			  AND organization_id IS NOT DISTINCT FROM $3
			  AND left(text_sample, char_length($4)) = $4
		)`

	var exists bool
	err := r.db.QueryRowContext(
		ctx, dupQ,
		cmd.Category, cmd.Subtype, cmd.OrganizationID, cmd.DedupePrefix(),
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check duplicate example: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	insertQ := `
		INSERT INTO gold_set_examples(
			category, subtype, text_sample, folder_path,
			source, organization_id, user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, category, subtype, text_sample, folder_path,
				  source, organization_id, user_id, created_at`

	insertArgs := []any{
		cmd.Category,
		cmd.Subtype,
		cmd.Sample(),
		cmd.FolderPath,
		cmd.Source,
		cmd.OrganizationID,
		cmd.UserID,
	}

	e, err := repository.QueryOne(ctx, r.db, insertQ, insertArgs, scanExample)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("gold set example added",
		"id", e.ID,
		"category", e.Category,
		"source", e.Source,
	)
	return &e, nil
}

func (r *repo) Examples(
	ctx context.Context,
	category categories.Category,
	organizationID *uuid.UUID,
	limit int,
) ([]Example, error) {
	if limit <= 0 {
		limit = DefaultExampleLimit
	}

	q := `
		SELECT id, category, subtype, text_sample, folder_path,
			   source, organization_id, user_id, created_at
		FROM gold_set_examples
		WHERE category = $1
		  AND (organization_id IS NULL OR organization_id = $2)
		ORDER BY created_at DESC
		LIMIT $3`

	examples, err := repository.QueryMany(
		ctx, r.db, q,
		[]any{category, organizationID, limit},
		scanExample,
	)
	if err != nil {
		return nil, fmt.Errorf("query gold set examples: %w", err)
	}

	return examples, nil
}

func (r *repo) Stats(ctx context.Context, organizationID *uuid.UUID) (map[categories.Category]int, error) {
	q := `
		SELECT category, COUNT(*)
		FROM gold_set_examples
		WHERE organization_id IS NULL OR organization_id = $1
		GROUP BY category`

	rows, err := r.db.QueryContext(ctx, q, organizationID)
	if err != nil {
		return nil, fmt.Errorf("query gold set stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[categories.Category]int)
	for rows.Next() {
		var category categories.Category
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scan gold set stats: %w", err)
		}
		stats[category] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read gold set stats: %w", err)
	}

	return stats, nil
}

func (r *repo) Count(ctx context.Context, category categories.Category, organizationID *uuid.UUID) (int, error) {
	q := `
		SELECT COUNT(*)
		FROM gold_set_examples
		WHERE category = $1
		  AND (organization_id IS NULL OR organization_id = $2)`

	var count int
	if err := r.db.QueryRowContext(ctx, q, category, organizationID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count gold set examples: %w", err)
	}

	return count, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Example], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "TextSample", "FolderPath")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count gold set examples: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	examples, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanExample)
	if err != nil {
		return nil, fmt.Errorf("query gold set examples: %w", err)
	}

	result := pagination.NewPageResult(examples, total, page.Page, page.PageSize)
	return &result, nil
}
