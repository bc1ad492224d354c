package classifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/internal/documents"
	"github.com/vaultry/triage/internal/goldset"
	"github.com/vaultry/triage/internal/similarity"
	"github.com/vaultry/triage/internal/workflow"
	"github.com/vaultry/triage/pkg/pagination"
	"github.com/vaultry/triage/pkg/query"
	"github.com/vaultry/triage/pkg/repository"
	"github.com/vaultry/triage/pkg/storage"
)

const classificationColumns = `id, document_id, category, subtype, final_confidence,
		ai_category, ai_subtype, ai_confidence, signals, can_auto_file,
		auto_file_block_reason, was_adjusted, pass2_used, escalation_reason,
		escalation_priority, explanation, model_name, provider_name,
		classified_at, corrected_by, corrected_at`

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	docs       documents.System
	goldset    goldset.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a classification repository implementing the System interface.
// It internally constructs the workflow runtime from the provided dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	logger *slog.Logger,
	pagination pagination.Config,
	store storage.System,
	docs documents.System,
	gs goldset.System,
	engine *similarity.Engine,
) System {
	rt := &workflow.Runtime{
		Agent:      agent,
		Storage:    store,
		GoldSet:    gs,
		Similarity: engine,
		Logger:     logger.With("workflow", "triage"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		docs:       docs,
		goldset:    gs,
		logger:     logger.With("system", "classifications"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Classification], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Category", "Explanation")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClassification)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Classification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) FindByDocument(ctx context.Context, documentID uuid.UUID) (*Classification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("DocumentID", documentID)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Classify(ctx context.Context, documentID uuid.UUID, cmd ClassifyCommand) (*Classification, error) {
	if cmd.AiConfidence < 0 || cmd.AiConfidence > 1 {
		return nil, ErrInvalidConfidence
	}

	doc, err := r.docs.Find(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if !doc.Extracted() {
		return nil, ErrNotExtracted
	}

	input := workflow.Input{
		DocumentID:     doc.ID,
		StorageKey:     doc.StorageKey,
		FileName:       doc.Filename,
		MimeType:       doc.ContentType,
		DocumentText:   doc.ExtractedText,
		OcrConfidence:  *doc.OcrConfidence,
		Metadata:       doc.Metadata,
		RawFields:      doc.RawFields,
		AiCategory:     cmd.AiCategory,
		AiSubtype:      cmd.AiSubtype,
		AiConfidence:   cmd.AiConfidence,
		OrganizationID: doc.OrganizationID,
	}

	result, err := workflow.Execute(ctx, r.rt, input)
	if err != nil {
		return nil, fmt.Errorf("classify document %s: %w", documentID, err)
	}

	signalsJSON, err := json.Marshal(result.Confidence.Signals)
	if err != nil {
		return nil, fmt.Errorf("marshal signals: %w", err)
	}

	// Escalated documents always go to a human, even when the second pass
	// comes back confident.
	status := documents.StatusReview
	if result.Confidence.CanAutoFile && result.Pass2 == nil {
		status = documents.StatusClassified
	}

	upsertQ := fmt.Sprintf(`
		INSERT INTO classifications(
			document_id, category, subtype, final_confidence,
			ai_category, ai_subtype, ai_confidence, signals, can_auto_file,
			auto_file_block_reason, was_adjusted, pass2_used,
			escalation_reason, escalation_priority, explanation,
			model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (document_id) DO UPDATE SET
			category = EXCLUDED.category,
			subtype = EXCLUDED.subtype,
			final_confidence = EXCLUDED.final_confidence,
			ai_category = EXCLUDED.ai_category,
			ai_subtype = EXCLUDED.ai_subtype,
			ai_confidence = EXCLUDED.ai_confidence,
			signals = EXCLUDED.signals,
			can_auto_file = EXCLUDED.can_auto_file,
			auto_file_block_reason = EXCLUDED.auto_file_block_reason,
			was_adjusted = EXCLUDED.was_adjusted,
			pass2_used = EXCLUDED.pass2_used,
			escalation_reason = EXCLUDED.escalation_reason,
			escalation_priority = EXCLUDED.escalation_priority,
			explanation = EXCLUDED.explanation,
			model_name = EXCLUDED.model_name,
			provider_name = EXCLUDED.provider_name,
			classified_at = NOW(),
			corrected_by = NULL,
			corrected_at = NULL
		RETURNING %s`, classificationColumns)

	upsertArgs := []any{
		documentID,
		string(result.Category),
		result.Subtype,
		result.FinalConfidence,
		string(input.Category()),
		cmd.AiSubtype,
		cmd.AiConfidence,
		signalsJSON,
		result.Confidence.CanAutoFile,
		result.Confidence.AutoFileBlockReason,
		result.Confidence.WasAdjusted,
		result.Pass2Used(),
		result.Decision.Reason,
		string(result.Decision.Priority),
		result.Explanation,
		r.rt.Agent.Model.Name,
		r.rt.Agent.Provider.Name,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Classification, error) {
		cl, err := repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanClassification)
		if err != nil {
			return Classification{}, fmt.Errorf("upsert classification: %w", err)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2",
			status, documentID,
		); err != nil {
			return Classification{}, fmt.Errorf("update document status: %w", err)
		}

		return cl, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document classified",
		"id", c.ID,
		"document_id", documentID,
		"category", c.Category,
		"final_confidence", c.FinalConfidence,
		"can_auto_file", c.CanAutoFile,
		"pass2_used", c.Pass2Used,
	)
	return &c, nil
}

func (r *repo) Correct(ctx context.Context, id uuid.UUID, cmd CorrectCommand) (*Classification, error) {
	category, subtype, err := resolveCorrection(cmd)
	if err != nil {
		return nil, err
	}

	correctQ := fmt.Sprintf(`
		UPDATE classifications
		SET category = $1, subtype = $2, corrected_by = $3, corrected_at = NOW()
		WHERE id = $4
		RETURNING %s`, classificationColumns)

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Classification, error) {
		cl, err := repository.QueryOne(ctx, tx, correctQ,
			[]any{string(category), subtype, cmd.CorrectedBy, id},
			scanClassification,
		)
		if err != nil {
			return Classification{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2",
			documents.StatusFiled, cl.DocumentID,
		); err != nil {
			return Classification{}, fmt.Errorf("update document status: %w", err)
		}

		return cl, nil
	})

	if err != nil {
		return nil, err
	}

	r.recordExample(ctx, &c, category, subtype, cmd)

	r.logger.Info("classification corrected",
		"id", c.ID,
		"category", c.Category,
		"corrected_by", cmd.CorrectedBy,
	)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM classifications WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classification deleted", "id", id)
	return nil
}

// recordExample feeds the correction into the gold set. Corrections are
// best-effort feedback: duplicates and store failures never fail the
// correction itself.
func (r *repo) recordExample(
	ctx context.Context,
	c *Classification,
	category categories.Category,
	subtype *string,
	cmd CorrectCommand,
) {
	doc, err := r.docs.Find(ctx, c.DocumentID)
	if err != nil {
		r.logger.Warn("gold set example skipped, document lookup failed",
			"document_id", c.DocumentID,
			"error", err,
		)
		return
	}

	_, err = r.goldset.Add(ctx, goldset.AddCommand{
		Category:       category,
		Subtype:        subtype,
		OcrText:        doc.ExtractedText,
		FolderPath:     cmd.FolderPath,
		UserID:         cmd.UserID,
		OrganizationID: doc.OrganizationID,
		Source:         goldset.SourceUserCorrection,
	})

	switch {
	case errors.Is(err, goldset.ErrDuplicate):
		r.logger.Debug("gold set example already recorded", "document_id", c.DocumentID)
	case err != nil:
		r.logger.Warn("gold set example failed", "document_id", c.DocumentID, "error", err)
	}
}

// resolveCorrection resolves the corrected category and subtype: an explicit
// category wins, then folder path inference. A correction that resolves
// neither is rejected.
func resolveCorrection(cmd CorrectCommand) (categories.Category, *string, error) {
	var category categories.Category

	switch {
	case cmd.Category != nil:
		parsed, err := categories.Parse(*cmd.Category)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrInvalidCorrection, err)
		}
		category = parsed
	case cmd.FolderPath != "":
		inferred := goldset.InferCategoryFromPath(cmd.FolderPath)
		if inferred == nil {
			return "", nil, ErrInvalidCorrection
		}
		category = *inferred
	default:
		return "", nil, ErrInvalidCorrection
	}

	subtype := cmd.Subtype
	if subtype == nil && cmd.FolderPath != "" {
		subtype = goldset.InferSubtypeFromPath(cmd.FolderPath)
	}

	return category, subtype, nil
}
