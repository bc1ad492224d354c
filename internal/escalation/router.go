package escalation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/internal/prompts"
	"github.com/vaultry/triage/pkg/formatting"
	"github.com/vaultry/triage/pkg/storage"
)

// Fallback values used when the pass 2 call cannot produce a usable answer.
const (
	fallbackSubtype         = "uncertain"
	fallbackPass2Confidence = 0.5
)

// Pass2Request carries one escalated document into the second pass.
// StorageKey locates the original blob for image-bearing documents;
// DocumentText carries the extracted text for everything else.
type Pass2Request struct {
	StorageKey   string
	DocumentText string
	FileName     string
	MimeType     string
	Candidates   []Candidate
}

// Pass2Result is the terminal outcome of an escalated classification.
// Pass2Used is always true, including on the fallback path.
type Pass2Result struct {
	Category   categories.Category `json:"category"`
	Subtype    *string             `json:"subtype"`
	Confidence float64             `json:"confidence"`
	Rationale  string              `json:"rationale,omitempty"`
	Pass2Used  bool                `json:"pass2_used"`
	Fallback   bool                `json:"fallback,omitempty"`
}

type pass2Response struct {
	Category   string  `json:"category"`
	Subtype    *string `json:"subtype"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Router executes the second classification pass against the configured
// agent. The caller owns timeout and cancellation via ctx; the router
// defines no retry policy of its own.
type Router struct {
	agent   gaconfig.AgentConfig
	storage storage.System
	logger  *slog.Logger
}

// NewRouter creates an escalation router.
func NewRouter(agentCfg gaconfig.AgentConfig, store storage.System, logger *slog.Logger) *Router {
	return &Router{
		agent:   agentCfg,
		storage: store,
		logger:  logger.With("system", "escalation"),
	}
}

// Pass2 invokes the classifier a second time with a forced choice among the
// supplied candidates. Image-bearing documents are passed at high fidelity;
// everything else sends extracted text. Escalation must always terminate
// with a usable result: any failure from the external call degrades to the
// top candidate at the fallback confidence, never to an error.
func (r *Router) Pass2(ctx context.Context, req Pass2Request) Pass2Result {
	result, err := r.analyze(ctx, req)
	if err != nil {
		r.logger.Warn("pass 2 analysis failed, using fallback",
			"file_name", req.FileName,
			"error", err,
		)
		return r.fallback(req)
	}

	return result
}

func (r *Router) analyze(ctx context.Context, req Pass2Request) (Pass2Result, error) {
	if len(req.Candidates) == 0 {
		return Pass2Result{}, fmt.Errorf("no candidates supplied")
	}

	a, err := agent.New(&r.agent)
	if err != nil {
		return Pass2Result{}, fmt.Errorf("create agent: %w", err)
	}

	allowed := candidateCategories(req.Candidates)
	system := prompts.Pass2System(allowed)

	var content string
	if format, ok := imageFormat(req.MimeType); ok {
		dataURI, err := r.encodeImage(ctx, req.StorageKey, format)
		if err != nil {
			return Pass2Result{}, err
		}

		prompt := system + "\n\n" + prompts.Pass2Image(req.FileName)
		resp, err := a.Vision(ctx, prompt, []string{dataURI})
		if err != nil {
			return Pass2Result{}, fmt.Errorf("vision call: %w", err)
		}
		content = resp.Content()
	} else {
		prompt := system + "\n\n" + prompts.Pass2Document(req.FileName, req.DocumentText)
		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return Pass2Result{}, fmt.Errorf("chat call: %w", err)
		}
		content = resp.Content()
	}

	parsed, err := formatting.Parse[pass2Response](content)
	if err != nil {
		return Pass2Result{}, fmt.Errorf("parse response: %w", err)
	}

	return Pass2Result{
		Category:   constrain(parsed.Category, allowed),
		Subtype:    parsed.Subtype,
		Confidence: clamp01(parsed.Confidence),
		Rationale:  parsed.Rationale,
		Pass2Used:  true,
	}, nil
}

func (r *Router) fallback(req Pass2Request) Pass2Result {
	category := categories.NeedsReview
	if len(req.Candidates) > 0 {
		category = req.Candidates[0].Category
	}

	subtype := fallbackSubtype
	return Pass2Result{
		Category:   category,
		Subtype:    &subtype,
		Confidence: fallbackPass2Confidence,
		Pass2Used:  true,
		Fallback:   true,
	}
}

func (r *Router) encodeImage(ctx context.Context, key string, format document.ImageFormat) (string, error) {
	reader, err := r.storage.Download(ctx, key)
	if err != nil {
		return "", fmt.Errorf("download document: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	dataURI, err := encoding.EncodeImageDataURI(data, format)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	return dataURI, nil
}

// imageFormat maps an image MIME type to its data-URI encoding format.
// Non-image documents (and unsupported image types) take the text path.
func imageFormat(mimeType string) (document.ImageFormat, bool) {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return document.PNG, true
	case "image/jpeg", "image/jpg":
		return document.JPEG, true
	default:
		var zero document.ImageFormat
		return zero, false
	}
}

func candidateCategories(candidates []Candidate) []categories.Category {
	out := make([]categories.Category, len(candidates))
	for i, c := range candidates {
		out[i] = c.Category
	}
	return out
}

// constrain validates the model's choice against the allowed set. Anything
// outside the closed enum or the candidate list collapses to needs_review.
func constrain(raw string, allowed []categories.Category) categories.Category {
	c := categories.Normalize(strings.TrimSpace(raw))
	for _, a := range allowed {
		if c == a {
			return c
		}
	}
	return categories.NeedsReview
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
