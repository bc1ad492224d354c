package confidence

import (
	"fmt"
	"strings"
)

// Explain renders a deterministic human-readable summary of a confidence
// result for audit logs and the admin surface. It has no role in decision
// logic.
func Explain(r Result) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"Final confidence %.2f (ocr quality %.2f, similarity %.2f, model agreement %.2f; weighted %.0f/%.0f/%.0f).",
		r.FinalConfidence,
		r.Signals.OcrQuality,
		r.Signals.Similarity,
		r.Signals.ModelAgreement,
		ocrWeight*100, similarityWeight*100, agreementWeight*100,
	)

	if r.WasAdjusted {
		fmt.Fprintf(&b,
			" Adjusted from the classifier's self-reported %.2f.",
			r.OriginalAiConfidence,
		)
	}

	if r.CanAutoFile {
		b.WriteString(" Eligible for auto-filing.")
	} else if r.AutoFileBlockReason != nil {
		fmt.Fprintf(&b, " Auto-filing blocked: %s.", *r.AutoFileBlockReason)
	}

	return b.String()
}
