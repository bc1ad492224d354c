// Package prompts composes the instructions sent to the classification
// model during the escalated second pass.
package prompts

import (
	"fmt"
	"strings"

	"github.com/vaultry/triage/internal/categories"
)

// Pass2System builds the system instruction for the constrained second-pass
// classification. The model must choose from the supplied candidates (or
// needs_review) and is explicitly forbidden from inventing new categories.
func Pass2System(candidates []categories.Category) string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = string(c)
	}

	var b strings.Builder
	b.WriteString("You are performing a careful second-pass review of a document classification.\n")
	b.WriteString("A first analysis was inconclusive. Examine the document thoroughly and choose\n")
	b.WriteString("the single best category from this list, and only this list:\n\n")

	for _, name := range names {
		fmt.Fprintf(&b, "  - %s\n", name)
	}

	b.WriteString("\nIf none of the listed categories fits, choose needs_review.\n")
	b.WriteString("Never invent a category outside the list.\n\n")
	b.WriteString("Respond with JSON only:\n")
	b.WriteString(`{"category": "<one of the listed categories>", "subtype": "<specific document type or null>", "confidence": <0.0-1.0>, "rationale": "<one sentence>"}`)

	return b.String()
}

// Pass2Document builds the user message for a text-only second pass.
func Pass2Document(fileName, documentText string) string {
	var b strings.Builder

	if fileName != "" {
		fmt.Fprintf(&b, "File name: %s\n\n", fileName)
	}

	b.WriteString("Extracted document text:\n\n")
	b.WriteString(documentText)

	return b.String()
}

// Pass2Image builds the user message accompanying a high-fidelity image
// payload.
func Pass2Image(fileName string) string {
	if fileName == "" {
		return "Classify the attached document image."
	}
	return fmt.Sprintf("Classify the attached document image (file name: %s).", fileName)
}
