package structure

import (
	"context"

	"github.com/maemreyo/canonica/internal/llm"
	"github.com/maemreyo/canonica/internal/model"
)

const simplifiedSystemPrompt = `You convert raw extracted document text into structured JSON.

Return a single JSON object:
{"metadata": {"doc_type", "language", "confidence"}, "blocks": [...]}

Every block has "id" (unique string) and "type", one of: heading, paragraph, list.
- heading: "text" and "level" (1-6)
- paragraph: "text"
- list: "list": {"ordered": bool, "items": [{"text"}]}

"doc_type" is one of: general, article, report, invoice, receipt, contract, form, exam, letter.
Preserve the source order and all content. Output JSON only.`

// Simplified delegates to the same external service with a reduced
// contract (paragraphs, headings, lists only). It runs when the rich
// contract's own complexity is suspected of causing failures.
type Simplified struct {
	client *llm.Client
}

// NewSimplified creates the simplified external strategy
func NewSimplified(client *llm.Client) *Simplified {
	return &Simplified{client: client}
}

// Tier implements Strategy
func (s *Simplified) Tier() model.Tier {
	return model.TierSimplified
}

// Attempt implements Strategy
func (s *Simplified) Attempt(ctx context.Context, rawText string, opts model.Options) (*model.Document, error) {
	content, err := s.client.Complete(ctx, simplifiedSystemPrompt, rawText)
	if err != nil {
		return nil, model.NewExternalError(err, "simplified structuring call failed")
	}

	doc, err := decodeServiceDocument(content, opts)
	if err != nil {
		return nil, model.NewExternalError(err, "simplified structuring response rejected")
	}
	return doc, nil
}
