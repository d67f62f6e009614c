package structure

import (
	"context"
	"fmt"

	"github.com/maemreyo/canonica/internal/llm"
	"github.com/maemreyo/canonica/internal/model"
)

const richSystemPrompt = `You convert raw extracted document text into structured JSON.

Return a single JSON object:
{"metadata": {"title", "author", "subject", "keywords", "doc_type", "language", "confidence"}, "blocks": [...]}

Every block has "id" (unique string) and "type", one of: heading, paragraph, list, table, image, code, blockquote, choice-question, divider.
- heading: "text" and "level" (1-6)
- paragraph, blockquote, code: "text" (code may add "language")
- list: "list": {"ordered": bool, "items": [{"text", optional "sublist"}]}
- table: "table": {"header": [cells], "rows": [[cells]]}; each cell: {"text", "row_span" >= 1, "col_span" >= 1}
- image: "image": {"source", "alt", "caption"}
- choice-question: "question": {"prompt", "options" (2+), "answer"}
- divider: no payload

"doc_type" is one of: general, article, report, invoice, receipt, contract, form, exam, letter.
"confidence" is your structural confidence in [0,1].
Preserve the source order and all content. Output JSON only.`

// Rich delegates to the external structuring service with the full
// extraction contract: every block type, tables with spans, metadata
// and confidence. It fails on network errors, timeouts and malformed
// responses; the orchestrator advances past those.
type Rich struct {
	client *llm.Client
}

// NewRich creates the rich external strategy
func NewRich(client *llm.Client) *Rich {
	return &Rich{client: client}
}

// Tier implements Strategy
func (s *Rich) Tier() model.Tier {
	return model.TierRich
}

// Attempt implements Strategy
func (s *Rich) Attempt(ctx context.Context, rawText string, opts model.Options) (*model.Document, error) {
	user := rawText
	if opts.Language != "" || opts.DocumentType != "" {
		user = fmt.Sprintf("(language hint: %s, document type hint: %s)\n\n%s", opts.Language, opts.DocumentType, rawText)
	}

	content, err := s.client.Complete(ctx, richSystemPrompt, user)
	if err != nil {
		return nil, model.NewExternalError(err, "rich structuring call failed")
	}

	doc, err := decodeServiceDocument(content, opts)
	if err != nil {
		return nil, model.NewExternalError(err, "rich structuring response rejected")
	}
	return doc, nil
}
