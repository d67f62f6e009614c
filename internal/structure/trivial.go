package structure

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/maemreyo/canonica/internal/model"
)

// trivialConfidence marks the terminal tier's minimal structural claim
const trivialConfidence = 0.3

// Trivial wraps the entire raw text as a single paragraph block. It is
// the terminal safety net: as long as the raw text is non-empty the
// fallback chain cannot end in total failure.
type Trivial struct{}

// NewTrivial creates the trivial strategy
func NewTrivial() *Trivial {
	return &Trivial{}
}

// Tier implements Strategy
func (s *Trivial) Tier() model.Tier {
	return model.TierTrivial
}

// Attempt implements Strategy
func (s *Trivial) Attempt(ctx context.Context, rawText string, opts model.Options) (*model.Document, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		// Unreachable behind the orchestrator's input gate
		return nil, model.NewInputError("cannot wrap empty text")
	}

	meta := model.Metadata{
		DocType:    opts.DocumentType,
		Language:   opts.Language,
		Confidence: trivialConfidence,
	}
	blocks := []model.Block{{
		ID:   uuid.NewString(),
		Type: model.BlockParagraph,
		Text: text,
	}}
	return model.NewDocument(meta, blocks), nil
}
