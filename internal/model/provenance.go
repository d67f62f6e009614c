package model

import "time"

// Tier identifies one structuring strategy in the fixed fallback order
type Tier string

const (
	TierRich       Tier = "rich"
	TierSimplified Tier = "simplified"
	TierHeuristic  Tier = "heuristic"
	TierTrivial    Tier = "trivial"
)

// FallbackAttempt records one tier attempt for observability.
// The full sequence is attached as provenance to a finished run.
type FallbackAttempt struct {
	Tier    Tier          `json:"tier"`
	Success bool          `json:"success"`
	Reason  string        `json:"reason,omitempty"` // failure reason, empty on success
	Elapsed time.Duration `json:"-"`
	Millis  int64         `json:"elapsed_ms"`
}

// StructureResult is the outcome of a successful structuring run:
// the accepted document plus the attempt history that led to it.
type StructureResult struct {
	Document *Document         `json:"canonical"`
	TierUsed Tier              `json:"tier_used"`
	Attempts []FallbackAttempt `json:"provenance"`
}

// Options carries per-request structuring preferences
type Options struct {
	Language       string       `json:"language,omitempty"`
	DocumentType   DocumentType `json:"document_type,omitempty"`
	EnableFallback bool         `json:"enable_fallback"`
}

// DefaultOptions returns the standard structuring options
func DefaultOptions() Options {
	return Options{EnableFallback: true}
}
