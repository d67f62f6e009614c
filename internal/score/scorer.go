package score

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/maemreyo/canonica/internal/model"
)

// Penalty weights applied to the starting confidence of 1.0
const (
	repetitionPenalty = 0.6 // entropy below the floor
	sparsenessPenalty = 0.4 // too few tokens
)

// Scorer decides whether extracted text is trustworthy enough to use
// as-is. Scoring is pure and deterministic: identical text and config
// always produce an identical verdict, so calls are safe to run in
// parallel with no coordination.
type Scorer struct {
	cfg model.ScoringConfig
	seg Segmenter
}

// NewScorer creates a scorer with the given thresholds and segmenter.
// A nil segmenter falls back to word-run counting.
func NewScorer(cfg model.ScoringConfig, seg Segmenter) *Scorer {
	if seg == nil {
		seg = NewWordSegmenter()
	}
	return &Scorer{cfg: cfg, seg: seg}
}

// Score evaluates raw extracted text and returns a verdict.
//
// Rule order matters: the length gate and the density gate short-circuit,
// and the density rule dominates the later penalties. The density gate is
// the primary defense against repeated-punctuation noise that would pass
// a naive length check.
func (s *Scorer) Score(text string) model.ValidationResult {
	// 1. Normalize unicode (canonical composition) and trim
	normalized := strings.TrimSpace(norm.NFC.String(text))

	metrics := model.TextMetrics{
		CharLength: utf8.RuneCountInString(normalized),
	}

	// 2. Length gate: too short to judge, skip all further computation.
	// Text exactly at the minimum is long enough.
	if metrics.CharLength < s.cfg.MinAbsoluteLength {
		return model.ValidationResult{
			Confidence: 0,
			IsValid:    false,
			Reason:     model.ReasonBelowMinLength,
			Metrics:    metrics,
		}
	}

	// 3. Token count via the pluggable segmenter. Density is 0 for
	// empty text, never NaN, so the gate below still fires when a
	// zero minimum length lets empty text through.
	metrics.TokenCount = s.seg.Count(normalized)
	if metrics.CharLength > 0 {
		metrics.TokenDensity = float64(metrics.TokenCount) / float64(metrics.CharLength)
	}

	// 4. Density gate: dominates and short-circuits
	if metrics.TokenDensity < s.cfg.MinTokenDensity {
		return model.ValidationResult{
			Confidence: 0,
			IsValid:    false,
			Reason:     model.ReasonLowTokenDensity,
			Metrics:    metrics,
		}
	}

	// 5. Start at full confidence and subtract penalties
	metrics.Entropy = Entropy(normalized)

	confidence := 1.0
	reason := model.ReasonValid

	if metrics.Entropy < s.cfg.MinEntropy {
		confidence -= repetitionPenalty
		reason = model.ReasonLowEntropy
	}
	if metrics.TokenCount < s.cfg.MinTokenCount {
		confidence -= sparsenessPenalty
		reason = model.ReasonSparseTokens
	}
	if confidence < 0 {
		confidence = 0
	}

	// 6. Strict greater-than: confidence equal to the threshold is invalid
	return model.ValidationResult{
		Confidence: confidence,
		IsValid:    confidence > s.cfg.ConfidenceThreshold,
		Reason:     reason,
		Metrics:    metrics,
	}
}
