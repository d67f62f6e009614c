package model

// TextMetrics holds the raw measurements behind a scoring verdict.
// Computed once per scoring call and never mutated.
type TextMetrics struct {
	CharLength   int     `json:"char_length"`   // runes after normalization
	TokenCount   int     `json:"token_count"`   // semantic units (words/syllables)
	TokenDensity float64 `json:"token_density"` // token_count / char_length (0 when empty)
	Entropy      float64 `json:"entropy"`       // character-distribution entropy (bits)
}

// ValidationResult is the verdict for one piece of extracted text
type ValidationResult struct {
	Confidence float64     `json:"confidence"` // 0..1
	IsValid    bool        `json:"is_valid"`
	Reason     string      `json:"reason"` // label of the last rule applied, or "valid"
	Metrics    TextMetrics `json:"metrics"`
}

// Scoring verdict reasons
const (
	ReasonValid           = "valid"
	ReasonBelowMinLength  = "below minimum length"
	ReasonLowTokenDensity = "low token density"
	ReasonLowEntropy      = "low entropy"
	ReasonSparseTokens    = "sparse tokens"
)

// ExtractionMethod records which extraction path produced a page's text
type ExtractionMethod string

const (
	MethodDirect      ExtractionMethod = "direct"
	MethodReextracted ExtractionMethod = "reextracted"
)

// AggregateMethod summarizes extraction methods across a whole document
type AggregateMethod string

const (
	AggregateAllDirect      AggregateMethod = "all-direct"
	AggregateAllReextracted AggregateMethod = "all-reextracted"
	AggregateHybrid         AggregateMethod = "hybrid"
)

// PageClassification is the per-page extraction routing decision
type PageClassification struct {
	PageIndex int              `json:"page_index"`
	Method    ExtractionMethod `json:"method"`
	Result    ValidationResult `json:"result"` // verdict for the accepted text
}

// ExtractionSummary aggregates per-page classifications for a document
type ExtractionSummary struct {
	Pages  []PageClassification `json:"pages"`
	Method AggregateMethod      `json:"method"`
}

// Aggregate derives the document-level method tag from per-page decisions.
// A zero-page document is vacuously all-direct.
func Aggregate(pages []PageClassification) AggregateMethod {
	direct, reextracted := 0, 0
	for _, p := range pages {
		switch p.Method {
		case MethodReextracted:
			reextracted++
		default:
			direct++
		}
	}
	switch {
	case reextracted == 0:
		return AggregateAllDirect
	case direct == 0:
		return AggregateAllReextracted
	default:
		return AggregateHybrid
	}
}
