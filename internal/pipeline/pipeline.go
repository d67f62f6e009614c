package pipeline

import (
	"context"
	"fmt"

	"github.com/maemreyo/canonica/internal/extract"
	"github.com/maemreyo/canonica/internal/llm"
	"github.com/maemreyo/canonica/internal/model"
	"github.com/maemreyo/canonica/internal/score"
	"github.com/maemreyo/canonica/internal/structure"
	"github.com/maemreyo/canonica/internal/validate"
)

// Pipeline wires the scoring, routing, structuring and validation
// components into one entry point
type Pipeline struct {
	scorer       *score.Scorer
	router       *extract.Router
	orchestrator *structure.Orchestrator
	validator    *validate.Validator
	client       *llm.Client
	config       *model.Config
}

// NewPipeline assembles a pipeline from the given configuration.
// Misconfiguration (an unknown provider, a provider without
// credentials) fails here, at startup, never per request.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	validator, err := validate.New()
	if err != nil {
		return nil, fmt.Errorf("compile document schema: %w", err)
	}

	limiter := llm.NewLimiter(cfg.Structuring.RequestsPerSecond, cfg.Structuring.Burst)
	client, err := llm.NewClient(cfg.LLM, limiter)
	if err != nil {
		return nil, err
	}

	scorer := score.NewScorer(cfg.Scoring, score.NewAutoSegmenter())

	return &Pipeline{
		scorer:       scorer,
		router:       extract.NewRouter(scorer, cfg.Concurrency.RouterWorkers),
		orchestrator: structure.NewOrchestrator(cfg, client, validator),
		validator:    validator,
		client:       client,
		config:       cfg,
	}, nil
}

// HasExternalService reports whether an external structuring service
// is configured
func (p *Pipeline) HasExternalService() bool {
	return p.client != nil
}

// ScoreText scores extraction quality for a single text. A non-empty
// language hint pins the token segmenter instead of auto-detecting.
func (p *Pipeline) ScoreText(text, language string) model.ValidationResult {
	if language != "" {
		return score.NewScorer(p.config.Scoring, score.ForLanguage(language)).Score(text)
	}
	return p.scorer.Score(text)
}

// ClassifyPages routes already-extracted page texts through the
// quality gate, re-extracting failing pages with costly
func (p *Pipeline) ClassifyPages(ctx context.Context, pages []string, costly extract.Extractor) (*model.ExtractionSummary, error) {
	return p.router.ClassifyPages(ctx, pages, costly)
}

// ClassifyDocument extracts and routes every page of a document using
// the fast extractor first
func (p *Pipeline) ClassifyDocument(ctx context.Context, pageCount int, fast, costly extract.Extractor) (*model.ExtractionSummary, error) {
	return p.router.ClassifyDocument(ctx, pageCount, fast, costly)
}

// Structure converts raw text into a validated canonical document with
// fallback provenance
func (p *Pipeline) Structure(ctx context.Context, rawText string, opts model.Options) (*model.StructureResult, error) {
	return p.orchestrator.Structure(ctx, rawText, opts)
}

// ValidateDocument collects every violation in doc. An empty slice
// means the document conforms.
func (p *Pipeline) ValidateDocument(doc *model.Document) []model.Violation {
	return p.validator.Validate(doc)
}
