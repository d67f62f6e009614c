package structure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/maemreyo/canonica/internal/cache"
	"github.com/maemreyo/canonica/internal/llm"
	"github.com/maemreyo/canonica/internal/model"
	"github.com/maemreyo/canonica/internal/validate"
)

// Orchestrator drives the structuring strategies in their fixed
// fallback order. Every candidate is validated before acceptance; a
// tier that times out, errors, or fails validation is recorded as a
// FallbackAttempt and the next tier runs. Intermediate failures are
// visible only as provenance, never as the primary failure signal, so
// degraded-but-successful structuring has the same success shape as a
// first-tier hit.
type Orchestrator struct {
	strategies    []Strategy
	validator     *validate.Validator
	cache         cache.Cache
	cacheTTL      time.Duration
	tierTimeout   time.Duration
	maxInputBytes int
	verbose       bool
}

// NewOrchestrator wires the orchestrator from configuration. A nil
// client disables the external tiers; the local tiers always run.
func NewOrchestrator(cfg *model.Config, client *llm.Client, validator *validate.Validator) *Orchestrator {
	o := &Orchestrator{
		strategies:    Strategies(client),
		validator:     validator,
		tierTimeout:   cfg.Structuring.TierTimeout,
		maxInputBytes: cfg.Structuring.MaxInputBytes,
		verbose:       cfg.Output.Verbose,
	}
	if cfg.Cache.Enabled {
		o.cache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		o.cacheTTL = cfg.Cache.TTL
	}
	return o
}

// WithStrategies replaces the tier chain. Used by tests and callers
// with custom wiring; order is preserved as given.
func (o *Orchestrator) WithStrategies(strategies ...Strategy) *Orchestrator {
	o.strategies = strategies
	return o
}

// Structure turns accepted raw text into a validated canonical
// document plus the attempt history that produced it.
//
// The caller always receives either a valid document with provenance
// or a single input/configuration-class error with a clear reason.
func (o *Orchestrator) Structure(ctx context.Context, rawText string, opts model.Options) (*model.StructureResult, error) {
	// Input gate: terminal, no tier is attempted and no provenance is
	// recorded
	if len(rawText) > o.maxInputBytes && o.maxInputBytes > 0 {
		return nil, model.NewInputError("raw text exceeds %d bytes", o.maxInputBytes)
	}
	trimmed := trimText(rawText)
	if trimmed == "" {
		return nil, model.NewInputError("raw text is empty")
	}
	// An out-of-enum type hint would poison every tier's metadata and
	// fail validation all the way down to trivial; reject it up front
	if opts.DocumentType != "" && !model.ValidDocumentType(opts.DocumentType) {
		return nil, model.NewInputError("unknown document type %q", opts.DocumentType)
	}

	optionsTag := fmt.Sprintf("%s|%s|%t", opts.Language, opts.DocumentType, opts.EnableFallback)
	cacheKey := cache.ResultKey(trimmed, optionsTag)
	if o.cache != nil {
		if data, found := o.cache.Get(cacheKey); found {
			var cached model.StructureResult
			if err := json.Unmarshal(data, &cached); err == nil {
				o.logf("cache hit (tier %s)", cached.TierUsed)
				return &cached, nil
			}
			// A corrupt entry is dropped, never surfaced
			_ = o.cache.Delete(cacheKey)
		}
	}

	var attempts []model.FallbackAttempt

	for _, strategy := range o.strategies {
		// A cancelled request aborts immediately with no partial
		// result; attempts so far are discarded with it
		if err := ctx.Err(); err != nil {
			return nil, model.NewInputError("structuring cancelled: %v", err)
		}

		tier := strategy.Tier()
		tierCtx, cancel := context.WithTimeout(ctx, o.tierTimeout)
		start := time.Now()
		doc, err := strategy.Attempt(tierCtx, trimmed, opts)
		cancel()
		elapsed := time.Since(start)

		if err == nil {
			if violations := o.validator.Validate(doc); len(violations) > 0 {
				err = model.NewValidationError(violations)
			}
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil, model.NewInputError("structuring cancelled: %v", ctx.Err())
			}
			attempts = append(attempts, failedAttempt(tier, elapsed, err))
			o.logf("tier %s failed after %v: %v", tier, elapsed, err)

			if !opts.EnableFallback {
				// Fallback disabled: the first tier's failure surfaces
				return nil, err
			}
			continue
		}

		attempts = append(attempts, model.FallbackAttempt{
			Tier:    tier,
			Success: true,
			Elapsed: elapsed,
			Millis:  elapsed.Milliseconds(),
		})
		o.logf("tier %s succeeded after %v (%d attempts)", tier, elapsed, len(attempts))

		result := &model.StructureResult{
			Document: doc,
			TierUsed: tier,
			Attempts: attempts,
		}
		o.store(cacheKey, result)
		return result, nil
	}

	// Unreachable while the trivial tier closes the chain; kept for
	// custom strategy sets
	return nil, model.NewExternalError(nil, "all %d structuring tiers failed", len(attempts))
}

// HasExternalTiers reports whether an external service strategy is in
// the chain
func (o *Orchestrator) HasExternalTiers() bool {
	for _, s := range o.strategies {
		if s.Tier() == model.TierRich || s.Tier() == model.TierSimplified {
			return true
		}
	}
	return false
}

func (o *Orchestrator) store(key string, result *model.StructureResult) {
	if o.cache == nil {
		return
	}
	if data, err := json.Marshal(result); err == nil {
		_ = o.cache.Set(key, data, o.cacheTTL)
	}
}

func (o *Orchestrator) logf(format string, args ...interface{}) {
	if o.verbose {
		fmt.Fprintf(os.Stderr, "structure: "+format+"\n", args...)
	}
}

func failedAttempt(tier model.Tier, elapsed time.Duration, err error) model.FallbackAttempt {
	reason := err.Error()
	var structured *model.Error
	if errors.As(err, &structured) && structured.Kind == model.KindValidation {
		// Keep the violation detail out of the provenance line; the
		// count is what observability needs
		reason = structured.Reason
	}
	return model.FallbackAttempt{
		Tier:    tier,
		Success: false,
		Reason:  reason,
		Elapsed: elapsed,
		Millis:  elapsed.Milliseconds(),
	}
}

// trimText trims surrounding whitespace without copying the body
func trimText(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
