package structure

import (
	"context"

	"github.com/maemreyo/canonica/internal/llm"
	"github.com/maemreyo/canonica/internal/model"
)

// Strategy turns raw text into a candidate canonical document or
// fails. The external structuring service is modeled as strategies
// behind this capability, not as a concrete vendor integration:
// swapping providers means adding a strategy, not touching the
// orchestrator.
type Strategy interface {
	// Tier identifies the strategy's place in the fallback order
	Tier() model.Tier

	// Attempt produces a candidate document. Candidates are validated
	// by the orchestrator before acceptance.
	Attempt(ctx context.Context, rawText string, opts model.Options) (*model.Document, error)
}

// Strategies assembles the fixed fallback order. The external tiers
// (rich, simplified) are present only when a service client is
// configured; the local tiers always close the chain, so the order
// terminates in a strategy that cannot fail on non-empty input.
func Strategies(client *llm.Client) []Strategy {
	var strategies []Strategy
	if client != nil {
		strategies = append(strategies, NewRich(client), NewSimplified(client))
	}
	return append(strategies, NewHeuristic(), NewTrivial())
}
