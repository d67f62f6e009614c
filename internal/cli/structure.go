package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/maemreyo/canonica/internal/model"
	"github.com/maemreyo/canonica/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	structOutJSON    string
	structLanguage   string
	structDocType    string
	structTimeout    time.Duration
	structNoFallback bool
	structNoCache    bool
	llmEnabled       bool
	llmProvider      string
	llmModel         string
)

// structureCmd represents the structure command
var structureCmd = &cobra.Command{
	Use:   "structure [file]",
	Short: "Structure raw text into a canonical document",
	Long: `Structure converts raw extracted text into a validated canonical
document through a tiered fallback chain:

  1. rich        - external service, full block contract
  2. simplified  - external service, reduced contract
  3. heuristic   - local lexical structuring, no external call
  4. trivial     - single-paragraph wrapper

Each tier is validated before acceptance; a failing tier is recorded
in the provenance and the next tier runs. The external tiers require
--llm; without it the chain starts at the heuristic tier.

Reads from the file argument, or stdin when no argument is given.

Example:
  canonica structure page.txt
  canonica structure page.txt --json doc.json --doc-type invoice
  canonica structure page.txt --llm --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStructure,
}

func init() {
	rootCmd.AddCommand(structureCmd)

	// Output flags
	structureCmd.Flags().StringVar(&structOutJSON, "json", "", "output JSON path (default: stdout)")

	// Structuring flags
	structureCmd.Flags().StringVar(&structLanguage, "language", "", "language hint (e.g. en, vi, ja)")
	structureCmd.Flags().StringVar(&structDocType, "doc-type", "", "document type hint (general, article, report, invoice, receipt, contract, form, exam, letter)")
	structureCmd.Flags().DurationVar(&structTimeout, "timeout", 60*time.Second, "per-tier timeout")
	structureCmd.Flags().BoolVar(&structNoFallback, "no-fallback", false, "fail on the first tier instead of falling back")
	structureCmd.Flags().BoolVar(&structNoCache, "no-cache", false, "disable the result cache")

	// LLM flags
	structureCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the external structuring tiers")
	structureCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "external service provider")
	structureCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "external service model name")
}

func runStructure(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Structuring.TierTimeout = structTimeout
	cfg.Cache.Enabled = !structNoCache
	cfg.Output.Verbose = verbose

	if structDocType != "" && !model.ValidDocumentType(model.DocumentType(structDocType)) {
		return fmt.Errorf("unknown document type %q", structDocType)
	}

	// Configure the external service if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	opts := model.Options{
		Language:       structLanguage,
		DocumentType:   model.DocumentType(structDocType),
		EnableFallback: !structNoFallback,
	}

	ctx := context.Background()
	result, err := p.Structure(ctx, text, opts)
	if err != nil {
		return fmt.Errorf("structure failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Structured via %s tier (%d attempts, %d blocks)\n",
			result.TierUsed, len(result.Attempts), len(result.Document.Blocks))
		for _, attempt := range result.Attempts {
			status := "✓"
			if !attempt.Success {
				status = "✗"
			}
			fmt.Fprintf(os.Stderr, "  %s %-10s %6dms  %s\n", status, attempt.Tier, attempt.Millis, attempt.Reason)
		}
	}

	return writeJSON(structOutJSON, result)
}

// writeJSON writes v as indented JSON to path, or stdout when path is
// empty
func writeJSON(path string, v interface{}) error {
	if path == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
