package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/maemreyo/canonica/internal/model"
	"github.com/maemreyo/canonica/internal/pipeline"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a canonical document JSON",
	Long: `Validate checks a canonical document against the structural rules:
unique block ids, per-type payload shape, positive table spans, the
closed document type set, confidence in [0,1].

All violations are reported at once, each with the document path that
caused it. The command exits non-zero when violations are found.

Reads from the file argument, or stdin when no argument is given.

Example:
  canonica validate doc.json
  canonica structure page.txt | jq .canonical | canonica validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	violations := p.ValidateDocument(&doc)
	if len(violations) == 0 {
		fmt.Println("✓ Document is valid")
		return nil
	}

	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "✗ %s: %s\n", v.Path, v.Message)
	}
	return fmt.Errorf("document has %d violations", len(violations))
}
