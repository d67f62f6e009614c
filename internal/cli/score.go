package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/maemreyo/canonica/internal/model"
	"github.com/maemreyo/canonica/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	scoreLanguage  string
	scoreMinLength int
	scoreThreshold float64
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score [file]",
	Short: "Score extraction quality of a text",
	Long: `Score evaluates whether extracted text is usable as-is or needs
costly re-extraction.

The text passes through an absolute length gate and a token density
gate, then entropy and token sparseness penalties reduce the
confidence. The verdict is printed as JSON.

Reads from the file argument, or stdin when no argument is given.

Example:
  canonica score page.txt
  pdftotext doc.pdf - | canonica score
  canonica score page.txt --language vi`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreLanguage, "language", "", "language hint for token segmentation (e.g. en, vi, ja)")
	scoreCmd.Flags().IntVar(&scoreMinLength, "min-length", 0, "override minimum absolute length")
	scoreCmd.Flags().Float64Var(&scoreThreshold, "threshold", 0, "override confidence threshold")
}

func runScore(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	if scoreMinLength > 0 {
		cfg.Scoring.MinAbsoluteLength = scoreMinLength
	}
	if scoreThreshold > 0 {
		cfg.Scoring.ConfidenceThreshold = scoreThreshold
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	result := p.ScoreText(text, scoreLanguage)

	if verbose {
		fmt.Fprintf(os.Stderr, "chars=%d tokens=%d density=%.4f entropy=%.4f\n",
			result.Metrics.CharLength, result.Metrics.TokenCount,
			result.Metrics.TokenDensity, result.Metrics.Entropy)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
