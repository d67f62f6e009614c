package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/maemreyo/canonica/internal/extract"
	"github.com/maemreyo/canonica/internal/model"
	"github.com/maemreyo/canonica/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	classifyOutJSON  string
	classifyLanguage string
	classifyWorkers  int
	reextractCmd     string
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <page-file>...",
	Short: "Route extracted pages between direct use and re-extraction",
	Long: `Classify scores each page text and routes it: pages that pass the
quality gate keep their direct extraction, failing pages are
re-extracted with the costly command given by --reextract-cmd.

Each argument is one page, in order. The costly command runs once per
failing page with {file} replaced by the page's path; its stdout
becomes the replacement text. Without --reextract-cmd failing pages
keep their direct text and verdict.

The summary tags the document all-direct, all-reextracted, or hybrid.

Example:
  canonica classify page-*.txt
  canonica classify page-*.txt --reextract-cmd 'ocr-tool {file}'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyOutJSON, "json", "", "output JSON path (default: stdout)")
	classifyCmd.Flags().StringVar(&classifyLanguage, "language", "", "language hint for token segmentation")
	classifyCmd.Flags().IntVar(&classifyWorkers, "workers", 0, "override page classification workers")
	classifyCmd.Flags().StringVar(&reextractCmd, "reextract-cmd", "", "costly re-extraction command, {file} is replaced per page")
}

func runClassify(cmd *cobra.Command, args []string) error {
	pages := make([]string, len(args))
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read page %d (%s): %w", i, path, err)
		}
		pages[i] = string(data)
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	if classifyWorkers > 0 {
		cfg.Concurrency.RouterWorkers = classifyWorkers
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	var costly extract.Extractor
	if reextractCmd != "" {
		files := args
		costly = func(ctx context.Context, pageIndex int) (string, error) {
			cmdline := strings.ReplaceAll(reextractCmd, "{file}", files[pageIndex])
			out, err := exec.CommandContext(ctx, "sh", "-c", cmdline).Output()
			if err != nil {
				return "", fmt.Errorf("re-extract page %d: %w", pageIndex, err)
			}
			return string(out), nil
		}
	}

	summary, err := p.ClassifyPages(context.Background(), pages, costly)
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Classified %d pages: %s\n", len(summary.Pages), summary.Method)
		for _, page := range summary.Pages {
			fmt.Fprintf(os.Stderr, "  page %d: %s (confidence %.2f, %s)\n",
				page.PageIndex, page.Method, page.Result.Confidence, page.Result.Reason)
		}
	}

	return writeJSON(classifyOutJSON, summary)
}
