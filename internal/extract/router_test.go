package extract

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/maemreyo/canonica/internal/model"
	"github.com/maemreyo/canonica/internal/score"
)

func testScorer() *score.Scorer {
	return score.NewScorer(model.ScoringConfig{
		MinAbsoluteLength:   10,
		MinTokenDensity:     0.05,
		MinEntropy:          2.5,
		MinTokenCount:       3,
		ConfidenceThreshold: 0.5,
	}, nil)
}

const goodPage = "This page contains a perfectly reasonable amount of extracted prose."

func TestClassifyPages_HybridWhenOnePageFails(t *testing.T) {
	router := NewRouter(testScorer(), 4)

	// 10 pages, only page 7 is noise
	pages := make([]string, 10)
	for i := range pages {
		pages[i] = goodPage
	}
	pages[7] = strings.Repeat(".", 60)

	var costlyCalls int32
	costly := func(ctx context.Context, pageIndex int) (string, error) {
		atomic.AddInt32(&costlyCalls, 1)
		return "Recovered text from the costly recognition path for this page.", nil
	}

	summary, err := router.ClassifyPages(context.Background(), pages, costly)
	if err != nil {
		t.Fatalf("ClassifyPages: %v", err)
	}

	if summary.Method != model.AggregateHybrid {
		t.Errorf("expected hybrid aggregate, got %q", summary.Method)
	}
	if costlyCalls != 1 {
		t.Errorf("expected exactly 1 costly extraction, got %d", costlyCalls)
	}

	reextracted := 0
	for _, p := range summary.Pages {
		if p.Method == model.MethodReextracted {
			reextracted++
			if p.PageIndex != 7 {
				t.Errorf("expected page 7 to be re-extracted, got page %d", p.PageIndex)
			}
		}
	}
	if reextracted != 1 {
		t.Errorf("expected exactly one re-extracted page, got %d", reextracted)
	}
}

func TestClassifyPages_AllDirect(t *testing.T) {
	router := NewRouter(testScorer(), 4)

	pages := []string{goodPage, goodPage, goodPage}
	summary, err := router.ClassifyPages(context.Background(), pages, func(ctx context.Context, pageIndex int) (string, error) {
		t.Errorf("costly path must not run for page %d", pageIndex)
		return "", nil
	})
	if err != nil {
		t.Fatalf("ClassifyPages: %v", err)
	}

	if summary.Method != model.AggregateAllDirect {
		t.Errorf("expected all-direct, got %q", summary.Method)
	}
}

func TestClassifyPages_AllReextracted(t *testing.T) {
	router := NewRouter(testScorer(), 2)

	pages := []string{"...", "???"}
	summary, err := router.ClassifyPages(context.Background(), pages, func(ctx context.Context, pageIndex int) (string, error) {
		return goodPage, nil
	})
	if err != nil {
		t.Fatalf("ClassifyPages: %v", err)
	}

	if summary.Method != model.AggregateAllReextracted {
		t.Errorf("expected all-reextracted, got %q", summary.Method)
	}
	for _, p := range summary.Pages {
		if !p.Result.IsValid {
			t.Errorf("page %d: accepted verdict should reflect the re-extracted text", p.PageIndex)
		}
	}
}

func TestClassifyPages_ResultsAlignedByIndex(t *testing.T) {
	router := NewRouter(testScorer(), 8)

	pages := make([]string, 50)
	for i := range pages {
		pages[i] = fmt.Sprintf("Page %d holds a normal paragraph of extracted document text.", i)
	}

	summary, err := router.ClassifyPages(context.Background(), pages, nil)
	if err != nil {
		t.Fatalf("ClassifyPages: %v", err)
	}

	for i, p := range summary.Pages {
		if p.PageIndex != i {
			t.Errorf("position %d holds page %d; results must merge by index", i, p.PageIndex)
		}
	}
}

func TestClassifyPages_CostlyFailureKeepsDirectText(t *testing.T) {
	router := NewRouter(testScorer(), 2)

	pages := []string{strings.Repeat("-", 40)}
	summary, err := router.ClassifyPages(context.Background(), pages, func(ctx context.Context, pageIndex int) (string, error) {
		return "", fmt.Errorf("ocr backend unavailable")
	})
	if err != nil {
		t.Fatalf("ClassifyPages: %v", err)
	}

	p := summary.Pages[0]
	if p.Method != model.MethodDirect {
		t.Errorf("expected direct method when costly path fails, got %q", p.Method)
	}
	if p.Result.IsValid {
		t.Error("failing verdict must be preserved when no better text exists")
	}
}

func TestClassifyPages_Cancelled(t *testing.T) {
	router := NewRouter(testScorer(), 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := router.ClassifyPages(ctx, []string{goodPage, goodPage}, nil)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !model.IsInputError(err) {
		t.Errorf("expected input-class error, got %v", err)
	}
}

func TestClassifyDocument_FastExtractorFailureRoutesToCostly(t *testing.T) {
	router := NewRouter(testScorer(), 2)

	fast := func(ctx context.Context, pageIndex int) (string, error) {
		if pageIndex == 1 {
			return "", fmt.Errorf("parser crash")
		}
		return goodPage, nil
	}
	costly := func(ctx context.Context, pageIndex int) (string, error) {
		return goodPage, nil
	}

	summary, err := router.ClassifyDocument(context.Background(), 3, fast, costly)
	if err != nil {
		t.Fatalf("ClassifyDocument: %v", err)
	}

	if summary.Method != model.AggregateHybrid {
		t.Errorf("expected hybrid, got %q", summary.Method)
	}
	if summary.Pages[1].Method != model.MethodReextracted {
		t.Errorf("expected page 1 re-extracted, got %q", summary.Pages[1].Method)
	}
}
