package extract

import (
	"context"

	"github.com/maemreyo/canonica/internal/model"
	"github.com/maemreyo/canonica/internal/score"
	"github.com/maemreyo/canonica/internal/worker"
)

// Extractor produces raw text for one page. The actual PDF/OCR backends
// are external collaborators invoked through this opaque signature.
type Extractor func(ctx context.Context, pageIndex int) (string, error)

// Router decides, page by page, whether fast-path extracted text is
// trustworthy or the page must go through the costlier recognition path.
//
// Pages are classified independently: a single corrupted page never
// forces re-extraction of the whole document, and at most one
// re-extraction attempt is made per page to bound cost.
type Router struct {
	scorer     *score.Scorer
	maxWorkers int
}

// NewRouter creates a router with a bounded page-level concurrency limit
func NewRouter(scorer *score.Scorer, maxWorkers int) *Router {
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	return &Router{scorer: scorer, maxWorkers: maxWorkers}
}

// ClassifyPages classifies a document whose fast-path text is already
// in hand. Each page's text is scored; invalid pages are re-extracted
// once via costly and its output accepted unconditionally. Pages run
// concurrently and results are merged by page index.
func (r *Router) ClassifyPages(ctx context.Context, pages []string, costly Extractor) (*model.ExtractionSummary, error) {
	pool := worker.NewPool[model.PageClassification](ctx, r.maxWorkers)
	pool.Start()

	for i, text := range pages {
		idx, fastText := i, text
		pool.Submit(func(ctx context.Context) model.PageClassification {
			return r.classifyPage(ctx, idx, fastText, costly)
		})
	}

	classified := pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, model.NewInputError("classification cancelled: %v", err)
	}

	// Classification order across pages is independent; merge by index
	results := make([]model.PageClassification, len(pages))
	for _, pc := range classified {
		results[pc.PageIndex] = pc
	}

	return &model.ExtractionSummary{
		Pages:  results,
		Method: model.Aggregate(results),
	}, nil
}

// ClassifyDocument runs the fast extraction path itself before scoring.
// fast is invoked for every page; costly only for pages whose fast-path
// output fails scoring.
func (r *Router) ClassifyDocument(ctx context.Context, pageCount int, fast, costly Extractor) (*model.ExtractionSummary, error) {
	pages := make([]string, pageCount)
	for i := range pages {
		text, err := fast(ctx, i)
		if err != nil {
			// A failed fast extraction scores as empty text and falls
			// through to the costly path like any other invalid page
			text = ""
		}
		pages[i] = text
	}
	return r.ClassifyPages(ctx, pages, costly)
}

// classifyPage makes the routing decision for a single page
func (r *Router) classifyPage(ctx context.Context, idx int, fastText string, costly Extractor) model.PageClassification {
	verdict := r.scorer.Score(fastText)
	if verdict.IsValid || costly == nil {
		return model.PageClassification{
			PageIndex: idx,
			Method:    model.MethodDirect,
			Result:    verdict,
		}
	}

	reText, err := costly(ctx, idx)
	if err != nil {
		// The costly backend is a collaborator that may itself fail;
		// keep the fast-path text and its verdict rather than losing
		// the page
		return model.PageClassification{
			PageIndex: idx,
			Method:    model.MethodDirect,
			Result:    verdict,
		}
	}

	// Re-extracted text is accepted unconditionally; its verdict is
	// recorded for observability, never used to loop
	return model.PageClassification{
		PageIndex: idx,
		Method:    model.MethodReextracted,
		Result:    r.scorer.Score(reText),
	}
}
