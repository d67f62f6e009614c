package structure

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/maemreyo/canonica/internal/model"
)

// serviceDocument is the wire shape the external structuring service
// is asked to return
type serviceDocument struct {
	Metadata model.Metadata `json:"metadata"`
	Blocks   []model.Block  `json:"blocks"`
}

// decodeServiceDocument parses the service response into a candidate
// document. Model output is not trusted to be clean JSON: markdown
// code fences and surrounding commentary are stripped before parsing.
func decodeServiceDocument(content string, opts model.Options) (*model.Document, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty structuring response")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONCandidate(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	var svc serviceDocument
	parsed := false
	for _, candidate := range candidates {
		if err := json.Unmarshal([]byte(candidate), &svc); err == nil {
			parsed = true
			break
		}
	}
	if !parsed {
		return nil, fmt.Errorf("malformed structuring response: not valid JSON")
	}

	meta := svc.Metadata
	if meta.DocType == "" {
		meta.DocType = opts.DocumentType
	}
	if meta.Language == "" {
		meta.Language = opts.Language
	}

	doc := model.NewDocument(meta, svc.Blocks)
	ensureBlockIDs(doc.Blocks)
	return doc, nil
}

// ensureBlockIDs fills ids the service omitted. Existing ids are kept;
// uniqueness is the validator's concern.
func ensureBlockIDs(blocks []model.Block) {
	for i := range blocks {
		if blocks[i].ID == "" {
			blocks[i].ID = uuid.NewString()
		}
	}
}

// stripCodeFences removes a surrounding markdown code fence, if any
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop first fence line and a trailing fence if present
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// extractJSONCandidate pulls the outermost JSON object out of
// surrounding prose
func extractJSONCandidate(content string) string {
	trimmed := strings.TrimSpace(content)

	start := strings.Index(trimmed, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(trimmed, "}")
	if end < start {
		return ""
	}
	return strings.TrimSpace(trimmed[start : end+1])
}
