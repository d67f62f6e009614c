package validate

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/maemreyo/canonica/internal/model"
)

// Validator checks candidate documents for structural and schema
// conformance before they are accepted. Every violation is collected,
// not just the first, so callers can report all problems at once.
type Validator struct {
	schema *jsonschema.Schema
}

// New creates a validator with the embedded document schema compiled
func New() (*Validator, error) {
	schema, err := compileDocumentSchema()
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema}, nil
}

// Validate checks a candidate document and returns all violations as
// (path, message) pairs. An empty slice means the document is valid.
func (v *Validator) Validate(doc *model.Document) []model.Violation {
	if doc == nil {
		return []model.Violation{{Path: "$", Message: "document is nil"}}
	}

	var violations []model.Violation

	violations = append(violations, v.checkMetadata(doc.Metadata)...)

	if doc.FormatVersion == "" {
		violations = append(violations, model.Violation{
			Path: "format_version", Message: "format version is required",
		})
	}

	if len(doc.Blocks) == 0 {
		violations = append(violations, model.Violation{
			Path: "blocks", Message: "document has no blocks",
		})
	}

	// Track every path an id appears at so duplicates can reference
	// all colliding blocks, not just the first
	idPaths := make(map[string][]string)
	for i := range doc.Blocks {
		path := fmt.Sprintf("blocks[%d]", i)
		violations = append(violations, v.checkBlock(path, &doc.Blocks[i], idPaths)...)
	}
	violations = append(violations, duplicateIDViolations(idPaths)...)

	// Schema layer: shape conformance of the serialized form
	if err := validateAgainstSchema(v.schema, doc); err != nil {
		violations = append(violations, model.Violation{Path: "$", Message: err.Error()})
	}

	return violations
}

// checkMetadata validates the document-level metadata
func (v *Validator) checkMetadata(meta model.Metadata) []model.Violation {
	var violations []model.Violation

	if !model.ValidDocumentType(meta.DocType) {
		violations = append(violations, model.Violation{
			Path:    "metadata.doc_type",
			Message: fmt.Sprintf("unknown document type %q", meta.DocType),
		})
	}
	if meta.Confidence < 0 || meta.Confidence > 1 {
		violations = append(violations, model.Violation{
			Path:    "metadata.confidence",
			Message: fmt.Sprintf("confidence %f outside [0,1]", meta.Confidence),
		})
	}

	return violations
}

// checkBlock validates one block's shape against its declared type tag
// and records its id for uniqueness checking
func (v *Validator) checkBlock(path string, b *model.Block, idPaths map[string][]string) []model.Violation {
	var violations []model.Violation

	add := func(sub, format string, args ...interface{}) {
		p := path
		if sub != "" {
			p = path + "." + sub
		}
		violations = append(violations, model.Violation{Path: p, Message: fmt.Sprintf(format, args...)})
	}

	if b.ID == "" {
		add("id", "block id is required")
	} else {
		idPaths[b.ID] = append(idPaths[b.ID], path)
	}

	// Payloads foreign to the declared type make the shape ambiguous
	requirePayloads := func(allowed ...string) {
		for name, present := range map[string]bool{
			"list":     b.List != nil,
			"table":    b.Table != nil,
			"image":    b.Image != nil,
			"question": b.Question != nil,
		} {
			if !present {
				continue
			}
			ok := false
			for _, a := range allowed {
				if a == name {
					ok = true
				}
			}
			if !ok {
				add(name, "%s payload not allowed on %s block", name, b.Type)
			}
		}
	}

	switch b.Type {
	case model.BlockHeading:
		requirePayloads()
		if b.Text == "" {
			add("text", "heading text is required")
		}
		if b.Level < 1 || b.Level > 6 {
			add("level", "heading level %d outside 1-6", b.Level)
		}

	case model.BlockParagraph, model.BlockBlockquote, model.BlockCode:
		requirePayloads()
		if b.Text == "" {
			add("text", "%s text is required", b.Type)
		}

	case model.BlockDivider:
		requirePayloads()
		if b.Text != "" {
			add("text", "divider carries no text")
		}

	case model.BlockList:
		requirePayloads("list")
		if b.List == nil {
			add("list", "list payload is required")
		} else {
			violations = append(violations, checkList(path+".list", b.List)...)
		}

	case model.BlockTable:
		requirePayloads("table")
		if b.Table == nil {
			add("table", "table payload is required")
		} else {
			violations = append(violations, checkTable(path+".table", b.Table)...)
		}

	case model.BlockImage:
		requirePayloads("image")
		if b.Image == nil {
			add("image", "image payload is required")
		} else if b.Image.Source == "" {
			add("image.source", "image source is required")
		}

	case model.BlockChoiceQuestion:
		requirePayloads("question")
		if b.Question == nil {
			add("question", "question payload is required")
		} else {
			if b.Question.Prompt == "" {
				add("question.prompt", "question prompt is required")
			}
			if len(b.Question.Options) < 2 {
				add("question.options", "choice question needs at least 2 options, got %d", len(b.Question.Options))
			}
		}

	default:
		add("type", "unknown block type %q", b.Type)
	}

	return violations
}

// checkList validates list items, recursing into nested sublists
func checkList(path string, list *model.ListData) []model.Violation {
	var violations []model.Violation

	if len(list.Items) == 0 {
		violations = append(violations, model.Violation{
			Path: path + ".items", Message: "list has no items",
		})
	}
	for i := range list.Items {
		item := &list.Items[i]
		itemPath := fmt.Sprintf("%s.items[%d]", path, i)
		if item.Text == "" && item.Sublist == nil {
			violations = append(violations, model.Violation{
				Path: itemPath, Message: "list item needs text or a sublist",
			})
		}
		if item.Sublist != nil {
			violations = append(violations, checkList(itemPath+".sublist", item.Sublist)...)
		}
	}

	return violations
}

// checkTable validates span integers on every cell, header included
func checkTable(path string, table *model.TableData) []model.Violation {
	var violations []model.Violation

	if len(table.Rows) == 0 && len(table.Header) == 0 {
		violations = append(violations, model.Violation{
			Path: path + ".rows", Message: "table has no rows",
		})
	}
	for c := range table.Header {
		violations = append(violations, checkCell(fmt.Sprintf("%s.header[%d]", path, c), &table.Header[c])...)
	}
	for r, row := range table.Rows {
		for c := range row {
			violations = append(violations, checkCell(fmt.Sprintf("%s.rows[%d][%d]", path, r, c), &row[c])...)
		}
	}

	return violations
}

func checkCell(path string, cell *model.TableCell) []model.Violation {
	var violations []model.Violation
	if cell.RowSpan < 1 {
		violations = append(violations, model.Violation{
			Path: path + ".row_span", Message: fmt.Sprintf("row span %d must be >= 1", cell.RowSpan),
		})
	}
	if cell.ColSpan < 1 {
		violations = append(violations, model.Violation{
			Path: path + ".col_span", Message: fmt.Sprintf("col span %d must be >= 1", cell.ColSpan),
		})
	}
	return violations
}

// duplicateIDViolations emits one violation per colliding block, each
// referencing every path that shares the id
func duplicateIDViolations(idPaths map[string][]string) []model.Violation {
	var violations []model.Violation
	for id, paths := range idPaths {
		if len(paths) < 2 {
			continue
		}
		for _, p := range paths {
			violations = append(violations, model.Violation{
				Path:    p,
				Message: fmt.Sprintf("duplicate block id %q shared by %s", id, strings.Join(paths, ", ")),
			})
		}
	}
	return violations
}
