package validate

import (
	"strings"
	"testing"

	"github.com/maemreyo/canonica/internal/model"
)

func mustValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func validDocument() *model.Document {
	return model.NewDocument(
		model.Metadata{DocType: model.DocTypeArticle, Confidence: 0.9},
		[]model.Block{
			{ID: "b1", Type: model.BlockHeading, Text: "Introduction", Level: 1},
			{ID: "b2", Type: model.BlockParagraph, Text: "Some opening prose."},
			{ID: "b3", Type: model.BlockList, List: &model.ListData{
				Ordered: false,
				Items: []model.ListItem{
					{Text: "first"},
					{Text: "second", Sublist: &model.ListData{
						Ordered: true,
						Items:   []model.ListItem{{Text: "nested"}},
					}},
				},
			}},
			{ID: "b4", Type: model.BlockTable, Table: &model.TableData{
				Header: []model.TableCell{{Text: "h", RowSpan: 1, ColSpan: 2}},
				Rows: [][]model.TableCell{
					{{Text: "a", RowSpan: 1, ColSpan: 1}, {Text: "b", RowSpan: 1, ColSpan: 1}},
				},
			}},
			{ID: "b5", Type: model.BlockDivider},
		},
	)
}

func TestValidate_ValidDocument(t *testing.T) {
	v := mustValidator(t)

	violations := v.Validate(validDocument())
	if len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}
}

func TestValidate_DuplicateIDsReferenceAllPaths(t *testing.T) {
	v := mustValidator(t)

	doc := model.NewDocument(
		model.Metadata{DocType: model.DocTypeGeneral, Confidence: 0.5},
		[]model.Block{
			{ID: "dup", Type: model.BlockParagraph, Text: "first"},
			{ID: "b2", Type: model.BlockParagraph, Text: "middle"},
			{ID: "dup", Type: model.BlockParagraph, Text: "second"},
		},
	)

	violations := v.Validate(doc)
	if len(violations) == 0 {
		t.Fatal("expected violations for duplicate ids")
	}

	// Both colliding paths must appear, not just the first
	sawFirst, sawSecond := false, false
	for _, viol := range violations {
		if strings.Contains(viol.Message, "duplicate block id") {
			if strings.Contains(viol.Message, "blocks[0]") {
				sawFirst = true
			}
			if strings.Contains(viol.Message, "blocks[2]") {
				sawSecond = true
			}
		}
	}
	if !sawFirst || !sawSecond {
		t.Errorf("duplicate id violations must reference both paths, got %v", violations)
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	v := mustValidator(t)

	doc := model.NewDocument(
		model.Metadata{DocType: "memo", Confidence: 1.5},
		[]model.Block{
			{ID: "", Type: model.BlockParagraph, Text: ""},
			{ID: "b2", Type: "unknown-kind"},
		},
	)

	violations := v.Validate(doc)
	// doc type, confidence, missing id, empty text, unknown type at minimum
	if len(violations) < 5 {
		t.Errorf("expected all problems reported at once, got %d: %v", len(violations), violations)
	}
}

func TestValidate_ShapeMustMatchTypeTag(t *testing.T) {
	v := mustValidator(t)

	doc := model.NewDocument(
		model.Metadata{DocType: model.DocTypeGeneral, Confidence: 0.5},
		[]model.Block{
			// Declared paragraph but carries a table payload
			{ID: "b1", Type: model.BlockParagraph, Text: "ok", Table: &model.TableData{}},
			// Declared table but no payload at all
			{ID: "b2", Type: model.BlockTable},
		},
	)

	violations := v.Validate(doc)
	foundForeign, foundMissing := false, false
	for _, viol := range violations {
		if viol.Path == "blocks[0].table" {
			foundForeign = true
		}
		if viol.Path == "blocks[1].table" {
			foundMissing = true
		}
	}
	if !foundForeign {
		t.Errorf("expected foreign payload violation at blocks[0].table, got %v", violations)
	}
	if !foundMissing {
		t.Errorf("expected missing payload violation at blocks[1].table, got %v", violations)
	}
}

func TestValidate_TableSpans(t *testing.T) {
	v := mustValidator(t)

	doc := model.NewDocument(
		model.Metadata{DocType: model.DocTypeReport, Confidence: 0.8},
		[]model.Block{
			{ID: "b1", Type: model.BlockTable, Table: &model.TableData{
				Rows: [][]model.TableCell{
					{{Text: "a", RowSpan: 0, ColSpan: 1}, {Text: "b", RowSpan: 1, ColSpan: -2}},
				},
			}},
		},
	)

	violations := v.Validate(doc)
	paths := make(map[string]bool)
	for _, viol := range violations {
		paths[viol.Path] = true
	}
	if !paths["blocks[0].table.rows[0][0].row_span"] {
		t.Errorf("expected row span violation, got %v", violations)
	}
	if !paths["blocks[0].table.rows[0][1].col_span"] {
		t.Errorf("expected col span violation, got %v", violations)
	}
}

func TestValidate_NestedListRecursion(t *testing.T) {
	v := mustValidator(t)

	doc := model.NewDocument(
		model.Metadata{DocType: model.DocTypeGeneral, Confidence: 0.5},
		[]model.Block{
			{ID: "b1", Type: model.BlockList, List: &model.ListData{
				Items: []model.ListItem{
					{Text: "top", Sublist: &model.ListData{Items: []model.ListItem{{}}}},
				},
			}},
		},
	)

	violations := v.Validate(doc)
	found := false
	for _, viol := range violations {
		if viol.Path == "blocks[0].list.items[0].sublist.items[0]" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected violation inside nested sublist, got %v", violations)
	}
}

func TestValidate_ChoiceQuestion(t *testing.T) {
	v := mustValidator(t)

	doc := model.NewDocument(
		model.Metadata{DocType: model.DocTypeExam, Confidence: 0.7},
		[]model.Block{
			{ID: "q1", Type: model.BlockChoiceQuestion, Question: &model.ChoiceData{
				Prompt:  "What is the capital of Vietnam?",
				Options: []string{"Hanoi", "Da Nang", "Hue", "Can Tho"},
				Answer:  "Hanoi",
			}},
			{ID: "q2", Type: model.BlockChoiceQuestion, Question: &model.ChoiceData{
				Prompt:  "Only one option",
				Options: []string{"alone"},
			}},
		},
	)

	violations := v.Validate(doc)
	for _, viol := range violations {
		if strings.HasPrefix(viol.Path, "blocks[0]") {
			t.Errorf("well-formed question flagged: %v", viol)
		}
	}
	found := false
	for _, viol := range violations {
		if viol.Path == "blocks[1].question.options" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected options violation for blocks[1], got %v", violations)
	}
}

func TestValidate_NilDocument(t *testing.T) {
	v := mustValidator(t)

	violations := v.Validate(nil)
	if len(violations) != 1 || violations[0].Path != "$" {
		t.Errorf("expected single root violation for nil document, got %v", violations)
	}
}
