package model

import "time"

// FormatVersion is the canonical document format emitted by this version.
const FormatVersion = "1.0"

// BlockType identifies the shape of a canonical block
type BlockType string

const (
	BlockHeading        BlockType = "heading"
	BlockParagraph      BlockType = "paragraph"
	BlockList           BlockType = "list"
	BlockTable          BlockType = "table"
	BlockImage          BlockType = "image"
	BlockCode           BlockType = "code"
	BlockBlockquote     BlockType = "blockquote"
	BlockChoiceQuestion BlockType = "choice-question"
	BlockDivider        BlockType = "divider"
)

// BlockTypes lists every valid block type tag
var BlockTypes = []BlockType{
	BlockHeading, BlockParagraph, BlockList, BlockTable, BlockImage,
	BlockCode, BlockBlockquote, BlockChoiceQuestion, BlockDivider,
}

// Block is a tagged variant over the canonical block shapes.
// Type selects which of the optional payload fields is meaningful;
// the validator enforces that the payload matches the tag.
type Block struct {
	ID   string    `json:"id"`
	Type BlockType `json:"type"`

	// Text payload for heading, paragraph, code and blockquote blocks
	Text string `json:"text,omitempty"`

	// Level is the heading depth (1-6), heading blocks only
	Level int `json:"level,omitempty"`

	// Language is the code block language hint
	Language string `json:"language,omitempty"`

	// List payload
	List *ListData `json:"list,omitempty"`

	// Table payload
	Table *TableData `json:"table,omitempty"`

	// Image payload
	Image *ImageData `json:"image,omitempty"`

	// Question payload for choice-question blocks
	Question *ChoiceData `json:"question,omitempty"`
}

// ListData holds list items; items may nest further lists
type ListData struct {
	Ordered bool       `json:"ordered"`
	Items   []ListItem `json:"items"`
}

// ListItem is one list entry with an optional nested sublist
type ListItem struct {
	Text    string    `json:"text"`
	Sublist *ListData `json:"sublist,omitempty"`
}

// TableData holds a header row and body rows of spanning cells
type TableData struct {
	Header []TableCell   `json:"header,omitempty"`
	Rows   [][]TableCell `json:"rows"`
}

// TableCell is a single table cell with row/column spans (>= 1)
type TableCell struct {
	Text    string `json:"text"`
	RowSpan int    `json:"row_span"`
	ColSpan int    `json:"col_span"`
}

// ImageData references an image by source with optional caption
type ImageData struct {
	Source  string `json:"source"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// ChoiceData is a multiple-choice question with its options
type ChoiceData struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  string   `json:"answer,omitempty"`
}

// DocumentType is the closed enumeration of recognized document kinds
type DocumentType string

const (
	DocTypeGeneral  DocumentType = "general"
	DocTypeArticle  DocumentType = "article"
	DocTypeReport   DocumentType = "report"
	DocTypeInvoice  DocumentType = "invoice"
	DocTypeReceipt  DocumentType = "receipt"
	DocTypeContract DocumentType = "contract"
	DocTypeForm     DocumentType = "form"
	DocTypeExam     DocumentType = "exam"
	DocTypeLetter   DocumentType = "letter"
)

// DocumentTypes lists every valid document type tag
var DocumentTypes = []DocumentType{
	DocTypeGeneral, DocTypeArticle, DocTypeReport, DocTypeInvoice,
	DocTypeReceipt, DocTypeContract, DocTypeForm, DocTypeExam, DocTypeLetter,
}

// ValidDocumentType reports whether t is a member of the closed enumeration
func ValidDocumentType(t DocumentType) bool {
	for _, dt := range DocumentTypes {
		if t == dt {
			return true
		}
	}
	return false
}

// Metadata describes the document as a whole
type Metadata struct {
	Title      string       `json:"title,omitempty"`
	Author     string       `json:"author,omitempty"`
	Subject    string       `json:"subject,omitempty"`
	Keywords   []string     `json:"keywords,omitempty"`
	DocType    DocumentType `json:"doc_type"`
	Language   string       `json:"language,omitempty"`
	Confidence float64      `json:"confidence"` // 0..1
}

// Document is the canonical, validated representation of a structured
// document, independent of any editor's native format. Block IDs are
// unique within a document; the core never mutates a document after
// construction.
type Document struct {
	Metadata      Metadata  `json:"metadata"`
	Blocks        []Block   `json:"blocks"`
	FormatVersion string    `json:"format_version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewDocument creates a document shell with version and timestamps set
func NewDocument(meta Metadata, blocks []Block) *Document {
	now := time.Now().UTC()
	if meta.DocType == "" {
		meta.DocType = DocTypeGeneral
	}
	return &Document{
		Metadata:      meta,
		Blocks:        blocks,
		FormatVersion: FormatVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
