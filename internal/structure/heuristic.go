package structure

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/maemreyo/canonica/internal/model"
)

// heuristicConfidence reflects the tier's lower structural fidelity
const heuristicConfidence = 0.5

// maxHeadingLength bounds the short-line heading heuristic
const maxHeadingLength = 60

var (
	numberedHeadingRe = regexp.MustCompile(`^(\d+)((\.\d+)*)[.)]?\s+\S`)
	orderedItemRe     = regexp.MustCompile(`^\d+[.)]\s+`)
	blankLineRe       = regexp.MustCompile(`\n\s*\n`)
)

var bulletMarkers = []string{"- ", "* ", "• "}

// Heuristic structures text locally with no external call: blank-line
// boundaries become paragraphs, simple lexical patterns detect
// headings, bullet runs become lists. It always succeeds structurally
// at the cost of lower fidelity than the external tiers.
type Heuristic struct{}

// NewHeuristic creates the local heuristic strategy
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Tier implements Strategy
func (s *Heuristic) Tier() model.Tier {
	return model.TierHeuristic
}

// Attempt implements Strategy. It never returns an error for
// non-empty input.
func (s *Heuristic) Attempt(ctx context.Context, rawText string, opts model.Options) (*model.Document, error) {
	segments := splitSegments(rawText)

	var blocks []model.Block
	nextID := func() string {
		return fmt.Sprintf("b%d", len(blocks)+1)
	}

	title := ""
	for _, segment := range segments {
		lines := segmentLines(segment)
		if len(lines) == 0 {
			continue
		}

		switch {
		case len(lines) == 1 && isDividerLine(lines[0]):
			blocks = append(blocks, model.Block{
				ID:   nextID(),
				Type: model.BlockDivider,
			})

		case len(lines) == 1 && isHeadingLine(lines[0]):
			text, level := headingOf(lines[0])
			if title == "" {
				title = text
			}
			blocks = append(blocks, model.Block{
				ID:    nextID(),
				Type:  model.BlockHeading,
				Text:  text,
				Level: level,
			})

		case allBulletItems(lines):
			blocks = append(blocks, model.Block{
				ID:   nextID(),
				Type: model.BlockList,
				List: &model.ListData{Ordered: false, Items: bulletItems(lines)},
			})

		case allOrderedItems(lines):
			blocks = append(blocks, model.Block{
				ID:   nextID(),
				Type: model.BlockList,
				List: &model.ListData{Ordered: true, Items: orderedItems(lines)},
			})

		default:
			blocks = append(blocks, model.Block{
				ID:   nextID(),
				Type: model.BlockParagraph,
				Text: strings.Join(lines, " "),
			})
		}
	}

	meta := model.Metadata{
		Title:      title,
		DocType:    opts.DocumentType,
		Language:   opts.Language,
		Confidence: heuristicConfidence,
	}
	return model.NewDocument(meta, blocks), nil
}

// splitSegments breaks text on blank-line boundaries
func splitSegments(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var segments []string
	for _, segment := range blankLineRe.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func segmentLines(segment string) []string {
	var lines []string
	for _, line := range strings.Split(segment, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// isDividerLine matches horizontal-rule runs like "---" or "====="
func isDividerLine(line string) bool {
	if len(line) < 3 {
		return false
	}
	for _, r := range line {
		if r != '-' && r != '=' && r != '*' && r != '_' {
			return false
		}
	}
	return true
}

// isHeadingLine applies the lexical heading heuristics: leading
// section numbering, or a short line written entirely in capitals
func isHeadingLine(line string) bool {
	if numberedHeadingRe.MatchString(line) {
		return true
	}
	return isShortAllCaps(line)
}

func isShortAllCaps(line string) bool {
	if len(line) > maxHeadingLength || strings.HasSuffix(line, ".") {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// headingOf derives heading text and level. Numbered headings take
// their depth from the numbering ("2.1.3" is level 3, capped at 6).
func headingOf(line string) (string, int) {
	if m := numberedHeadingRe.FindStringSubmatch(line); m != nil {
		level := 1 + strings.Count(m[2], ".")
		if level > 6 {
			level = 6
		}
		return line, level
	}
	return line, 1
}

func allBulletItems(lines []string) bool {
	for _, line := range lines {
		if bulletMarker(line) == "" {
			return false
		}
	}
	return true
}

func bulletMarker(line string) string {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return marker
		}
	}
	return ""
}

func bulletItems(lines []string) []model.ListItem {
	items := make([]model.ListItem, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(strings.TrimPrefix(line, bulletMarker(line)))
		items = append(items, model.ListItem{Text: text})
	}
	return items
}

func allOrderedItems(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	for _, line := range lines {
		if !orderedItemRe.MatchString(line) {
			return false
		}
	}
	return true
}

func orderedItems(lines []string) []model.ListItem {
	items := make([]model.ListItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.ListItem{Text: orderedItemRe.ReplaceAllString(line, "")})
	}
	return items
}
