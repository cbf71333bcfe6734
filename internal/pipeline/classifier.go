package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// BlockKind identifies the HTML element a Block renders to.
type BlockKind int

const (
	BlockHeading BlockKind = iota + 1
	BlockList
	BlockParagraph
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockList:
		return "list"
	case BlockParagraph:
		return "paragraph"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

// Block is one classified unit of a markdown document.
// Text and Items hold raw markdown; inline formatting happens at render time.
type Block struct {
	Kind  BlockKind
	Level int      // 2-4, headings only
	Icon  string   // level-2 headings only
	Text  string   // heading or paragraph text
	Items []string // list items with markers stripped
	Line  int      // 1-based source line where the block starts
	Lines int      // number of source lines consumed
}

// horizontalRule is consumed silently, like blank lines.
const horizontalRule = "---"

var (
	numberedItemPattern = regexp.MustCompile(`^\d+\.`)
	listMarkerPattern   = regexp.MustCompile(`^[-*]\s+|^\d+\.\s+`)
)

// classifierState tracks whether the scan is inside a list run.
type classifierState int

const (
	stateScanning classifierState = iota
	stateInList
)

// Classify splits markdown into blocks in one left-to-right pass.
//
// Every line is consumed exactly once. Level-1 headings, blank lines and
// horizontal rules produce no block. A list run ends at the first line that
// is not a list item, blank lines included; indentation is ignored, so
// nested lists flatten into their parent. Blockquotes, tables, links and
// images are not recognized and become paragraphs carrying the raw syntax.
func Classify(markdown string) []Block {
	lines := strings.Split(markdown, "\n")
	blocks := make([]Block, 0, len(lines)/2)

	state := stateScanning
	var list Block

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		lineNo := i + 1

		if state == stateInList {
			if isListItem(line) {
				list.Items = append(list.Items, stripListMarker(line))
				list.Lines++
				continue
			}
			blocks = append(blocks, list)
			state = stateScanning
		}

		switch {
		case line == "" || line == horizontalRule:
		case strings.HasPrefix(line, "# "):
		case strings.HasPrefix(line, "## "):
			text := strings.TrimSpace(line[3:])
			blocks = append(blocks, Block{Kind: BlockHeading, Level: 2, Icon: SelectIcon(text), Text: text, Line: lineNo, Lines: 1})
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, Block{Kind: BlockHeading, Level: 3, Text: strings.TrimSpace(line[4:]), Line: lineNo, Lines: 1})
		case strings.HasPrefix(line, "#### "):
			blocks = append(blocks, Block{Kind: BlockHeading, Level: 4, Text: strings.TrimSpace(line[5:]), Line: lineNo, Lines: 1})
		case isListItem(line):
			list = Block{Kind: BlockList, Items: []string{stripListMarker(line)}, Line: lineNo, Lines: 1}
			state = stateInList
		default:
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: line, Line: lineNo, Lines: 1})
		}
	}

	if state == stateInList {
		blocks = append(blocks, list)
	}
	return blocks
}

// isListItem reports whether a trimmed line opens or continues a list.
func isListItem(line string) bool {
	return strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ") ||
		numberedItemPattern.MatchString(line)
}

// stripListMarker removes a leading bullet or "N. " marker.
// "1.text" is a list item but keeps its marker, since the strip pattern
// requires whitespace after the dot.
func stripListMarker(line string) string {
	return listMarkerPattern.ReplaceAllString(line, "")
}

// h2Format renders a level-2 heading with its decorative icon.
const h2Format = `<h2><span class="material-symbols-outlined" style="font-size: 28px; color: #2B4162;">%s</span> %s</h2>`

// RenderBlocks renders blocks as an HTML fragment, one tag per line.
// The fragment is not validated; raw markdown left in paragraphs passes
// through unchanged.
func RenderBlocks(blocks []Block, f InlineFormatter) string {
	out := make([]string, 0, len(blocks)*2)
	for _, b := range blocks {
		switch b.Kind {
		case BlockHeading:
			text := f.Format(b.Text)
			if b.Level == 2 {
				out = append(out, fmt.Sprintf(h2Format, b.Icon, text))
				continue
			}
			out = append(out, fmt.Sprintf("<h%d>%s</h%d>", b.Level, text, b.Level))
		case BlockList:
			out = append(out, "<ul>")
			for _, item := range b.Items {
				out = append(out, "<li>"+f.Format(item)+"</li>")
			}
			out = append(out, "</ul>")
		case BlockParagraph:
			out = append(out, "<p>"+f.Format(b.Text)+"</p>")
		}
	}
	return strings.Join(out, "\n")
}
