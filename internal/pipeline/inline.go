package pipeline

import (
	"regexp"
	"strings"
)

// Inline span patterns, applied in this order. Bold must run before italic
// so that "**a**" is not consumed as two empty italic spans.
var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.+?)\*`)
	codePattern   = regexp.MustCompile("`(.+?)`")
)

// htmlEscaper escapes the characters that change HTML structure.
// Quotes are left alone: inline text never lands inside an attribute.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// InlineFormatter rewrites bold, italic and code spans to HTML.
type InlineFormatter struct {
	// Escape makes Format escape &, < and > before rewriting spans.
	// Off by default: source documents are trusted and may carry raw HTML.
	Escape bool
}

// Format rewrites inline markdown spans in text.
// Unbalanced markers are left as literal characters.
func (f InlineFormatter) Format(text string) string {
	if f.Escape {
		text = htmlEscaper.Replace(text)
	}
	return FormatInline(text)
}

// FormatInline rewrites **bold**, *italic* and `code` spans without escaping.
// Text without markers is returned unchanged.
func FormatInline(text string) string {
	if !strings.ContainsAny(text, "*`") {
		return text
	}
	text = boldPattern.ReplaceAllString(text, "<strong>${1}</strong>")
	text = italicPattern.ReplaceAllString(text, "<em>${1}</em>")
	text = codePattern.ReplaceAllString(text, "<code>${1}</code>")
	return text
}
