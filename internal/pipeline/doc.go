// Package pipeline implements the markdown-to-page conversion stages.
//
// A page is produced in two steps:
//   - a FragmentConverter turns markdown into an HTML fragment
//     (pandoc subprocess, the in-process line classifier, or goldmark)
//   - an Assembler substitutes the fragment and the page's display text
//     into a themed template
//
// The line classifier (Classify, RenderBlocks) is deliberately minimal:
// headings, flat lists and paragraphs with bold, italic and code spans.
// Anything else is passed through as paragraph text.
package pipeline
