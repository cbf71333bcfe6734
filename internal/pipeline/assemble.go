package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Sentinel errors for page assembly.
var (
	ErrTemplateParse  = errors.New("page template parsing failed")
	ErrTemplateRender = errors.New("page template rendering failed")
)

// Footer is the contact block printed at the bottom of every page.
type Footer struct {
	Company   string
	Contact   string
	Copyright string
}

// PageData is substituted into a page template.
// Values are inserted verbatim: text/template does no HTML escaping, so a
// malformed Content fragment ends up in the page as is.
type PageData struct {
	Title        string // <title> of the document
	HeroTitle    string
	HeroSubtitle string
	Content      string // HTML fragment
	Footer       Footer
}

// Assembler fills one page template.
type Assembler struct {
	tmpl *template.Template
}

// NewAssembler parses a page template. Referencing a field PageData does
// not have is a parse-time error.
func NewAssembler(name, source string) (*Assembler, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTemplateParse, name, err)
	}
	if err := tmpl.Execute(discard{}, PageData{}); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTemplateParse, name, err)
	}
	return &Assembler{tmpl: tmpl}, nil
}

// Assemble renders a complete HTML document.
func (a *Assembler) Assemble(data PageData) (string, error) {
	var sb strings.Builder
	if err := a.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return sb.String(), nil
}

// Name returns the template name.
func (a *Assembler) Name() string {
	return a.tmpl.Name()
}

// discard is an io.Writer used for the parse-time dry run.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
