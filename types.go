package mdpages

import (
	"time"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/pipeline"
)

// Converter kinds.
const (
	ConverterPandoc   = pipeline.ConverterPandoc
	ConverterCards    = pipeline.ConverterCards
	ConverterGoldmark = pipeline.ConverterGoldmark
)

// Built-in template names.
const (
	TemplatePrint = assets.TemplatePrint
	TemplateCards = assets.TemplateCards
)

// Page describes one conversion job.
type Page struct {
	Source       string // file name under Pipeline.DocsDir
	Output       string // file name under Pipeline.OutputDir
	Title        string // document <title>, also the hero lookup key
	HeroTitle    string // optional
	HeroSubtitle string // optional
	Optional     bool   // skip silently when Source is missing
}

// Hero is the headline block shown above a page's content.
type Hero struct {
	Title    string
	Subtitle string
}

// Footer is the contact block printed at the bottom of every page.
type Footer struct {
	Company   string
	Contact   string
	Copyright string
}

// Pipeline is a named table of pages sharing a converter and template.
type Pipeline struct {
	Name      string
	Converter string // ConverterPandoc, ConverterCards or ConverterGoldmark
	Template  string // TemplatePrint, TemplateCards or a custom template name

	DocsDir   string
	OutputDir string
	BaseURL   string // prefix for the "View at" list; empty lists file paths

	Footer          Footer
	Heroes          map[string]Hero // keyed by Page.Title
	DefaultSubtitle string
	Pages           []Page
	View            []string // output names announced after the run

	Banner string // printed before the first page
	Done   string // printed after the last page
}

// hero resolves the display headline for a page: explicit page values win,
// then the pipeline's hero table, then the title and default subtitle.
func (p *Pipeline) hero(page Page) Hero {
	h, ok := p.Heroes[page.Title]
	if !ok {
		h = Hero{Title: page.Title, Subtitle: p.DefaultSubtitle}
	}
	if page.HeroTitle != "" {
		h.Title = page.HeroTitle
	}
	if page.HeroSubtitle != "" {
		h.Subtitle = page.HeroSubtitle
	}
	return h
}

// Status is the outcome of one page.
type Status int

const (
	StatusCreated Status = iota
	StatusSkipped        // source missing
	StatusFailed         // conversion failed
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of one page.
type Result struct {
	Page     Page
	Source   string // resolved source path
	Output   string // resolved output path, set when Status is StatusCreated
	Status   Status
	Err      error  // conversion error, set when Status is StatusFailed
	PDF      string // PDF path, set when PDF export succeeded
	PDFErr   error  // PDF export error; the HTML page was still written
	Duration time.Duration
}

// Report aggregates the results of one pipeline run.
type Report struct {
	Pipeline string
	Results  []Result
}

// Count returns the number of results with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// HasFailures reports whether any page failed to convert or export.
func (r *Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == StatusFailed || res.PDFErr != nil {
			return true
		}
	}
	return false
}

// Errors returns every per-page error in table order.
func (r *Report) Errors() []error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
		if res.PDFErr != nil {
			errs = append(errs, res.PDFErr)
		}
	}
	return errs
}
