package mdpages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/fileutil"
	"github.com/alnah/go-mdpages/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ FragmentConverter = (*pipeline.PandocConverter)(nil)
	_ FragmentConverter = (*pipeline.CardsConverter)(nil)
	_ FragmentConverter = (*pipeline.GoldmarkConverter)(nil)
	_ AssetLoader       = (*assets.AssetResolver)(nil)
	_ pdfConverter      = (*chromeExporter)(nil)
	_ pagePrinter       = (*rodPrinter)(nil)
)

// Generator runs pipelines. Create with NewGenerator, run pipelines with
// Run, and Close when done. A Generator is not safe for concurrent use.
type Generator struct {
	cfg        generatorConfig
	stdout     io.Writer
	logger     *zap.Logger
	loader     AssetLoader
	converters map[string]FragmentConverter
	assemblers map[string]*pipeline.Assembler
	pdf        pdfConverter // nil when PDF export is disabled
}

// NewGenerator creates a Generator. Returns an error if the asset path is
// not a readable directory.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		stdout:     io.Discard,
		logger:     zap.NewNop(),
		converters: make(map[string]FragmentConverter),
		assemblers: make(map[string]*pipeline.Assembler),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.loader == nil {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		g.loader = resolver
		g.logger.Debug("templates resolved",
			zap.Bool("custom", resolver.HasCustomLoader()),
			zap.String("assetPath", g.cfg.assetPath))
	}

	if g.cfg.pdfEnabled && g.pdf == nil {
		timeout := g.cfg.pdfTimeout
		if timeout == 0 {
			timeout = DefaultPDFTimeout
		}
		g.pdf = newChromeExporter(timeout)
	}

	return g, nil
}

// Close releases browser resources held by PDF export.
func (g *Generator) Close() error {
	if g.pdf != nil {
		return g.pdf.Close()
	}
	return nil
}

// converter returns the converter for kind, building a built-in one on
// first use.
func (g *Generator) converter(kind string) (FragmentConverter, error) {
	if c, ok := g.converters[kind]; ok {
		return c, nil
	}

	var c FragmentConverter
	switch kind {
	case ConverterPandoc:
		pc := pipeline.NewPandocConverter(g.cfg.pandocBin, g.cfg.pandocArgs)
		if g.cfg.runner != nil {
			pc.Runner = g.cfg.runner
		}
		c = pc
	case ConverterCards:
		c = pipeline.NewCardsConverter(g.cfg.escapeHTML)
	case ConverterGoldmark:
		c = pipeline.NewGoldmarkConverter()
	default:
		return nil, fmt.Errorf("%w: %q (must be one of %s)",
			pipeline.ErrUnknownConverter, kind, strings.Join(pipeline.ConverterKinds, ", "))
	}

	g.converters[kind] = c
	return c, nil
}

// assembler returns the parsed template for name, loading it on first use.
func (g *Generator) assembler(name string) (*pipeline.Assembler, error) {
	if a, ok := g.assemblers[name]; ok {
		return a, nil
	}

	source, err := g.loader.LoadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadTemplate, err)
	}
	a, err := pipeline.NewAssembler(name, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadTemplate, err)
	}

	g.assemblers[name] = a
	return a, nil
}

// Run converts every page of p in table order and prints progress and a
// summary to the generator's stdout.
//
// Missing sources and conversion failures are recorded in the report and
// the run continues. Read and write failures, an unusable converter or
// template, and context cancellation abort the run; the report then holds
// the pages processed so far.
func (g *Generator) Run(ctx context.Context, p Pipeline) (*Report, error) {
	report := &Report{Pipeline: p.Name}

	if len(p.Pages) == 0 {
		return report, fmt.Errorf("%w: %q", ErrNoPages, p.Name)
	}

	conv, err := g.converter(p.Converter)
	if err != nil {
		return report, err
	}
	asm, err := g.assembler(p.Template)
	if err != nil {
		return report, err
	}

	g.logger.Debug("running pipeline",
		zap.String("pipeline", p.Name),
		zap.String("converter", p.Converter),
		zap.String("template", asm.Name()),
		zap.String("docs", p.DocsDir),
		zap.String("output", p.OutputDir),
		zap.Int("pages", len(p.Pages)))

	if p.Banner != "" {
		fmt.Fprintln(g.stdout, p.Banner)
		fmt.Fprintln(g.stdout)
	}

	for _, page := range p.Pages {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := g.runPage(ctx, &p, page, conv, asm)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, res)
	}

	g.printSummary(&p, report)
	return report, nil
}

// runPage converts one page. The returned error is fatal to the run.
func (g *Generator) runPage(ctx context.Context, p *Pipeline, page Page, conv FragmentConverter, asm *pipeline.Assembler) (Result, error) {
	start := time.Now()
	res := Result{
		Page:   page,
		Source: filepath.Join(p.DocsDir, page.Source),
	}

	data, err := os.ReadFile(res.Source) // #nosec G304 -- source names come from the page table
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			res.Status = StatusSkipped
			if !page.Optional {
				fmt.Fprintf(g.stdout, "⚠️  Skipping %s (not found)\n", page.Source)
			}
			g.logger.Debug("source missing",
				zap.String("source", res.Source),
				zap.Bool("optional", page.Optional))
			return res, nil
		}
		return res, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	fmt.Fprintf(g.stdout, "Converting %s to %s...\n", page.Source, page.Output)

	fm, body := pipeline.SplitFrontMatter(string(data))

	fragment, err := conv.ToFragment(ctx, body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%s: %w", page.Source, err)
		res.Duration = time.Since(start)
		fmt.Fprintf(g.stdout, "❌ Error converting %s: %v\n", res.Source, err)
		g.logger.Debug("conversion failed", zap.String("source", res.Source), zap.Error(err))
		return res, nil
	}

	hero := p.hero(page)
	pageData := pipeline.PageData{
		Title:        firstNonEmpty(fm.Title, page.Title),
		HeroTitle:    firstNonEmpty(fm.HeroTitle, hero.Title),
		HeroSubtitle: firstNonEmpty(fm.HeroSubtitle, hero.Subtitle),
		Content:      fragment,
		Footer:       pipeline.Footer(p.Footer),
	}

	html, err := asm.Assemble(pageData)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%s: %w", page.Source, err)
		res.Duration = time.Since(start)
		fmt.Fprintf(g.stdout, "❌ Error converting %s: %v\n", res.Source, err)
		return res, nil
	}

	outPath := filepath.Join(p.OutputDir, page.Output)
	if err := fileutil.WriteFile(outPath, []byte(html)); err != nil {
		return res, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	res.Status = StatusCreated
	res.Output = outPath
	fmt.Fprintf(g.stdout, "✅ Created %s\n", page.Output)

	if g.pdf != nil {
		if err := g.exportPDF(ctx, &res, html); err != nil {
			return res, err
		}
	}

	res.Duration = time.Since(start)
	g.logger.Debug("page created",
		zap.String("source", res.Source),
		zap.String("output", res.Output),
		zap.Int("bytes", len(html)),
		zap.Duration("elapsed", res.Duration))

	return res, nil
}

// exportPDF renders a written page next to its HTML file. Render failures
// are recorded on the result; only a failed write is returned.
func (g *Generator) exportPDF(ctx context.Context, res *Result, html string) error {
	pdfPath := strings.TrimSuffix(res.Output, filepath.Ext(res.Output)) + ".pdf"
	name := filepath.Base(pdfPath)

	pdf, err := g.pdf.ToPDF(ctx, html)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		res.PDFErr = fmt.Errorf("%s: %w", name, err)
		fmt.Fprintf(g.stdout, "❌ Error exporting %s: %v\n", name, err)
		return nil
	}

	if err := fileutil.WriteFile(pdfPath, pdf); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	res.PDF = pdfPath
	fmt.Fprintf(g.stdout, "📄 Created %s\n", name)
	return nil
}

// printSummary prints the closing lines of a run.
func (g *Generator) printSummary(p *Pipeline, report *Report) {
	done := p.Done
	if done == "" {
		done = fmt.Sprintf("✅ Pipeline %s finished", p.Name)
	}

	fmt.Fprintln(g.stdout)
	fmt.Fprintln(g.stdout, done)
	fmt.Fprintf(g.stdout, "📊 %d created, %d skipped, %d failed\n",
		report.Count(StatusCreated), report.Count(StatusSkipped), report.Count(StatusFailed))
	fmt.Fprintf(g.stdout, "📍 Location: %s\n", p.OutputDir)

	if len(p.View) == 0 {
		return
	}
	fmt.Fprintln(g.stdout)
	fmt.Fprintln(g.stdout, "View at:")
	for _, name := range p.View {
		fmt.Fprintf(g.stdout, "  %s\n", viewURL(p, name))
	}
}

// viewURL returns where an output file can be viewed.
func viewURL(p *Pipeline, name string) string {
	if p.BaseURL == "" {
		return filepath.Join(p.OutputDir, name)
	}
	return strings.TrimSuffix(p.BaseURL, "/") + "/" + name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
