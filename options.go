package mdpages

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpages/internal/pipeline"
)

// FragmentConverter turns markdown into an HTML fragment.
// Any implementation can replace a built-in converter via WithConverter.
type FragmentConverter interface {
	ToFragment(ctx context.Context, markdown string) (string, error)
}

// AssetLoader provides page template sources by name.
type AssetLoader interface {
	LoadTemplate(name string) (string, error)
}

// CommandRunner runs an external command with markdown on stdin.
// Replaces the process runner used by the pandoc converter.
type CommandRunner = pipeline.CommandRunner

// DefaultPDFTimeout bounds the rendering of a single page.
const DefaultPDFTimeout = 30 * time.Second

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds settings applied when converters are built.
type generatorConfig struct {
	escapeHTML bool
	pandocBin  string
	pandocArgs []string
	runner     CommandRunner
	assetPath  string
	pdfEnabled bool
	pdfTimeout time.Duration
}

// WithStdout sets the writer for progress lines. Defaults to io.Discard.
func WithStdout(w io.Writer) Option {
	return func(g *Generator) {
		if w != nil {
			g.stdout = w
		}
	}
}

// WithLogger sets the diagnostic logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithAssetLoader sets a custom template loader.
// Takes precedence over WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(g *Generator) {
		g.loader = l
	}
}

// WithAssetPath loads templates from {path}/templates/NAME.html, falling
// back to the built-in templates for names the directory does not provide.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}

// WithConverter replaces the converter used for a converter kind.
func WithConverter(kind string, c FragmentConverter) Option {
	return func(g *Generator) {
		g.converters[kind] = c
	}
}

// WithEscapeHTML escapes &, < and > in source text before the built-in
// line classifier formats it. Other converters are unaffected.
func WithEscapeHTML(escape bool) Option {
	return func(g *Generator) {
		g.cfg.escapeHTML = escape
	}
}

// WithPandoc sets the pandoc binary and arguments.
// Empty values keep the defaults ("pandoc", "-f markdown -t html").
func WithPandoc(bin string, args []string) Option {
	return func(g *Generator) {
		g.cfg.pandocBin = bin
		g.cfg.pandocArgs = args
	}
}

// WithCommandRunner replaces the subprocess runner used by the pandoc converter.
func WithCommandRunner(r CommandRunner) Option {
	return func(g *Generator) {
		g.cfg.runner = r
	}
}

// WithPDF enables PDF export of every written page. A zero timeout uses
// DefaultPDFTimeout.
func WithPDF(timeout time.Duration) Option {
	if timeout < 0 {
		panic("mdpages: WithPDF timeout must not be negative")
	}
	return func(g *Generator) {
		g.cfg.pdfEnabled = true
		g.cfg.pdfTimeout = timeout
	}
}
