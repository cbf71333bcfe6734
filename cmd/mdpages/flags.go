package main

import (
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sourceFlags select what to build and where.
type sourceFlags struct {
	pipeline  string
	docs      string
	output    string
	converter string
}

// renderFlags tune how pages are produced.
type renderFlags struct {
	escapeHTML bool
	assetPath  string
	pdf        bool
	pdfTimeout time.Duration
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common commonFlags
	source sourceFlags
	render renderFlags
	strict bool
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	common   commonFlags
	source   sourceFlags
	render   renderFlags
	debounce time.Duration
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log diagnostics to stderr")
}

// addSourceFlags adds pipeline selection and path flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVarP(&f.pipeline, "pipeline", "p", "", "pipeline name or \"all\"")
	fs.StringVar(&f.docs, "docs", "", "directory holding the source documents")
	fs.StringVarP(&f.output, "output", "o", "", "output directory for every selected pipeline")
	fs.StringVar(&f.converter, "converter", "", "converter for every selected pipeline: pandoc, cards, goldmark")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.escapeHTML, "escape-html", false, "escape &, < and > in card text")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom templates")
	fs.BoolVar(&f.pdf, "pdf", false, "also export each page to PDF")
	fs.DurationVar(&f.pdfTimeout, "pdf-timeout", 0, "PDF render timeout per page (e.g. 30s)")
}

// parseGenerateFlags parses generate command flags.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	f := &generateFlags{}

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addRenderFlags(fs, &f.render)
	fs.BoolVar(&f.strict, "strict", false, "exit 1 when any page fails")

	if err := parseFlagSet(fs, args, stderr, printGenerateUsage); err != nil {
		return nil, err
	}
	if err := f.render.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// parseWatchFlags parses watch command flags.
func parseWatchFlags(args []string, stderr io.Writer) (*watchFlags, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	f := &watchFlags{}

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addRenderFlags(fs, &f.render)
	fs.DurationVar(&f.debounce, "debounce", 0, "quiet period before regenerating (default 300ms)")

	if err := parseFlagSet(fs, args, stderr, printWatchUsage); err != nil {
		return nil, err
	}
	if err := f.render.validate(); err != nil {
		return nil, err
	}
	if f.debounce < 0 {
		return nil, fmt.Errorf("%w: --debounce must not be negative", ErrUsage)
	}
	return f, nil
}

// parseFlagSet parses args and rejects positional arguments. Parse errors
// are wrapped in ErrUsage; -h returns flag.ErrHelp after printing usage.
func parseFlagSet(fs *flag.FlagSet, args []string, stderr io.Writer, usage func(io.Writer)) error {
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

func (f *renderFlags) validate() error {
	if f.pdfTimeout < 0 {
		return fmt.Errorf("%w: --pdf-timeout must not be negative", ErrUsage)
	}
	return nil
}
