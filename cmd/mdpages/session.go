package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	mdpages "github.com/alnah/go-mdpages"
	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/config"
	"github.com/alnah/go-mdpages/internal/hints"
	"github.com/alnah/go-mdpages/internal/pipeline"
)

// session is a configured generator and the pipelines selected for it.
type session struct {
	cfg       *config.Config
	gen       *mdpages.Generator
	pipelines []mdpages.Pipeline
	logger    *zap.Logger
	stdout    io.Writer
}

// newSession resolves configuration (flags > env > config file > defaults),
// selects pipelines and builds the generator. Errors carry hints.
func newSession(common *commonFlags, source *sourceFlags, render *renderFlags, env *Environment) (*session, error) {
	logger := newLogger(common.verbose, env.Stderr)

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := resolveConfig(firstNonEmpty(common.config, envCfg.ConfigPath), env)
	if err != nil {
		return nil, withHint(err, hintFor(err, nil))
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(source, render, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, withHint(err, hintFor(err, cfg))
	}

	name := firstNonEmpty(source.pipeline, envCfg.Pipeline, config.DefaultPipeline)
	selected, err := cfg.Select(name)
	if err != nil {
		return nil, withHint(err, hintFor(err, cfg))
	}

	s := &session{cfg: cfg, logger: logger, stdout: env.Stdout}
	if common.quiet {
		s.stdout = io.Discard
	}
	for _, pc := range selected {
		s.pipelines = append(s.pipelines, toPipeline(cfg, pc))
	}

	gen, err := mdpages.NewGenerator(s.generatorOptions()...)
	if err != nil {
		return nil, withHint(err, hintFor(err, cfg))
	}
	s.gen = gen

	logger.Debug("configuration resolved",
		zap.String("pipeline", name),
		zap.String("docs", cfg.DocsDir),
		zap.String("output", cfg.OutputDir),
		zap.String("assets", cfg.Assets.BasePath),
		zap.Bool("escapeHTML", cfg.EscapeHTML),
		zap.Bool("pdf", cfg.PDF.Enabled))

	return s, nil
}

func (s *session) generatorOptions() []mdpages.Option {
	opts := []mdpages.Option{
		mdpages.WithStdout(s.stdout),
		mdpages.WithLogger(s.logger),
		mdpages.WithAssetPath(s.cfg.Assets.BasePath),
		mdpages.WithEscapeHTML(s.cfg.EscapeHTML),
		mdpages.WithPandoc(s.cfg.Pandoc.Bin, s.cfg.Pandoc.Args),
	}
	if s.cfg.PDF.Enabled {
		opts = append(opts, mdpages.WithPDF(s.cfg.PDF.Timeout))
	}
	return opts
}

// Close releases the generator's browser and flushes the logger.
func (s *session) Close() error {
	_ = s.logger.Sync()
	return s.gen.Close()
}

// runAll runs the selected pipelines in order. A fatal error stops the
// remaining pipelines; the reports gathered so far are returned with it.
func (s *session) runAll(ctx context.Context) ([]*mdpages.Report, error) {
	var reports []*mdpages.Report
	for i, p := range s.pipelines {
		if i > 0 {
			fmt.Fprintln(s.stdout)
		}
		report, err := s.gen.Run(ctx, p)
		reports = append(reports, report)
		if err != nil {
			return reports, withHint(fmt.Errorf("pipeline %s: %w", p.Name, err), hintFor(err, s.cfg))
		}
	}
	return reports, nil
}

// reportFailures writes per-page errors to w when progress output is
// suppressed, then one hint per distinct cause. Returns the failure count.
func (s *session) reportFailures(w io.Writer, reports []*mdpages.Report, quiet bool) int {
	var failed int
	var seen []string
	for _, r := range reports {
		for _, err := range r.Errors() {
			failed++
			if quiet {
				fmt.Fprintf(w, "error: %s: %v\n", r.Pipeline, err)
			}
			if h := hintFor(err, s.cfg); h != "" && !slices.Contains(seen, h) {
				seen = append(seen, h)
			}
		}
	}
	for _, h := range seen {
		fmt.Fprintln(w, h[1:]) // drop the leading newline
	}
	return failed
}

// resolveConfig loads a named or path config, or copies the environment's
// built-in tables so flag merging never mutates them.
func resolveConfig(nameOrPath string, env *Environment) (*config.Config, error) {
	if nameOrPath != "" {
		return config.LoadConfig(nameOrPath)
	}
	if env.Config == nil {
		return config.DefaultConfig(), nil
	}
	cfg := *env.Config
	cfg.Pipelines = slices.Clone(env.Config.Pipelines)
	return &cfg, nil
}

// mergeFlags applies explicitly set CLI flags over cfg.
func mergeFlags(source *sourceFlags, render *renderFlags, cfg *config.Config) {
	if source.docs != "" {
		cfg.DocsDir = source.docs
	}
	if source.output != "" {
		setOutputDir(cfg, source.output)
	}
	if source.converter != "" {
		for i := range cfg.Pipelines {
			cfg.Pipelines[i].Converter = source.converter
		}
	}
	if render.escapeHTML {
		cfg.EscapeHTML = true
	}
	if render.assetPath != "" {
		cfg.Assets.BasePath = render.assetPath
	}
	if render.pdf {
		cfg.PDF.Enabled = true
	}
	if render.pdfTimeout > 0 {
		cfg.PDF.Timeout = render.pdfTimeout
	}
}

// toPipeline maps a validated pipeline config onto the library type.
func toPipeline(cfg *config.Config, pc config.PipelineConfig) mdpages.Pipeline {
	footer := cfg.PipelineFooter(pc)
	p := mdpages.Pipeline{
		Name:            pc.Name,
		Converter:       pc.Converter,
		Template:        pc.Template,
		DocsDir:         cfg.DocsDir,
		OutputDir:       cfg.PipelineOutputDir(pc),
		BaseURL:         cfg.BaseURL,
		Footer:          mdpages.Footer{Company: footer.Company, Contact: footer.Contact, Copyright: footer.Copyright},
		DefaultSubtitle: pc.DefaultSubtitle,
		View:            slices.Clone(pc.View),
		Banner:          pc.Banner,
		Done:            pc.Done,
	}
	if len(pc.Heroes) > 0 {
		p.Heroes = make(map[string]mdpages.Hero, len(pc.Heroes))
		for title, h := range pc.Heroes {
			p.Heroes[title] = mdpages.Hero{Title: h.Title, Subtitle: h.Subtitle}
		}
	}
	for _, page := range pc.Pages {
		p.Pages = append(p.Pages, mdpages.Page{
			Source:       page.Source,
			Output:       page.Output,
			Title:        page.Title,
			HeroTitle:    page.HeroTitle,
			HeroSubtitle: page.HeroSubtitle,
			Optional:     page.Optional,
		})
	}
	return p
}

// hintFor returns an actionable hint for err, or "". cfg may be nil when
// no configuration was loaded.
func hintFor(err error, cfg *config.Config) string {
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, config.ErrUnknownPipeline) && cfg != nil:
		return hints.ForUnknownPipeline(cfg.PipelineNames())
	case errors.Is(err, config.ErrOutputConflict):
		return hints.ForOutputConflict()
	case errors.Is(err, assets.ErrTemplateNotFound):
		return hints.ForTemplateNotFound(assets.TemplateNames)
	case errors.Is(err, pipeline.ErrConverterNotFound):
		bin := ""
		if cfg != nil {
			bin = cfg.Pandoc.Bin
		}
		return hints.ForPandocNotFound(bin)
	case errors.Is(err, mdpages.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdpages.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, mdpages.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// newLogger returns a debug-level console logger on w when verbose, and a
// no-op logger otherwise.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)
	return zap.New(core)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
