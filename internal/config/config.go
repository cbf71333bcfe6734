package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrEmptyConfigName   = errors.New("config name cannot be empty")
	ErrConfigParse       = errors.New("failed to parse config")
	ErrConfigTooLarge    = errors.New("config file exceeds maximum size")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrFieldRequired     = errors.New("required field is empty")
	ErrInvalidValue      = errors.New("invalid field value")
	ErrUnknownPipeline   = errors.New("unknown pipeline")
	ErrDuplicatePipeline = errors.New("duplicate pipeline name")
	ErrOutputConflict    = errors.New("output path written twice")
	ErrInvalidPageEntry  = errors.New("invalid page entry")
)

// AllPipelines selects every configured pipeline, in table order.
const AllPipelines = "all"

// MaxConfigSize limits config input to prevent memory exhaustion.
const MaxConfigSize = 1 << 20

// Field length limits.
const (
	MaxNameLength     = 64
	MaxFileNameLength = 255
	MaxPathLength     = 4096
	MaxURLLength      = 2048
	MaxTitleLength    = 200
	MaxSubtitleLength = 300
	MaxTextLength     = 500
	MaxPages          = 256
)

// Known converter names. Kept here rather than imported from the pipeline
// package so config stays a leaf package. Template names are not checked:
// a custom asset directory may provide any template.
var converterNames = []string{"pandoc", "cards", "goldmark"}

// Config holds all configuration for page generation.
type Config struct {
	DocsDir    string           `yaml:"docsDir"`
	OutputDir  string           `yaml:"outputDir"`
	BaseURL    string           `yaml:"baseURL"`
	EscapeHTML bool             `yaml:"escapeHTML"`
	Footer     FooterConfig     `yaml:"footer"`
	Pandoc     PandocConfig     `yaml:"pandoc"`
	PDF        PDFConfig        `yaml:"pdf"`
	Assets     AssetsConfig     `yaml:"assets"`
	Pipelines  []PipelineConfig `yaml:"pipelines"`
}

// FooterConfig is the contact block printed at the bottom of every page.
// A pipeline may override it wholesale.
type FooterConfig struct {
	Company   string `yaml:"company"`
	Contact   string `yaml:"contact"`
	Copyright string `yaml:"copyright"`
}

// PandocConfig defines how the external converter is invoked.
type PandocConfig struct {
	Bin  string   `yaml:"bin"`  // default: "pandoc"
	Args []string `yaml:"args"` // default: -f markdown -t html
}

// PDFConfig defines the optional headless Chrome export.
type PDFConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"` // per page, 0 = renderer default
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded templates
}

// PipelineConfig is one named conversion profile.
type PipelineConfig struct {
	Name            string          `yaml:"name"`
	Converter       string          `yaml:"converter"`
	Template        string          `yaml:"template"`
	OutputDir       string          `yaml:"outputDir"` // empty = Config.OutputDir
	Footer          *FooterConfig   `yaml:"footer"`    // nil = Config.Footer
	DefaultSubtitle string          `yaml:"defaultSubtitle"`
	Heroes          map[string]Hero `yaml:"heroes"` // keyed by page title
	Pages           []PageConfig    `yaml:"pages"`
	View            []string        `yaml:"view"` // output names announced at the end
	Banner          string          `yaml:"banner"`
	Done            string          `yaml:"done"`
}

// Hero is the headline block shown above a page's content.
type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

// PageConfig is one page descriptor.
type PageConfig struct {
	Source       string `yaml:"source"`
	Output       string `yaml:"output"`
	Title        string `yaml:"title"`
	HeroTitle    string `yaml:"heroTitle"`
	HeroSubtitle string `yaml:"heroSubtitle"`
	Optional     bool   `yaml:"optional"` // skip silently when the source is missing
}

// Validate checks required fields, known names and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("docsDir", c.DocsDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("outputDir", c.OutputDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("baseURL", c.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("pandoc.bin", c.Pandoc.Bin, MaxPathLength); err != nil {
		return err
	}
	if err := c.Footer.validate("footer"); err != nil {
		return err
	}
	if c.PDF.Timeout < 0 {
		return fmt.Errorf("%w: pdf.timeout must not be negative, got %s", ErrInvalidValue, c.PDF.Timeout)
	}

	if len(c.Pipelines) == 0 {
		return fmt.Errorf("%w: pipelines", ErrFieldRequired)
	}

	seen := make(map[string]bool, len(c.Pipelines))
	for i := range c.Pipelines {
		p := &c.Pipelines[i]
		if err := p.validate(fmt.Sprintf("pipelines[%d]", i)); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicatePipeline, p.Name)
		}
		seen[p.Name] = true
	}

	return nil
}

func (f FooterConfig) validate(prefix string) error {
	if err := validateFieldLength(prefix+".company", f.Company, MaxTextLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".contact", f.Contact, MaxTextLength); err != nil {
		return err
	}
	return validateFieldLength(prefix+".copyright", f.Copyright, MaxTextLength)
}

func (p *PipelineConfig) validate(prefix string) error {
	if p.Name == "" {
		return fmt.Errorf("%w: %s.name", ErrFieldRequired, prefix)
	}
	if err := validateFieldLength(prefix+".name", p.Name, MaxNameLength); err != nil {
		return err
	}
	if p.Name == AllPipelines || strings.ContainsAny(p.Name, " /\\") {
		return fmt.Errorf("%w: %s.name %q", ErrInvalidValue, prefix, p.Name)
	}
	if !slices.Contains(converterNames, p.Converter) {
		return fmt.Errorf("%w: %s.converter %q (must be one of %s)",
			ErrInvalidValue, prefix, p.Converter, strings.Join(converterNames, ", "))
	}
	if p.Template == "" {
		return fmt.Errorf("%w: %s.template", ErrFieldRequired, prefix)
	}
	if err := validateFieldLength(prefix+".template", p.Template, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".outputDir", p.OutputDir, MaxPathLength); err != nil {
		return err
	}
	if p.Footer != nil {
		if err := p.Footer.validate(prefix + ".footer"); err != nil {
			return err
		}
	}
	if err := validateFieldLength(prefix+".defaultSubtitle", p.DefaultSubtitle, MaxSubtitleLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".banner", p.Banner, MaxTextLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".done", p.Done, MaxTextLength); err != nil {
		return err
	}

	for title, hero := range p.Heroes {
		field := fmt.Sprintf("%s.heroes[%q]", prefix, title)
		if err := validateFieldLength(field+".title", hero.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".subtitle", hero.Subtitle, MaxSubtitleLength); err != nil {
			return err
		}
	}

	if len(p.Pages) == 0 {
		return fmt.Errorf("%w: %s.pages", ErrFieldRequired, prefix)
	}
	if len(p.Pages) > MaxPages {
		return fmt.Errorf("%w: %s.pages has %d entries, max %d", ErrInvalidValue, prefix, len(p.Pages), MaxPages)
	}

	outputs := make(map[string]bool, len(p.Pages))
	for i, page := range p.Pages {
		field := fmt.Sprintf("%s.pages[%d]", prefix, i)
		if err := page.validate(field); err != nil {
			return err
		}
		if outputs[page.Output] {
			return fmt.Errorf("%w: %s.output %q", ErrOutputConflict, field, page.Output)
		}
		outputs[page.Output] = true
	}

	for i, name := range p.View {
		if err := validateFileName(fmt.Sprintf("%s.view[%d]", prefix, i), name); err != nil {
			return err
		}
	}

	return nil
}

func (p PageConfig) validate(prefix string) error {
	if err := validateFileName(prefix+".source", p.Source); err != nil {
		return err
	}
	if err := validateFileName(prefix+".output", p.Output); err != nil {
		return err
	}
	if p.Title == "" {
		return fmt.Errorf("%w: %s.title", ErrFieldRequired, prefix)
	}
	if err := validateFieldLength(prefix+".title", p.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".heroTitle", p.HeroTitle, MaxTitleLength); err != nil {
		return err
	}
	return validateFieldLength(prefix+".heroSubtitle", p.HeroSubtitle, MaxSubtitleLength)
}

// validateFileName checks a bare file name: sources and outputs always
// live directly under the docs and output directories.
func validateFileName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s", ErrFieldRequired, field)
	}
	if err := validateFieldLength(field, name, MaxFileNameLength); err != nil {
		return err
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %s %q must be a bare file name", ErrInvalidPageEntry, field, name)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// PipelineNames returns the configured pipeline names in table order.
func (c *Config) PipelineNames() []string {
	names := make([]string, 0, len(c.Pipelines))
	for _, p := range c.Pipelines {
		names = append(names, p.Name)
	}
	return names
}

// PipelineOutputDir returns the directory a pipeline writes into.
func (c *Config) PipelineOutputDir(p PipelineConfig) string {
	if p.OutputDir != "" {
		return p.OutputDir
	}
	return c.OutputDir
}

// PipelineFooter returns the footer a pipeline prints.
func (c *Config) PipelineFooter(p PipelineConfig) FooterConfig {
	if p.Footer != nil {
		return *p.Footer
	}
	return c.Footer
}

// Select returns the pipelines to run for name, which is a pipeline name or
// AllPipelines. Pipelines that run together must not write the same output
// path: the later one would silently replace the earlier one's page.
func (c *Config) Select(name string) ([]PipelineConfig, error) {
	if name != AllPipelines {
		for _, p := range c.Pipelines {
			if p.Name == name {
				return []PipelineConfig{p}, nil
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownPipeline, name)
	}

	owner := make(map[string]string)
	for _, p := range c.Pipelines {
		dir := filepath.Clean(c.PipelineOutputDir(p))
		for _, page := range p.Pages {
			path := filepath.Join(dir, page.Output)
			if prev, ok := owner[path]; ok && prev != p.Name {
				return nil, fmt.Errorf("%w: %s by pipelines %q and %q; set a distinct outputDir per pipeline",
					ErrOutputConflict, path, prev, p.Name)
			}
			owner[path] = p.Name
		}
	}
	return slices.Clone(c.Pipelines), nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
//
// The file is decoded over DefaultConfig, so keys it omits keep their
// default values. A pipelines list replaces the default table wholesale.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data over the defaults and validates the
// result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/mdpages/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "mdpages", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Name: name, Tried: triedPaths}
}

// NotFoundError reports every location searched for a named config.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %q (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

// Unwrap lets errors.Is match ErrConfigNotFound.
func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
