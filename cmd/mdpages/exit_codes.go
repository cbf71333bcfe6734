package main

import (
	"errors"
	"os"

	mdpages "github.com/alnah/go-mdpages"
	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/config"
	"github.com/alnah/go-mdpages/internal/pipeline"
)

// Exit codes for the mdpages CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every selected pipeline ran
	ExitGeneral = 1 // General error, or page failures under --strict
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Source unreadable, output not writable
	ExitBrowser = 4 // Converter or browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Converter/browser errors (exit 4)
	if errors.Is(err, mdpages.ErrBrowserConnect) ||
		errors.Is(err, mdpages.ErrPageCreate) ||
		errors.Is(err, mdpages.ErrPageLoad) ||
		errors.Is(err, mdpages.ErrPDFGeneration) ||
		errors.Is(err, pipeline.ErrConverterNotFound) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdpages.ErrReadSource) ||
		errors.Is(err, mdpages.ErrWriteOutput) ||
		errors.Is(err, mdpages.ErrWatchSetup) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldRequired) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrUnknownPipeline) ||
		errors.Is(err, config.ErrDuplicatePipeline) ||
		errors.Is(err, config.ErrOutputConflict) ||
		errors.Is(err, config.ErrInvalidPageEntry) ||
		errors.Is(err, pipeline.ErrUnknownConverter) ||
		errors.Is(err, pipeline.ErrTemplateParse) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, mdpages.ErrLoadTemplate) ||
		errors.Is(err, mdpages.ErrInvalidAssetPath) ||
		errors.Is(err, mdpages.ErrNoPages) {
		return ExitUsage
	}

	return ExitGeneral
}
