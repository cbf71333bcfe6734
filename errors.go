package mdpages

import "errors"

// Sentinel errors for library operations.
var (
	// Run-level failures. These abort a pipeline run.
	ErrReadSource   = errors.New("reading source document failed")
	ErrWriteOutput  = errors.New("writing output file failed")
	ErrNoPages      = errors.New("pipeline has no pages")
	ErrLoadTemplate = errors.New("loading page template failed")

	// PDF export failures. These are reported per page and never abort a run.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Watch mode.
	ErrWatchSetup = errors.New("setting up file watcher failed")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
