package main

// Notes:
// - exitCodeFor: every sentinel the CLI can surface is mapped, plus wrapped
//   and hinted errors to verify the errors.Is chain.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	mdpages "github.com/alnah/go-mdpages"
	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/config"
	"github.com/alnah/go-mdpages/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Converter/browser errors (exit 4)
		{"browser connect", mdpages.ErrBrowserConnect, ExitBrowser},
		{"page create", mdpages.ErrPageCreate, ExitBrowser},
		{"page load", mdpages.ErrPageLoad, ExitBrowser},
		{"pdf generation", mdpages.ErrPDFGeneration, ExitBrowser},
		{"converter not found", pipeline.ErrConverterNotFound, ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read source", mdpages.ErrReadSource, ExitIO},
		{"write output", mdpages.ErrWriteOutput, ExitIO},
		{"watch setup", mdpages.ErrWatchSetup, ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config too large", config.ErrConfigTooLarge, ExitUsage},
		{"field required", config.ErrFieldRequired, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"unknown pipeline", config.ErrUnknownPipeline, ExitUsage},
		{"output conflict", config.ErrOutputConflict, ExitUsage},
		{"unknown converter", pipeline.ErrUnknownConverter, ExitUsage},
		{"template not found", assets.ErrTemplateNotFound, ExitUsage},
		{"load template", mdpages.ErrLoadTemplate, ExitUsage},
		{"invalid asset path", mdpages.ErrInvalidAssetPath, ExitUsage},
		{"no pages", mdpages.ErrNoPages, ExitUsage},
		{"not found error type", &config.NotFoundError{Name: "x"}, ExitUsage},
		{"hinted config parse", withHint(fmt.Errorf("f.yaml: %w", config.ErrConfigParse), "\n  hint: x"), ExitUsage},

		// General errors (exit 1)
		{"pages failed", ErrPagesFailed, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved range", c)
		}
		if seen[c] {
			t.Errorf("exit code %d defined twice", c)
		}
		seen[c] = true
	}
	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1 and 2 must keep their Unix meaning")
	}
}

func TestWithHint(t *testing.T) {
	t.Parallel()

	base := fmt.Errorf("%w: nope", config.ErrUnknownPipeline)

	if got := withHint(base, ""); got != base {
		t.Errorf("withHint(err, \"\") = %v, want the same error", got)
	}
	if got := withHint(nil, "\n  hint: x"); got != nil {
		t.Errorf("withHint(nil, hint) = %v, want nil", got)
	}

	got := withHint(base, "\n  hint: try all")
	if want := "unknown pipeline: nope\n  hint: try all"; got.Error() != want {
		t.Errorf("Error() = %q, want %q", got.Error(), want)
	}
	if !errors.Is(got, config.ErrUnknownPipeline) {
		t.Error("hinted error lost its sentinel")
	}
}
