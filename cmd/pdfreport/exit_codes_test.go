package main

// Notes:
// - exitCodeFor: sentinels from each package that reaches the CLI, plus
//   wrapped forms to check the errors.Is chain.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	pdfreport "github.com/alnah/go-pdfreport"
	"github.com/alnah/go-pdfreport/internal/assets"
	"github.com/alnah/go-pdfreport/internal/chart"
	"github.com/alnah/go-pdfreport/internal/config"
	"github.com/alnah/go-pdfreport/internal/dataset"
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

		// Browser errors (exit 4)
		{"browser connect", pdfreport.ErrBrowserConnect, ExitBrowser},
		{"page load", pdfreport.ErrPageLoad, ExitBrowser},
		{"broken image", pdfreport.ErrBrokenImage, ExitBrowser},
		{"render wrapping pdf generation", fmt.Errorf("%w: print: %w", pdfreport.ErrRender, pdfreport.ErrPDFGeneration), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", fmt.Errorf("writing: %w", os.ErrPermission), ExitIO},
		{"read data", fmt.Errorf("%w: %w", ErrReadData, os.ErrNotExist), ExitIO},
		{"empty data", dataset.ErrEmptyData, ExitIO},
		{"write sample", ErrWriteSample, ExitIO},
		{"missing asset at render", fmt.Errorf("%w: images: %w", pdfreport.ErrRender, pdfreport.ErrMissingAsset), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"no input", ErrNoInput, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"invalid flag", ErrInvalidFlag, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"config env", config.ErrConfigEnv, ExitUsage},
		{"unsupported data", dataset.ErrUnsupportedFormat, ExitUsage},
		{"sheet not found wrapped in read", fmt.Errorf("%w: %w", ErrReadData, dataset.ErrSheetNotFound), ExitUsage},
		{"unknown column", dataset.ErrUnknownColumn, ExitUsage},
		{"too few series", chart.ErrTooFewSeries, ExitUsage},
		{"invalid page size", pdfreport.ErrInvalidPageSize, ExitUsage},
		{"unknown style", pdfreport.ErrUnknownStyle, ExitUsage},
		{"invalid content", pdfreport.ErrInvalidContent, ExitUsage},
		{"malformed table", pdfreport.ErrMalformedTable, ExitUsage},
		{"stylesheet not found", fmt.Errorf("loading stylesheet: %w", assets.ErrStyleNotFound), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"assembler spent", pdfreport.ErrAssemblerSpent, ExitGeneral},
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

func TestExitCodes_UnixConventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("success, general and usage codes must be 0, 1, 2")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("custom exit code %d collides with shell-reserved range", code)
		}
	}
}
