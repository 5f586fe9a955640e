package main

import (
	"errors"
	"os"

	pdfreport "github.com/alnah/go-pdfreport"
	"github.com/alnah/go-pdfreport/internal/assets"
	"github.com/alnah/go-pdfreport/internal/chart"
	"github.com/alnah/go-pdfreport/internal/config"
	"github.com/alnah/go-pdfreport/internal/dataset"
)

// Exit codes for the pdfreport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Report written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, data columns or content
	ExitIO      = 3 // File not found, permission denied, unreadable data
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, pdfreport.ErrBrowserConnect) ||
		errors.Is(err, pdfreport.ErrPageCreate) ||
		errors.Is(err, pdfreport.ErrPageLoad) ||
		errors.Is(err, pdfreport.ErrPDFGeneration) ||
		errors.Is(err, pdfreport.ErrBrokenImage) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigEnv) ||
		errors.Is(err, config.ErrInputTooLarge) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dataset.ErrUnsupportedFormat) ||
		errors.Is(err, dataset.ErrUnknownColumn) ||
		errors.Is(err, dataset.ErrNotNumeric) ||
		errors.Is(err, dataset.ErrSheetNotFound) ||
		errors.Is(err, chart.ErrInvalidOptions) ||
		errors.Is(err, chart.ErrTooFewSeries) ||
		errors.Is(err, pdfreport.ErrInvalidConfig) ||
		errors.Is(err, pdfreport.ErrInvalidPageSize) ||
		errors.Is(err, pdfreport.ErrInvalidOrientation) ||
		errors.Is(err, pdfreport.ErrInvalidMargin) ||
		errors.Is(err, pdfreport.ErrInvalidColor) ||
		errors.Is(err, pdfreport.ErrInvalidFooterPosition) ||
		errors.Is(err, pdfreport.ErrInvalidAssetPath) ||
		errors.Is(err, pdfreport.ErrUnknownStyle) ||
		errors.Is(err, pdfreport.ErrInvalidContent) ||
		errors.Is(err, pdfreport.ErrMalformedTable) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadData) ||
		errors.Is(err, ErrWriteSample) ||
		errors.Is(err, dataset.ErrEmptyData) ||
		errors.Is(err, pdfreport.ErrMissingAsset) {
		return ExitIO
	}

	return ExitGeneral
}
