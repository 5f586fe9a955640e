package pdfreport

import "errors"

// Sentinel errors for library operations.
var (
	// Append-time validation errors. The offending block is not added.
	ErrUnknownStyle   = errors.New("unknown style")
	ErrInvalidContent = errors.New("invalid block content")
	ErrMalformedTable = errors.New("malformed table")

	// ErrMissingAsset is carried by Warning when a chart or logo file is absent.
	// Generate also returns it, wrapped in ErrRender, when an image that existed
	// at append time has since disappeared.
	ErrMissingAsset = errors.New("missing asset")

	// ErrRender wraps every failure raised by Generate.
	ErrRender = errors.New("render failed")

	// ErrAssemblerSpent is returned by every call after Generate.
	ErrAssemblerSpent = errors.New("assembler already generated its report")

	// Configuration errors.
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrInvalidPageSize       = errors.New("invalid page size")
	ErrInvalidOrientation    = errors.New("invalid orientation")
	ErrInvalidMargin         = errors.New("invalid margin")
	ErrInvalidColor          = errors.New("invalid color")
	ErrInvalidStyleName      = errors.New("invalid style name")
	ErrInvalidStyleProfile   = errors.New("invalid style profile")
	ErrInvalidFooterPosition = errors.New("invalid footer position")
	ErrInvalidAssetPath      = errors.New("invalid asset path")

	// Render engine errors, always wrapped in ErrRender by Generate.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrokenImage    = errors.New("image failed to decode")
)
