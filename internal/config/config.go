// Package config loads report generation settings from a YAML file and
// PDFREPORT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"

	"github.com/alnah/go-pdfreport/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigEnv       = errors.New("failed to read environment")
	ErrInputTooLarge   = errors.New("config file exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// EnvPrefix prefixes every environment override, e.g. PDFREPORT_REPORT_TITLE.
const EnvPrefix = "PDFREPORT"

// MaxInputSize limits config files to 1MB.
const MaxInputSize = 1 << 20

// Field length limits.
const (
	MaxTitleLength    = 200
	MaxNameLength     = 100 // company, author
	MaxURLLength      = 2048
	MaxTextLength     = 500
	MaxPathLength     = 4096
	MaxSheetLength    = 31 // Excel sheet name limit
	MaxLangLength     = 35 // BCP 47
	MaxFormatLength   = 50
	MaxFileNameLength = 255
)

// Config holds all settings for one report run.
type Config struct {
	Report  ReportConfig  `yaml:"report"`
	Output  OutputConfig  `yaml:"output"`
	Page    PageConfig    `yaml:"page"`
	Colors  ColorsConfig  `yaml:"colors"`
	Chart   ChartConfig   `yaml:"chart"`
	Data    DataConfig    `yaml:"data"`
	Footer  FooterConfig  `yaml:"footer"`
	Assets  AssetsConfig  `yaml:"assets"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// ReportConfig defines the title page and document metadata.
type ReportConfig struct {
	Title      string `yaml:"title"`
	Company    string `yaml:"company"`
	Author     string `yaml:"author"`
	Subject    string `yaml:"subject"`
	Logo       string `yaml:"logo"`                          // optional path
	DateFormat string `yaml:"dateFormat" split_words:"true"` // tokens or preset
	Lang       string `yaml:"lang"`
}

// OutputConfig defines where the PDF is written.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Filename string `yaml:"filename"` // empty = timestamped
}

// PageConfig defines paper size, orientation and margins in points.
type PageConfig struct {
	Size        string  `yaml:"size" validate:"omitempty,oneof=a4 letter legal"`
	Orientation string  `yaml:"orientation" validate:"omitempty,oneof=portrait landscape"`
	Margin      float64 `yaml:"margin" validate:"gte=0,lte=288"`
}

// ColorsConfig defines the brand palette.
type ColorsConfig struct {
	Primary   string `yaml:"primary" validate:"omitempty,rrggbb"`
	Secondary string `yaml:"secondary" validate:"omitempty,rrggbb"`
	Accent    string `yaml:"accent" validate:"omitempty,rrggbb"`
	Success   string `yaml:"success" validate:"omitempty,rrggbb"`
}

// ChartConfig defines chart raster size and the scratch directory.
type ChartConfig struct {
	DPI     int     `yaml:"dpi" validate:"gte=36,lte=600"`
	Width   float64 `yaml:"width" validate:"gt=0,lte=20"`  // inches
	Height  float64 `yaml:"height" validate:"gt=0,lte=20"` // inches
	TempDir string  `yaml:"tempDir" split_words:"true"`    // empty = system temp
}

// DataConfig defines how the input dataset is read and shown.
type DataConfig struct {
	Sheet   string `yaml:"sheet"`
	MaxRows int    `yaml:"maxRows" split_words:"true" validate:"gte=1,lte=1000"`
}

// FooterConfig defines page footer options.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position" validate:"omitempty,oneof=left center right"`
	ShowPageNumber bool   `yaml:"showPageNumber" split_words:"true"`
	Text           string `yaml:"text"`
}

// AssetsConfig defines stylesheet and template overrides.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" split_words:"true"` // empty = embedded assets
	Style    string `yaml:"style"`
	Template string `yaml:"template"`
}

// DefaultConfig returns the settings used when no file or environment
// override is given.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			Title:   "Monthly Business Report",
			Company: "Your Company Name",
			Author:  "Analytics Team",
		},
		Output: OutputConfig{Dir: "reports"},
		Page: PageConfig{
			Size:        "a4",
			Orientation: "portrait",
			Margin:      72,
		},
		Colors: ColorsConfig{
			Primary:   "#2C3E50",
			Secondary: "#3498DB",
			Accent:    "#E74C3C",
			Success:   "#2ECC71",
		},
		Chart:   ChartConfig{DPI: 150, Width: 5, Height: 3},
		Data:    DataConfig{MaxRows: 10},
		Footer:  FooterConfig{Position: "right", ShowPageNumber: true},
		Timeout: 30 * time.Second,
	}
}

// Load builds a Config from defaults, then the named file (if any), then
// the environment. An empty nameOrPath skips the file step.
func Load(nameOrPath string) (*Config, error) {
	cfg := DefaultConfig()

	if nameOrPath != "" {
		path, err := Resolve(nameOrPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays PDFREPORT_* variables named after the field path, e.g.
// PDFREPORT_CHART_DPI or PDFREPORT_FOOTER_SHOW_PAGE_NUMBER. Unset variables
// leave fields untouched. Leaves carry no envconfig tags: a tagged field
// also falls back to the bare tag name, which would pick up LANG or TEXT.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigEnv, err)
	}
	return nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return c.decode(data)
}

// decode applies YAML over c, rejecting unknown keys.
func (c *Config) decode(data []byte) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, c, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Page.Size = strings.ToLower(strings.TrimSpace(c.Page.Size))
	c.Page.Orientation = strings.ToLower(strings.TrimSpace(c.Page.Orientation))
	c.Footer.Position = strings.ToLower(strings.TrimSpace(c.Footer.Position))
}

var validate = newValidator()

// rrggbbPattern matches the only colour form the style registry accepts.
var rrggbbPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Error ignored: registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("rrggbb", func(fl validator.FieldLevel) bool {
		return rrggbbPattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks value ranges and field lengths. Load calls it; callers
// building a Config by hand should too.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s: %q fails %s", ErrInvalidValue, fieldPath(fe.Namespace()), fmt.Sprint(fe.Value()), constraint(fe))
		}
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	limits := []struct {
		field string
		value string
		max   int
	}{
		{"report.title", c.Report.Title, MaxTitleLength},
		{"report.company", c.Report.Company, MaxNameLength},
		{"report.author", c.Report.Author, MaxNameLength},
		{"report.subject", c.Report.Subject, MaxTextLength},
		{"report.logo", c.Report.Logo, MaxURLLength},
		{"report.dateFormat", c.Report.DateFormat, MaxFormatLength},
		{"report.lang", c.Report.Lang, MaxLangLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.filename", c.Output.Filename, MaxFileNameLength},
		{"chart.tempDir", c.Chart.TempDir, MaxPathLength},
		{"data.sheet", c.Data.Sheet, MaxSheetLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range limits {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}
	return nil
}

// fieldPath drops the root type from a validator namespace.
func fieldPath(ns string) string {
	_, rest, ok := strings.Cut(ns, ".")
	if !ok {
		return ns
	}
	return rest
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Resolve turns a config name or path into a file path.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise the candidates from SearchPaths are tried in order.
func Resolve(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyConfigName
	}
	if fileutil.IsFilePath(nameOrPath) {
		return nameOrPath, nil
	}

	tried := SearchPaths(nameOrPath)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// SearchPaths lists where a config name is looked up: name.yaml and
// name.yml in the current directory, then in the user config directory
// under go-pdfreport/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, "go-pdfreport", name+ext))
		}
	}
	return paths
}
