package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in stylesheet and template
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "loads report style",
			styleName:   DefaultStyleName,
			wantContain: "table.data-table",
		},
		{
			name:      "returns ErrStyleNotFound for nonexistent",
			styleName: "nonexistent-style-xyz",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "returns ErrInvalidAssetName for empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) missing %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	got, err := loader.LoadTemplate(DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}

	for _, want := range []string{"{{.CSS}}", "data-block=\"title-page\"", "data-block=\"table\"", "data-block=\"page-break\""} {
		if !strings.Contains(got, want) {
			t.Errorf("report template missing %q", want)
		}
	}

	if _, err := loader.LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestPackageLevelLoaders(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle() error = %v", err)
	}
	if _, err := LoadTemplate(DefaultTemplateName); err != nil {
		t.Errorf("LoadTemplate() error = %v", err)
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	if !slices.Contains(names, DefaultStyleName) {
		t.Errorf("StyleNames() = %v, want %q included", names, DefaultStyleName)
	}
	for _, n := range names {
		if _, err := LoadStyle(n); err != nil {
			t.Errorf("LoadStyle(%q) error = %v", n, err)
		}
	}
}
