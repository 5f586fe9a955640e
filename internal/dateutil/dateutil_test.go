package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "year", format: "YYYY", want: "2006"},
		{name: "short year", format: "YY", want: "06"},
		{name: "month name", format: "MMMM", want: "January"},
		{name: "short month name", format: "MMM", want: "Jan"},
		{name: "padded month and day", format: "MM/DD", want: "01/02"},
		{name: "bare month and day", format: "M-D", want: "1-2"},
		{name: "title page default", format: DefaultDateFormat, want: "January 02, 2006"},
		{name: "bracketed literal", format: "[Quarter ending] MMMM YYYY", want: "Quarter ending January 2006"},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("Y", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[Date YYYY", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	// 2024-03-05 exercises zero padding on the day.
	fixed := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "empty uses long default", format: "", want: "March 05, 2024"},
		{name: "iso preset", format: "iso", want: "2024-03-05"},
		{name: "preset is case-insensitive", format: "EUROPEAN", want: "05/03/2024"},
		{name: "us preset", format: "us", want: "03/05/2024"},
		{name: "long preset", format: "long", want: "March 5, 2024"},
		{name: "custom tokens", format: "D MMM YY", want: "5 Mar 24"},
		{name: "invalid format", format: "[open", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Format(fixed, tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Format(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}
