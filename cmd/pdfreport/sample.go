package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-pdfreport/internal/dataset"
	"github.com/alnah/go-pdfreport/internal/fileutil"
)

// ErrWriteSample reports a sample workbook that could not be written.
var ErrWriteSample = errors.New("failed to write sample data")

const defaultSamplePath = "sample_data.xlsx"

// runSample writes the demo workbook used by 'pdfreport generate'.
func runSample(args []string, env *Environment) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	output := fs.StringP("output", "o", defaultSamplePath, "workbook path")
	force := fs.BoolP("force", "f", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	path := *output
	if filepath.Ext(path) != ".xlsx" {
		return fmt.Errorf("%w: %s must end in .xlsx", ErrInvalidFlag, path)
	}
	if fileutil.FileExists(path) && !*force {
		return fmt.Errorf("%w: %s exists (use --force to overwrite)", ErrWriteSample, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteSample, err)
		}
	}

	if err := dataset.WriteSample(path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteSample, err)
	}
	fmt.Fprintf(env.Stdout, "Sample data written: %s (%d rows)\n", path, len(dataset.SampleRows)-1)
	return nil
}
