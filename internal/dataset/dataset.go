// Package dataset reads tabular report input from .xlsx and .csv files and
// derives the summary metrics, display grid and chart series the report
// needs.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"
)

// Sentinel errors for dataset operations.
var (
	ErrUnsupportedFormat = errors.New("unsupported data file format")
	ErrEmptyData         = errors.New("data file has no header row")
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrNotNumeric        = errors.New("column is not numeric")
)

// Table is a header plus rectangular rows of cell text.
type Table struct {
	Header []string
	Rows   [][]string
}

// Metric is one labelled summary value.
type Metric struct {
	Label string
	Value string
}

// Load reads path by extension. For workbooks, sheet selects the worksheet;
// empty means the first one.
func Load(path, sheet string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, sheet)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %q (want .xlsx or .csv)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadXLSX reads one worksheet of an Excel workbook.
func LoadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no worksheets", ErrEmptyData, path)
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return newTable(rows)
}

// LoadCSV reads a comma-separated file whose first record is the header.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV reads comma-separated records from r.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return newTable(rows)
}

// newTable drops blank rows and pads or truncates every row to the header
// width.
func newTable(rows [][]string) (*Table, error) {
	rows = slices.DeleteFunc(rows, isBlank)
	if len(rows) == 0 {
		return nil, ErrEmptyData
	}

	header := trimCells(rows[0])
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}
	if len(header) == 0 {
		return nil, ErrEmptyData
	}

	t := &Table{Header: header, Rows: make([][]string, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		cells := make([]string, len(header))
		copy(cells, trimCells(row))
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func (t *Table) index(column string) (int, error) {
	i := slices.Index(t.Header, column)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q (have %s)", ErrUnknownColumn, column, strings.Join(t.Header, ", "))
	}
	return i, nil
}

// parseNumber accepts plain and thousands-separated numbers.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NumericColumns returns, in header order, the columns whose non-empty
// cells all parse as numbers. A column with no values is not numeric.
func (t *Table) NumericColumns() []string {
	var out []string
	for i, name := range t.Header {
		seen := false
		numeric := true
		for _, row := range t.Rows {
			if row[i] == "" {
				continue
			}
			seen = true
			if _, ok := parseNumber(row[i]); !ok {
				numeric = false
				break
			}
		}
		if seen && numeric {
			out = append(out, name)
		}
	}
	return out
}

// Values returns the numeric values of column, with empty cells as zero.
func (t *Table) Values(column string) ([]float64, error) {
	i, err := t.index(column)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		if row[i] == "" {
			continue
		}
		v, ok := parseNumber(row[i])
		if !ok {
			return nil, fmt.Errorf("%w: %q row %d is %q", ErrNotNumeric, column, r+1, row[i])
		}
		out[r] = v
	}
	return out, nil
}

// Labels returns the cell text of column.
func (t *Table) Labels(column string) ([]string, error) {
	i, err := t.index(column)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// Summary returns Total, Average and Max for every numeric column. Totals
// are whole numbers with thousands separators; averages and maxima keep two
// decimals. Empty cells are ignored.
func (t *Table) Summary() []Metric {
	var out []Metric
	for _, col := range t.NumericColumns() {
		i, _ := t.index(col)

		var sum float64
		var n int
		maxV := math.Inf(-1)
		for _, row := range t.Rows {
			v, ok := parseNumber(row[i])
			if !ok {
				continue
			}
			sum += v
			maxV = math.Max(maxV, v)
			n++
		}

		out = append(out,
			Metric{Label: col + " (Total)", Value: formatInteger(sum)},
			Metric{Label: col + " (Average)", Value: formatDecimal(sum / float64(n))},
			Metric{Label: col + " (Max)", Value: formatDecimal(maxV)},
		)
	}
	return out
}

// maxExact is the float64 magnitude above which every value is an integer.
// humanize.FormatFloat converts through int64 and is only used below it.
const maxExact = 1 << 53

func formatInteger(v float64) string {
	r := math.Round(v)
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return humanize.Commaf(r)
}

func formatDecimal(v float64) string {
	if math.Abs(v) < maxExact {
		return humanize.FormatFloat("#,###.##", v)
	}
	return formatInteger(v) + ".00"
}

// Grid returns the header and at most maxRows rows as a new grid. A
// non-positive maxRows keeps every row.
func (t *Table) Grid(maxRows int) [][]string {
	rows := t.Rows
	if maxRows > 0 {
		rows = t.Head(maxRows).Rows
	}

	grid := make([][]string, 0, len(rows)+1)
	grid = append(grid, slices.Clone(t.Header))
	for _, row := range rows {
		grid = append(grid, slices.Clone(row))
	}
	return grid
}

// Head returns a table restricted to the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Header: t.Header, Rows: t.Rows[:n]}
}
