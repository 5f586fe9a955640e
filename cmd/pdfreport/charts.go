package main

import (
	"fmt"
	"slices"

	"github.com/alnah/go-pdfreport/internal/chart"
	"github.com/alnah/go-pdfreport/internal/dataset"
)

// Default chart columns when flags do not name them.
const (
	defaultBarColumn  = "Sales"
	defaultLineColumn = "Revenue"
)

// chartPlan names the dataset columns behind each chart. Empty fields skip
// that chart.
type chartPlan struct {
	x       string
	bar     string
	line    string
	pie     string
	compare []string
}

func (p chartPlan) empty() bool {
	return p.bar == "" && p.line == "" && p.pie == "" && len(p.compare) == 0
}

// planCharts resolves chart columns. Explicit columns must exist and, except
// for the pie column, be numeric. Defaults fall back to the first numeric
// columns and are skipped when there are none.
func planCharts(table *dataset.Table, f chartFlags) (chartPlan, error) {
	if f.disabled || len(table.Header) == 0 || len(table.Rows) == 0 {
		return chartPlan{}, nil
	}

	plan := chartPlan{x: table.Header[0]}
	if f.xColumn != "" {
		if _, err := table.Labels(f.xColumn); err != nil {
			return chartPlan{}, err
		}
		plan.x = f.xColumn
	}

	numeric := slices.DeleteFunc(table.NumericColumns(), func(c string) bool { return c == plan.x })

	var err error
	if plan.bar, err = numericColumn(table, f.barColumn); err != nil {
		return chartPlan{}, err
	}
	if plan.bar == "" {
		plan.bar = pick(numeric, defaultBarColumn, "")
	}

	if plan.line, err = numericColumn(table, f.lineColumn); err != nil {
		return chartPlan{}, err
	}
	if plan.line == "" {
		plan.line = pick(numeric, defaultLineColumn, plan.bar)
	}

	if f.pieColumn != "" {
		if _, err := table.Labels(f.pieColumn); err != nil {
			return chartPlan{}, err
		}
		plan.pie = f.pieColumn
	}

	if len(f.compare) > 0 {
		if len(f.compare) < 2 {
			return chartPlan{}, fmt.Errorf("--compare: %w", chart.ErrTooFewSeries)
		}
		for _, col := range f.compare {
			if _, err := numericColumn(table, col); err != nil {
				return chartPlan{}, err
			}
		}
		plan.compare = f.compare
	}
	return plan, nil
}

// numericColumn checks that a named column exists and holds numbers.
func numericColumn(table *dataset.Table, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if _, err := table.Values(name); err != nil {
		return "", err
	}
	return name, nil
}

// pick returns preferred when present, else the first column other than
// skip, else "".
func pick(columns []string, preferred, skip string) string {
	if slices.Contains(columns, preferred) && preferred != skip {
		return preferred
	}
	for _, c := range columns {
		if c != skip {
			return c
		}
	}
	return ""
}
