package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sampleSheet is the worksheet name of generated sample workbooks.
const sampleSheet = "Sheet1"

// SampleRows is six months of demo figures. The first row is the header.
var SampleRows = [][]any{
	{"Month", "Sales", "Revenue", "Customers"},
	{"January", 15000, 150000, 120},
	{"February", 18000, 180000, 145},
	{"March", 16500, 165000, 135},
	{"April", 22000, 220000, 180},
	{"May", 19500, 195000, 160},
	{"June", 25000, 250000, 200},
}

// WriteSample writes SampleRows to an .xlsx workbook at path.
func WriteSample(path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for i, row := range SampleRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sampleSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
