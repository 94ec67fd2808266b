package snapshot

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// WriteSpreadsheet writes sheets to an xlsx file at path. The workbook is
// saved to a temp file and renamed over the target, so a failed save leaves
// any previous artifact in place.
func WriteSpreadsheet(sheets []Sheet, path string) error {
	if len(sheets) == 0 {
		return fmt.Errorf("write spreadsheet: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheets[0].Name); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	for i, sheet := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("add sheet %q: %w", sheet.Name, err)
			}
		}
		for r, row := range sheet.Rows {
			if err := f.SetCellValue(sheet.Name, fmt.Sprintf("A%d", r+1), row.Label); err != nil {
				return fmt.Errorf("set label %s!A%d: %w", sheet.Name, r+1, err)
			}
			if err := f.SetCellValue(sheet.Name, fmt.Sprintf("B%d", r+1), row.Value); err != nil {
				return fmt.Errorf("set value %s!B%d: %w", sheet.Name, r+1, err)
			}
		}
	}

	tmp := path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save spreadsheet: %w", err)
	}
	return os.Rename(tmp, path)
}
