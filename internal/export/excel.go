package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/franz/softball-stats/internal/stats"
	"github.com/franz/softball-stats/internal/util"
)

const rateFormat = "0.000"

// Write renders wb as an .xlsx file at path, creating the parent directory.
// Any failure to produce the file is ExportTargetUnavailable.
func Write(path string, wb *Workbook) error {
	if len(wb.Sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}
	if err := util.EnsureParentDir(path); err != nil {
		return fmt.Errorf("%w: %w", util.ErrExportTargetUnavailable, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	format := rateFormat
	rate, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("failed to create rate style: %w", err)
	}

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, bold, rate); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %s: %w", util.ErrExportTargetUnavailable, path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet *Sheet, headerStyle, rateStyle int) error {
	for col, h := range sheet.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, h); err != nil {
			return err
		}
	}
	if len(sheet.Header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(sheet.Header), 1)
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}

			if rt, ok := v.(stats.Rate); ok {
				value, defined := rt.Value()
				if !defined {
					// undefined rates stay blank
					continue
				}
				if err := f.SetCellFloat(sheet.Name, cell, value, -1, 64); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet.Name, cell, cell, rateStyle); err != nil {
					return err
				}
				continue
			}

			if err := f.SetCellValue(sheet.Name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
