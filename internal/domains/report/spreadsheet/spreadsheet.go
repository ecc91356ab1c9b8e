// Package spreadsheet writes tabular reports as xlsx workbooks.
package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sheetNameLimit is the longest sheet name Excel accepts.
const sheetNameLimit = 31

type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
	Totals []any
}

// Render writes a single sheet workbook. The header and totals rows are bold.
func Render(sheet Sheet) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	name := sheet.Name
	if len(name) > sheetNameLimit {
		name = name[:sheetNameLimit]
	}

	if err := file.SetSheetName(file.GetSheetName(0), name); err != nil {
		return nil, fmt.Errorf("failed to name sheet %s: %w", name, err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	row := 1

	if err = writeRow(file, name, row, toAny(sheet.Header), bold); err != nil {
		return nil, err
	}

	for _, values := range sheet.Rows {
		row++

		if err = writeRow(file, name, row, values, 0); err != nil {
			return nil, err
		}
	}

	if len(sheet.Totals) > 0 {
		row++

		if err = writeRow(file, name, row, sheet.Totals, bold); err != nil {
			return nil, err
		}
	}

	if err = file.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	var buf bytes.Buffer
	if err = file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRow(file *excelize.File, sheet string, row int, values []any, style int) error {
	if len(values) == 0 {
		return nil
	}

	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}

	if err = file.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}

	if style == 0 {
		return nil
	}

	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}

	if err = file.SetCellStyle(sheet, start, end, style); err != nil {
		return fmt.Errorf("failed to style row %d: %w", row, err)
	}

	return nil
}

func toAny(values []string) []any {
	res := make([]any, len(values))
	for i, v := range values {
		res[i] = v
	}

	return res
}
