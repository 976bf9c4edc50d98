package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// encodeXLSX renders one worksheet per section, named by the section
// key, with a header row followed by the data rows. The first section
// takes over the workbook's default sheet so no empty "Sheet1" is left
// behind.
func encodeXLSX(sections []section) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sections {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.key); err != nil {
				return nil, fmt.Errorf("renaming default sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(s.key); err != nil {
				return nil, fmt.Errorf("adding sheet %s: %w", s.key, err)
			}
		}

		if err := writeRow(f, s.key, 1, s.headers); err != nil {
			return nil, err
		}
		for r, row := range s.rows {
			if err := writeRow(f, s.key, r+2, row); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("writing row %d of sheet %s: %w", rowNum, sheet, err)
	}
	return nil
}
