package importer

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// readXLSX pulls header and data rows from the first sheet of an .xlsx
// workbook; from there the import pipeline is identical to CSV. Blank rows
// are dropped the same way the CSV parser drops them.
func readXLSX(path string) (header []string, rows [][]string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, nil
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading sheet %s", sheets[0])
	}

	kept := make([][]string, 0, len(all))
	for _, row := range all {
		blank := true
		for _, cell := range row {
			if cell != "" {
				blank = false
				break
			}
		}
		if !blank {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, nil, nil
	}
	return kept[0], kept[1:], nil
}
