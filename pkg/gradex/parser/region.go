package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Region is the bounding box of non-empty cells in the data rows of a sheet.
type Region struct {
	// FirstRow and LastRow are 1-based sheet row numbers.
	FirstRow int
	LastRow  int
	// FirstCol and LastCol are 0-based column indexes.
	FirstCol int
	LastCol  int
	// Cells is the number of non-empty cells inside the box.
	Cells int
}

// String returns the region in Excel range notation (e.g. "A4:BM40").
func (r Region) String() string {
	start, err := excelize.CoordinatesToCellName(r.FirstCol+1, r.FirstRow)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(r.LastCol+1, r.LastRow)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", start, end)
}

// DataRegion finds the bounding box of non-empty cells below the header rows.
// It returns false when the data area is empty.
func DataRegion(rows []SheetRow, headerRows int) (Region, bool) {
	reg := Region{FirstRow: -1, LastRow: -1, FirstCol: -1, LastCol: -1}

	for _, row := range rows {
		if row.Num <= headerRows {
			continue
		}
		for colIdx, cell := range row.Cells {
			if cell == "" {
				continue
			}
			reg.Cells++
			if reg.FirstRow < 0 || row.Num < reg.FirstRow {
				reg.FirstRow = row.Num
			}
			if reg.LastRow < 0 || row.Num > reg.LastRow {
				reg.LastRow = row.Num
			}
			if reg.FirstCol < 0 || colIdx < reg.FirstCol {
				reg.FirstCol = colIdx
			}
			if reg.LastCol < 0 || colIdx > reg.LastCol {
				reg.LastCol = colIdx
			}
		}
	}

	if reg.Cells == 0 {
		return Region{}, false
	}
	return reg, true
}
