// Package xlsx adapts excelize workbooks to the engine's grid model.
package xlsx

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pricesheet/backend/internal/domain"
)

// Reader converts raw workbook bytes into domain sheets. It is stateless;
// one instance serves concurrent callers.
type Reader struct {
	debug bool
}

// NewReader creates a workbook reader.
func NewReader(debug bool) *Reader {
	return &Reader{debug: debug}
}

var _ domain.WorkbookReader = (*Reader)(nil)

// Read opens the workbook and builds one rectangular cell grid per sheet,
// in workbook order. Merged regions are expanded by copying the anchor value
// into every covered cell, so downstream code sees plain rows. Cell-level
// style problems are skipped locally; only an unreadable workbook errors.
func (r *Reader) Read(data []byte) (*domain.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	wb := &domain.Workbook{}
	for _, name := range f.GetSheetList() {
		sheet, err := r.readSheet(f, name)
		if err != nil {
			log.Printf("[XLSX] sheet %q skipped: %v", name, err)
			continue
		}
		if sheet.RowCount() == 0 {
			continue
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}

func (r *Reader) readSheet(f *excelize.File, name string) (domain.Sheet, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return domain.Sheet{}, err
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	// styleFills caches style-ID lookups; sheets reuse a handful of styles
	// across thousands of cells.
	styleFills := make(map[int]domain.CellFill)

	grid := make([][]domain.Cell, len(rows))
	for i := range rows {
		grid[i] = make([]domain.Cell, maxCol)
		for j := 0; j < maxCol; j++ {
			cell := domain.Cell{}
			if j < len(rows[i]) {
				cell.Value = strings.TrimSpace(rows[i][j])
			}
			cell.Fill = r.cellFill(f, name, i, j, styleFills)
			grid[i][j] = cell
		}
	}

	expandMerges(f, name, grid)

	return domain.Sheet{Name: name, Rows: grid}, nil
}

// cellFill resolves a cell's background fill. Any failure along the style
// lookup degrades to an empty fill; a bad style descriptor must never sink
// the sheet.
func (r *Reader) cellFill(f *excelize.File, sheet string, row, col int, cache map[int]domain.CellFill) domain.CellFill {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return domain.CellFill{}
	}

	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return domain.CellFill{}
	}

	if fill, ok := cache[styleID]; ok {
		return fill
	}

	fill := domain.CellFill{}
	style, err := f.GetStyle(styleID)
	if err == nil && style != nil && style.Fill.Pattern != 0 && len(style.Fill.Color) > 0 {
		fill.RGB = style.Fill.Color[0]
	}

	cache[styleID] = fill
	return fill
}

// expandMerges copies each merged region's anchor value into every covered
// cell. Malformed ranges are ignored.
func expandMerges(f *excelize.File, sheet string, grid [][]domain.Cell) {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return
	}

	for _, merge := range merges {
		value := strings.TrimSpace(merge.GetCellValue())

		startCol, startRow, err := excelize.CellNameToCoordinates(merge.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(merge.GetEndAxis())
		if err != nil {
			continue
		}

		for r := startRow - 1; r < endRow; r++ {
			for c := startCol - 1; c < endCol; c++ {
				if r >= 0 && r < len(grid) && c >= 0 && c < len(grid[r]) {
					grid[r][c].Value = value
				}
			}
		}
	}
}
