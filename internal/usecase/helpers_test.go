package usecase

import (
	"github.com/pricesheet/backend/internal/domain"
)

// Test grid builders. Cells are described as "value|RRGGBB"; a missing pipe
// means an uncolored cell.
func cell(value, rgb string) domain.Cell {
	return domain.Cell{Value: value, Fill: domain.CellFill{RGB: rgb}}
}

func plain(value string) domain.Cell {
	return domain.Cell{Value: value}
}

func sheetOf(name string, rows ...[]domain.Cell) domain.Sheet {
	// Pad rows to a common width, as the reader does.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]domain.Cell, len(rows))
	for i, row := range rows {
		padded[i] = make([]domain.Cell, width)
		copy(padded[i], row)
	}
	return domain.Sheet{Name: name, Rows: padded}
}

func workbookOf(sheets ...domain.Sheet) *domain.Workbook {
	return &domain.Workbook{Sheets: sheets}
}

// plainRow builds an uncolored row from string values.
func plainRow(values ...string) []domain.Cell {
	row := make([]domain.Cell, len(values))
	for i, v := range values {
		row[i] = plain(v)
	}
	return row
}

// stubReader returns a fixed workbook, standing in for the xlsx reader.
type stubReader struct {
	wb  *domain.Workbook
	err error
}

func (s *stubReader) Read(data []byte) (*domain.Workbook, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.wb, nil
}
