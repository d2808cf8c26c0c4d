package domain

// Cell is one spreadsheet cell: its trimmed text value and its fill.
type Cell struct {
	Value string
	Fill  CellFill
}

// Sheet is a rectangular grid of cells from one workbook sheet.
// Rows are padded to a common width by the reader.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Workbook is an ordered collection of sheets, preserving file order.
type Workbook struct {
	Sheets []Sheet
}

// RowCount returns the number of rows in the sheet.
func (s Sheet) RowCount() int {
	return len(s.Rows)
}

// ColCount returns the sheet width (rows are rectangular after reading).
func (s Sheet) ColCount() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// Cell returns the cell at (row, col), or a zero cell when out of bounds.
// Extraction code probes positions freely, so bounds handling lives here.
func (s Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) {
		return Cell{}
	}
	if col < 0 || col >= len(s.Rows[row]) {
		return Cell{}
	}
	return s.Rows[row][col]
}
