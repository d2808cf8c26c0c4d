package domain

// ColorCategory is the semantic classification of a cell's background fill.
// Vendors mark column meaning by color, so the category set is closed and
// small: one category per supported column role, plus ColorNone.
type ColorCategory string

const (
	ColorRed    ColorCategory = "red"
	ColorBlue   ColorCategory = "blue"
	ColorYellow ColorCategory = "yellow"
	ColorGreen  ColorCategory = "green"
	ColorOrange ColorCategory = "orange"
	ColorNone   ColorCategory = "none"
)

// CellFill describes a cell's background fill as the spreadsheet format
// exposes it. Exactly one of the three signals is reliably present: a
// resolved RGB hex string, a theme index, or a legacy palette index.
// Classification never mixes signals from two sources on one cell.
type CellFill struct {
	RGB          string // hex string, with or without leading alpha byte
	ThemeIndex   *int   // theme color index, when the file only stores a theme reference
	PaletteIndex *int   // legacy indexed-palette color, from converted .xls files
}

// Empty reports whether the fill carries no color signal at all.
func (f CellFill) Empty() bool {
	return f.RGB == "" && f.ThemeIndex == nil && f.PaletteIndex == nil
}
