package usecase

import (
	"strings"

	"github.com/pricesheet/backend/internal/domain"
)

// Header search window. Vendor sheets put the header near the top; scanning
// further only picks up data rows that happen to contain keywords.
const (
	headerSearchRows = 20
	headerSearchCols = 10
)

// headerKeywords are caption fragments that mark a cell as meaningful for
// header detection: product/name/description/brand/company/price variants in
// the source locale plus their English spellings.
var headerKeywords = []string{
	"ürün", "urun", "adı", "adi", "isim", "name", "product",
	"açıklama", "aciklama", "description",
	"marka", "brand",
	"firma", "company", "tedarikçi", "tedarikci",
	"fiyat", "price", "tutar", "liste", "indirim",
}

// LocateHeader finds the header row of a sheet within the search window.
// A row qualifies when it has at least 2 colored cells and at least 2
// keyword-bearing cells; the first qualifying row wins. When no row
// qualifies, a weaker pass accepts the first row with 3 keyword-bearing
// cells regardless of color. The boolean is false when the sheet has no
// recognizable header; callers must not treat row 0 as a default.
func LocateHeader(sheet domain.Sheet) (int, bool) {
	rows := sheet.RowCount()
	if rows > headerSearchRows {
		rows = headerSearchRows
	}

	for r := 0; r < rows; r++ {
		colored, meaningful := scoreHeaderRow(sheet, r)
		if colored >= 2 && meaningful >= 2 {
			return r, true
		}
	}

	// Weaker pass: keyword signal alone, for sheets with uncolored headers.
	for r := 0; r < rows; r++ {
		_, meaningful := scoreHeaderRow(sheet, r)
		if meaningful >= 3 {
			return r, true
		}
	}

	return 0, false
}

// scoreHeaderRow counts colored and keyword-bearing cells in the column
// window of one candidate row.
func scoreHeaderRow(sheet domain.Sheet, row int) (colored, meaningful int) {
	cols := sheet.ColCount()
	if cols > headerSearchCols {
		cols = headerSearchCols
	}

	for c := 0; c < cols; c++ {
		cell := sheet.Cell(row, c)
		if ClassifyFill(cell.Fill) != domain.ColorNone {
			colored++
		}
		if containsHeaderKeyword(cell.Value) {
			meaningful++
		}
	}
	return colored, meaningful
}

func containsHeaderKeyword(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
