package usecase

import (
	"github.com/pricesheet/backend/internal/domain"
)

// Column inspection window for role mapping. Wider than the header search
// window because data tables can carry trailing colored columns past the
// keyword-bearing captions.
const roleSearchCols = 15

// colorRoleTable binds each color category to the column role it marks.
var colorRoleTable = map[domain.ColorCategory]domain.Role{
	domain.ColorRed:    domain.RoleProductName,
	domain.ColorBlue:   domain.RoleDescription,
	domain.ColorYellow: domain.RoleBrand,
	domain.ColorGreen:  domain.RoleListPrice,
	domain.ColorOrange: domain.RoleDiscountedPrice,
}

// MapColumns builds the role map for one sheet from cell colors. When the
// sheet has a header the header row's cells are inspected; without one, row 0
// is color-inspected directly as a data row. Color is authoritative here;
// there is no text fallback at this stage. The one exception: a green
// (list price) caption also runs the currency detector against its own text,
// refining the sheet currency when the caption names one ("Liste Fiyatı ($)").
func MapColumns(sheet domain.Sheet, headerRow int, hasHeader bool, defaultCurrency string) *domain.ColumnMap {
	cm := domain.NewColumnMap(defaultCurrency)

	row := 0
	if hasHeader {
		row = headerRow
	}

	cols := sheet.ColCount()
	if cols > roleSearchCols {
		cols = roleSearchCols
	}

	for c := 0; c < cols; c++ {
		cell := sheet.Cell(row, c)
		category := ClassifyFill(cell.Fill)

		role, ok := colorRoleTable[category]
		if !ok {
			continue
		}

		cm.Assign(role, c)

		if role == domain.RoleListPrice {
			if code, found := DetectCurrency(cell.Value); found {
				cm.SetCurrency(code)
			}
		}
	}

	return cm
}
