package usecase

import (
	"strings"

	"github.com/pricesheet/backend/internal/domain"
)

// Curated hex families per color category. Matching is by substring so both
// plain RGB ("FF0000") and ARGB ("FFFF0000") style strings classify the same
// way. Office "gold" (FFC000) reads as either yellow or orange depending on
// the vendor; it lives in the orange family, which is matched before yellow.
var (
	redHexes    = []string{"FF0000", "CC0000", "E60000", "C00000", "FF3300"}
	blueHexes   = []string{"0070C0", "4472C4", "00B0F0", "2E75B6", "1F4E79"}
	greenHexes  = []string{"00B050", "008000", "92D050", "A9D08E", "70AD47"}
	orangeHexes = []string{"FFC000", "F4B183", "FF9900", "ED7D31", "FFA500"}
	yellowHexes = []string{"FFFF00", "FFE699", "FFD966", "FFF2CC"}
)

// themeColorTable maps workbook theme indices to categories. Index 9 is
// ambiguous in vendor files and defaults to orange.
var themeColorTable = map[int]domain.ColorCategory{
	2: domain.ColorRed,
	4: domain.ColorBlue,
	5: domain.ColorYellow,
	6: domain.ColorGreen,
	7: domain.ColorOrange,
	9: domain.ColorOrange,
}

// paletteColorTable maps legacy indexed-palette colors (converted .xls
// files) to categories.
var paletteColorTable = map[int]domain.ColorCategory{
	2:  domain.ColorRed,
	10: domain.ColorRed,
	60: domain.ColorRed,
	4:  domain.ColorBlue,
	12: domain.ColorBlue,
	30: domain.ColorBlue,
	5:  domain.ColorYellow,
	13: domain.ColorYellow,
	43: domain.ColorYellow,
	3:  domain.ColorGreen,
	11: domain.ColorGreen,
	17: domain.ColorGreen,
	52: domain.ColorOrange,
	53: domain.ColorOrange,
}

// ClassifyFill maps a cell fill descriptor to a color category. The three
// signal sources are consulted strictly in priority order (RGB hex, then
// theme index, then palette index) and never mixed on one cell. Categories
// are recomputed on every call so header-time and row-time classification of
// the same physical color always agree.
func ClassifyFill(fill domain.CellFill) domain.ColorCategory {
	if fill.Empty() {
		return domain.ColorNone
	}

	if fill.RGB != "" {
		if cat, ok := classifyHex(fill.RGB); ok {
			return cat
		}
		return domain.ColorNone
	}

	if fill.ThemeIndex != nil {
		if cat, ok := themeColorTable[*fill.ThemeIndex]; ok {
			return cat
		}
		return domain.ColorNone
	}

	if fill.PaletteIndex != nil {
		if cat, ok := paletteColorTable[*fill.PaletteIndex]; ok {
			return cat
		}
		return domain.ColorNone
	}

	return domain.ColorNone
}

// classifyHex substring-matches an uppercased hex value against the curated
// families, orange before yellow.
func classifyHex(hex string) (domain.ColorCategory, bool) {
	upper := strings.ToUpper(strings.TrimPrefix(hex, "#"))

	families := []struct {
		hexes    []string
		category domain.ColorCategory
	}{
		{redHexes, domain.ColorRed},
		{blueHexes, domain.ColorBlue},
		{greenHexes, domain.ColorGreen},
		{orangeHexes, domain.ColorOrange},
		{yellowHexes, domain.ColorYellow},
	}

	for _, family := range families {
		for _, h := range family.hexes {
			if strings.Contains(upper, h) {
				return family.category, true
			}
		}
	}

	return domain.ColorNone, false
}
