package usecase

import (
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pricesheet/backend/internal/domain"
)

// Fallback scan limits and the fixed vendor layouts. The wide layout
// constants describe the only >10-column vendor format seen so far; a new
// vendor means a new constant block, not new detection logic.
const (
	fallbackHeaderScanRows = 20
	fallbackMinHeaderHits  = 2

	narrowLayoutCols = 4

	wideLayoutMinCols     = 11
	wideLayoutSkipRows    = 3
	wideLayoutNameCol     = 2
	wideLayoutPriceCol    = 5
	wideLayoutRateCol     = 6
	wideLayoutNetPriceCol = 7

	rowScanMinNameLen = 10
	rowScanMinPrice   = 1.0
	rowScanMaxPrice   = 100000.0
)

// fallbackKeywords is the wider vocabulary used when no color signal exists:
// header terms plus discount and currency wording.
var fallbackKeywords = []string{
	"ürün", "urun", "adı", "adi", "isim", "name", "product",
	"açıklama", "aciklama", "description",
	"marka", "brand", "firma", "company",
	"fiyat", "price", "tutar", "liste", "list",
	"indirim", "iskonto", "discount", "net",
	"kur", "currency", "döviz", "doviz", "usd", "eur", "tl",
}

// captionRoles maps caption fragments to column roles for keyword-based
// column mapping. Discount captions are matched before plain price captions
// because "indirimli fiyat" contains "fiyat".
var captionRoles = []struct {
	fragments []string
	role      domain.Role
}{
	{[]string{"indirim", "iskonto", "discount", "net fiyat"}, domain.RoleDiscountedPrice},
	{[]string{"fiyat", "price", "tutar", "liste"}, domain.RoleListPrice},
	{[]string{"ürün", "urun", "product", "adı", "adi", "isim", "name", "malzeme"}, domain.RoleProductName},
	{[]string{"açıklama", "aciklama", "description", "özellik", "ozellik"}, domain.RoleDescription},
	{[]string{"marka", "brand"}, domain.RoleBrand},
}

// FallbackPipeline is the keyword/position-based alternative used when the
// color pipeline yields nothing. Strategies run in order; the first one that
// produces records wins.
type FallbackPipeline struct {
	defaultCurrency string
	debug           bool
}

// NewFallbackPipeline creates the fallback pipeline.
func NewFallbackPipeline(defaultCurrency string, enableDebugLogging bool) *FallbackPipeline {
	if defaultCurrency == "" {
		defaultCurrency = "TRY"
	}
	return &FallbackPipeline{
		defaultCurrency: defaultCurrency,
		debug:           enableDebugLogging,
	}
}

// Run evaluates the attempt chain. Attempts signal "no result" by returning
// an empty slice; they never abort the chain.
func (p *FallbackPipeline) Run(wb *domain.Workbook, company string) []domain.ProductRecord {
	attempts := []struct {
		name string
		run  func(*domain.Workbook, string) []domain.ProductRecord
	}{
		{"keyword-header", p.keywordHeaderScan},
		{"fixed-layout", p.fixedLayouts},
		{"generic-columns", p.genericColumns},
		{"row-scan", p.rowScan},
	}

	for _, attempt := range attempts {
		records := attempt.run(wb, company)
		if len(records) > 0 {
			log.Printf("[FALLBACK] strategy %q extracted %d records", attempt.name, len(records))
			return records
		}
		if p.debug {
			log.Printf("[FALLBACK] strategy %q produced nothing", attempt.name)
		}
	}

	return nil
}

// keywordHeaderScan finds the row with the most fallback-keyword hits within
// the scan window and, given enough hits, maps columns by caption wording.
func (p *FallbackPipeline) keywordHeaderScan(wb *domain.Workbook, company string) []domain.ProductRecord {
	var records []domain.ProductRecord

	for _, sheet := range wb.Sheets {
		headerRow, hits := bestKeywordRow(sheet)
		if hits < fallbackMinHeaderHits {
			continue
		}

		cm := p.mapColumnsByCaption(sheet, headerRow)
		if cm.Empty() {
			continue
		}

		records = append(records, p.extractMapped(sheet, headerRow+1, cm, company)...)
	}

	return records
}

// bestKeywordRow returns the scan-window row with the most keyword hits.
func bestKeywordRow(sheet domain.Sheet) (row, hits int) {
	limit := sheet.RowCount()
	if limit > fallbackHeaderScanRows {
		limit = fallbackHeaderScanRows
	}

	bestRow, bestHits := 0, 0
	for r := 0; r < limit; r++ {
		count := 0
		for c := 0; c < sheet.ColCount(); c++ {
			lower := strings.ToLower(strings.TrimSpace(sheet.Cell(r, c).Value))
			if lower == "" {
				continue
			}
			for _, kw := range fallbackKeywords {
				if strings.Contains(lower, kw) {
					count++
					break
				}
			}
		}
		if count > bestHits {
			bestRow, bestHits = r, count
		}
	}

	return bestRow, bestHits
}

// mapColumnsByCaption assigns roles by substring-matching column captions.
func (p *FallbackPipeline) mapColumnsByCaption(sheet domain.Sheet, headerRow int) *domain.ColumnMap {
	cm := domain.NewColumnMap(p.defaultCurrency)

	for c := 0; c < sheet.ColCount(); c++ {
		caption := strings.ToLower(strings.TrimSpace(sheet.Cell(headerRow, c).Value))
		if caption == "" {
			continue
		}

		for _, entry := range captionRoles {
			matched := false
			for _, fragment := range entry.fragments {
				if strings.Contains(caption, fragment) {
					cm.Assign(entry.role, c)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}

		if code, found := DetectCurrency(caption); found {
			cm.SetCurrency(code)
		}
	}

	return cm
}

// extractMapped reads data rows through a caption-derived column map.
// No color is involved; values are taken as-is and gated.
func (p *FallbackPipeline) extractMapped(sheet domain.Sheet, startRow int, cm *domain.ColumnMap, company string) []domain.ProductRecord {
	var records []domain.ProductRecord

	for r := startRow; r < sheet.RowCount(); r++ {
		name := ""
		if col, ok := cm.Column(domain.RoleProductName); ok {
			name = strings.TrimSpace(sheet.Cell(r, col).Value)
		}

		listPrice := 0.0
		if col, ok := cm.Column(domain.RoleListPrice); ok {
			if v, err := parseAmount(sheet.Cell(r, col).Value); err == nil {
				listPrice = v
			}
		}

		var discounted *float64
		if col, ok := cm.Column(domain.RoleDiscountedPrice); ok {
			if v, err := parseAmount(sheet.Cell(r, col).Value); err == nil {
				discounted = &v
			}
		}

		if listPrice == 0 && discounted != nil && *discounted > 0 {
			listPrice = *discounted
			discounted = nil
		}

		if !passesRecordGate(name, listPrice) {
			continue
		}

		record := domain.ProductRecord{
			Name:         name,
			CompanyName:  company,
			ListPrice:    listPrice,
			CurrencyCode: cm.Currency(),
		}
		if col, ok := cm.Column(domain.RoleDescription); ok {
			record.Description = strings.TrimSpace(sheet.Cell(r, col).Value)
		}
		if col, ok := cm.Column(domain.RoleBrand); ok {
			record.Brand = strings.TrimSpace(sheet.Cell(r, col).Value)
		}
		record.DiscountedPrice = discounted

		records = append(records, record)
	}

	return records
}

// fixedLayouts dispatches to known vendor formats purely by column count.
func (p *FallbackPipeline) fixedLayouts(wb *domain.Workbook, company string) []domain.ProductRecord {
	var records []domain.ProductRecord

	for _, sheet := range wb.Sheets {
		switch {
		case sheet.ColCount() == narrowLayoutCols:
			records = append(records, p.parseNarrowLayout(sheet, company)...)
		case sheet.ColCount() >= wideLayoutMinCols:
			records = append(records, p.parseWideLayout(sheet, company)...)
		}
	}

	return records
}

// parseNarrowLayout handles the 4-column vendor format:
// (name, list price, discount rate, net price). Category-title rows carry
// text in the name cell only, so rows whose price cell is not numeric skip.
func (p *FallbackPipeline) parseNarrowLayout(sheet domain.Sheet, company string) []domain.ProductRecord {
	var records []domain.ProductRecord

	for r := 0; r < sheet.RowCount(); r++ {
		name := strings.TrimSpace(sheet.Cell(r, 0).Value)

		listPrice, err := parseAmount(sheet.Cell(r, 1).Value)
		if err != nil {
			continue
		}

		var discounted *float64
		if net, err := parseAmount(sheet.Cell(r, 3).Value); err == nil && net > 0 && net < listPrice {
			discounted = &net
		}

		if !passesRecordGate(name, listPrice) {
			continue
		}

		records = append(records, domain.ProductRecord{
			Name:            name,
			CompanyName:     company,
			ListPrice:       listPrice,
			DiscountedPrice: discounted,
			CurrencyCode:    p.defaultCurrency,
		})
	}

	return records
}

// parseWideLayout handles the known wide vendor format (>10 columns) with
// fixed offsets and a fixed count of leading noise rows.
func (p *FallbackPipeline) parseWideLayout(sheet domain.Sheet, company string) []domain.ProductRecord {
	var records []domain.ProductRecord

	for r := wideLayoutSkipRows; r < sheet.RowCount(); r++ {
		name := strings.TrimSpace(sheet.Cell(r, wideLayoutNameCol).Value)

		listPrice, err := parseAmount(sheet.Cell(r, wideLayoutPriceCol).Value)
		if err != nil {
			continue
		}

		var discounted *float64
		if v, err := parseAmount(sheet.Cell(r, wideLayoutNetPriceCol).Value); err == nil && v > 0 {
			discounted = &v
		}

		if !passesRecordGate(name, listPrice) {
			continue
		}

		records = append(records, domain.ProductRecord{
			Name:            name,
			CompanyName:     company,
			ListPrice:       listPrice,
			DiscountedPrice: discounted,
			CurrencyCode:    p.defaultCurrency,
		})
	}

	return records
}

// genericColumns fuzzy-matches whatever captions exist, then fills the gaps
// by column type: first text-typed column for the name, first numeric-typed
// column for the price. Currency comes from scanning every caption and cell,
// last match wins, USD when nothing matches.
func (p *FallbackPipeline) genericColumns(wb *domain.Workbook, company string) []domain.ProductRecord {
	var records []domain.ProductRecord

	for _, sheet := range wb.Sheets {
		headerRow := firstPopulatedRow(sheet)
		if headerRow < 0 {
			continue
		}

		cm := p.mapColumnsByCaption(sheet, headerRow)

		if _, ok := cm.Column(domain.RoleProductName); !ok {
			if col := firstColumnOfType(sheet, headerRow+1, false); col >= 0 {
				cm.Assign(domain.RoleProductName, col)
			}
		}
		if _, ok := cm.Column(domain.RoleListPrice); !ok {
			if col := firstColumnOfType(sheet, headerRow+1, true); col >= 0 {
				cm.Assign(domain.RoleListPrice, col)
			}
		}

		cm.SetCurrency(scanSheetCurrency(sheet, "USD"))

		records = append(records, p.extractMapped(sheet, headerRow+1, cm, company)...)
	}

	return records
}

// firstPopulatedRow finds the first row with at least two non-empty cells.
func firstPopulatedRow(sheet domain.Sheet) int {
	for r := 0; r < sheet.RowCount(); r++ {
		count := 0
		for c := 0; c < sheet.ColCount(); c++ {
			if strings.TrimSpace(sheet.Cell(r, c).Value) != "" {
				count++
			}
		}
		if count >= 2 {
			return r
		}
	}
	return -1
}

// firstColumnOfType returns the first column whose sampled data cells are
// predominantly numeric (wantNumeric) or predominantly text.
func firstColumnOfType(sheet domain.Sheet, startRow int, wantNumeric bool) int {
	for c := 0; c < sheet.ColCount(); c++ {
		numeric, text := 0, 0
		for r := startRow; r < sheet.RowCount() && r < startRow+20; r++ {
			value := strings.TrimSpace(sheet.Cell(r, c).Value)
			if value == "" {
				continue
			}
			if _, err := parseAmount(value); err == nil {
				numeric++
			} else {
				text++
			}
		}
		if wantNumeric && numeric > 0 && numeric >= text {
			return c
		}
		if !wantNumeric && text > 0 && text > numeric {
			return c
		}
	}
	return -1
}

// scanSheetCurrency scans every cell for currency keywords; the last match
// wins so footer notes ("fiyatlar USD'dir") override stray header symbols.
func scanSheetCurrency(sheet domain.Sheet, fallback string) string {
	code := fallback
	for r := 0; r < sheet.RowCount(); r++ {
		for c := 0; c < sheet.ColCount(); c++ {
			if found, ok := DetectCurrency(sheet.Cell(r, c).Value); ok {
				code = found
			}
		}
	}
	return code
}

// rowScan is the position-agnostic last resort: no column structure at all.
// Per row, the longest alphabetic string becomes the name candidate, the
// first plausible numeric the list price, a second smaller numeric the
// discounted price.
func (p *FallbackPipeline) rowScan(wb *domain.Workbook, company string) []domain.ProductRecord {
	var records []domain.ProductRecord

	for _, sheet := range wb.Sheets {
		for r := 0; r < sheet.RowCount(); r++ {
			name := ""
			nameLen := 0
			listPrice := 0.0
			var discounted *float64
			currency := "USD"

			for c := 0; c < sheet.ColCount(); c++ {
				value := strings.TrimSpace(sheet.Cell(r, c).Value)
				if value == "" {
					continue
				}

				if code, ok := DetectCurrency(value); ok {
					currency = code
				}

				if v, err := parseAmount(value); err == nil {
					if listPrice == 0 && v >= rowScanMinPrice && v <= rowScanMaxPrice {
						listPrice = v
					} else if listPrice > 0 && discounted == nil && v > 0 && v < listPrice {
						discounted = &v
					}
					continue
				}

				// Length thresholds count runes; Turkish text inflates byte counts.
				if isAlphabetic(value) {
					if n := utf8.RuneCountInString(value); n > rowScanMinNameLen && n > nameLen {
						name = value
						nameLen = n
					}
				}
			}

			if name == "" || listPrice == 0 {
				continue
			}
			if !passesRecordGate(name, listPrice) {
				continue
			}

			records = append(records, domain.ProductRecord{
				Name:            name,
				CompanyName:     company,
				ListPrice:       listPrice,
				DiscountedPrice: discounted,
				CurrencyCode:    currency,
			})
		}
	}

	return records
}

// isAlphabetic reports whether the string contains letters and no digits.
// Product codes with digits should not win the name slot.
func isAlphabetic(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
