package usecase

import (
	"log"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pricesheet/backend/internal/domain"
)

// Markup range used to synthesize a list price when a vendor file only
// publishes a discounted figure.
const (
	defaultMarkupMin = 0.20
	defaultMarkupMax = 0.30
)

// nameStopWords disqualify a row whose name cell is really a sequence
// number, an image placeholder, a repeated caption or a totals row.
// Matching is by lowercase substring.
var nameStopWords = []string{"no", "resim", "ürün adı", "toplam"}

// ExtractorConfig holds configuration for the row extractor.
type ExtractorConfig struct {
	MarkupMin          float64
	MarkupMax          float64
	Rand               *rand.Rand // seedable source for the markup draw; nil means unseeded
	EnableDebugLogging bool
}

// RowExtractor turns data rows into validated product records using a
// sheet's column map.
type RowExtractor struct {
	markupMin float64
	markupMax float64

	// The rand source is stateful and the extractor is shared by concurrent
	// ingestions, so markup draws are serialized.
	mu  sync.Mutex
	rng *rand.Rand

	debug bool
}

// NewRowExtractor creates a row extractor. Tests inject a seeded rand.Rand
// to pin the markup draw; production passes nil and gets an unseeded source.
func NewRowExtractor(config ExtractorConfig) *RowExtractor {
	markupMin := config.MarkupMin
	markupMax := config.MarkupMax
	if markupMin <= 0 || markupMax <= markupMin {
		markupMin = defaultMarkupMin
		markupMax = defaultMarkupMax
	}

	rng := config.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	return &RowExtractor{
		markupMin: markupMin,
		markupMax: markupMax,
		rng:       rng,
		debug:     config.EnableDebugLogging,
	}
}

// ExtractRows walks every row from startRow to the end of the sheet and
// emits zero or one record per row. Rows that fail the validity gate are
// dropped silently; a row that panics mid-extraction is skipped and
// extraction continues with the next one.
func (e *RowExtractor) ExtractRows(sheet domain.Sheet, startRow int, cm *domain.ColumnMap, company string) []domain.ProductRecord {
	var records []domain.ProductRecord

	for r := startRow; r < sheet.RowCount(); r++ {
		record, ok := e.extractRow(sheet, r, cm, company)
		if ok {
			records = append(records, record)
		}
	}

	return records
}

// extractRow builds one candidate record from one row. Each mapped cell is
// re-classified at row time and accepted only when its color still matches
// the role's expected category: a column assigned from the header can drift
// in color further down, and drifted cells carry no trustworthy value.
func (e *RowExtractor) extractRow(sheet domain.Sheet, row int, cm *domain.ColumnMap, company string) (record domain.ProductRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EXTRACT] row %d skipped after panic: %v", row, r)
			ok = false
		}
	}()

	name := e.roleText(sheet, row, cm, domain.RoleProductName, domain.ColorRed)
	description := e.roleText(sheet, row, cm, domain.RoleDescription, domain.ColorBlue)
	brand := e.brandText(sheet, row, cm)

	listPrice := 0.0
	if raw, found := e.roleCell(sheet, row, cm, domain.RoleListPrice, domain.ColorGreen); found {
		// Unparsable price cells become zero, not an error.
		if v, err := parseAmount(raw); err == nil {
			listPrice = v
		}
	}

	var discounted *float64
	if raw, found := e.roleCell(sheet, row, cm, domain.RoleDiscountedPrice, domain.ColorOrange); found {
		// Absence is distinguishable from an explicit zero here.
		if v, err := parseAmount(raw); err == nil {
			discounted = &v
		}
	}

	if discounted != nil && *discounted > 0 && listPrice == 0 {
		ratio := e.markupRatio()
		listPrice = *discounted * (1 + ratio)
		log.Printf("[EXTRACT] row %d: list price synthesized from discounted %.2f with markup %.4f", row, *discounted, ratio)
	}

	if !passesRecordGate(name, listPrice) {
		return domain.ProductRecord{}, false
	}

	return domain.ProductRecord{
		Name:            strings.TrimSpace(name),
		Description:     description,
		Brand:           brand,
		CompanyName:     company,
		ListPrice:       listPrice,
		DiscountedPrice: discounted,
		CurrencyCode:    cm.Currency(),
	}, true
}

// markupRatio draws one markup value from [markupMin, markupMax).
func (e *RowExtractor) markupRatio() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.markupMin + e.rng.Float64()*(e.markupMax-e.markupMin)
}

// roleCell fetches the row's cell at the role's mapped column and accepts
// its value only when the re-classified color matches the expected category.
func (e *RowExtractor) roleCell(sheet domain.Sheet, row int, cm *domain.ColumnMap, role domain.Role, want domain.ColorCategory) (string, bool) {
	col, assigned := cm.Column(role)
	if !assigned {
		return "", false
	}

	cell := sheet.Cell(row, col)
	if ClassifyFill(cell.Fill) != want {
		return "", false
	}

	return cell.Value, true
}

func (e *RowExtractor) roleText(sheet domain.Sheet, row int, cm *domain.ColumnMap, role domain.Role, want domain.ColorCategory) string {
	raw, found := e.roleCell(sheet, row, cm, role, want)
	if !found {
		return ""
	}
	return strings.TrimSpace(raw)
}

// brandText applies the brand-specific sanity rules: a brand cell holding a
// bare number or a formula is vendor noise, not a brand.
func (e *RowExtractor) brandText(sheet domain.Sheet, row int, cm *domain.ColumnMap) string {
	raw, found := e.roleCell(sheet, row, cm, domain.RoleBrand, domain.ColorYellow)
	if !found {
		return ""
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "=") {
		if e.debug {
			log.Printf("[EXTRACT] row %d: brand cell holds a formula, dropped: %q", row, value)
		}
		return ""
	}
	if _, err := parseAmount(value); err == nil {
		if e.debug {
			log.Printf("[EXTRACT] row %d: brand cell holds a number, dropped: %q", row, value)
		}
		return ""
	}

	return value
}

// parseAmount parses a numeric cell honoring the locale's decimal comma.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	return strconv.ParseFloat(cleaned, 64)
}

// passesRecordGate is the validity gate every emitted record must clear,
// in both the color pipeline and the heuristic fallbacks.
func passesRecordGate(name string, listPrice float64) bool {
	trimmed := strings.TrimSpace(name)
	// Rune count, not byte length: Turkish names are full of multibyte runes.
	if utf8.RuneCountInString(trimmed) <= 3 {
		return false
	}
	if listPrice <= 0 {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, stop := range nameStopWords {
		if strings.Contains(lower, stop) {
			return false
		}
	}

	return true
}
