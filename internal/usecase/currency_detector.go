package usecase

import "strings"

// Currency keyword vocabularies: symbol, ISO code, and localized spelling
// variants. Checked in USD, EUR, TRY order; first match wins.
var (
	usdKeywords = []string{"$", "usd", "dolar", "dollar"}
	eurKeywords = []string{"€", "eur", "euro", "avro"}
	tryKeywords = []string{"₺", "try", "tl", "lira", "türk lirası", "turk lirasi"}
)

// DetectCurrency scans free text (a header caption or a cell value) for a
// currency keyword and returns the ISO code. The second return is false when
// nothing matches, so callers can apply their own default policy instead of
// a forced fallback.
func DetectCurrency(text string) (string, bool) {
	lower := strings.ToLower(text)
	if lower == "" {
		return "", false
	}

	for _, kw := range usdKeywords {
		if strings.Contains(lower, kw) {
			return "USD", true
		}
	}
	for _, kw := range eurKeywords {
		if strings.Contains(lower, kw) {
			return "EUR", true
		}
	}
	for _, kw := range tryKeywords {
		if strings.Contains(lower, kw) {
			return "TRY", true
		}
	}

	return "", false
}
