package usecase

import (
	"testing"

	"github.com/pricesheet/backend/internal/domain"
)

func TestFallbackKeywordHeaderScan(t *testing.T) {
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("ACME 2025 Kataloğu"),
		plainRow("Ürün Adı", "Açıklama", "Marka", "Liste Fiyatı (€)", "İndirimli Fiyat"),
		plainRow("Matkap Ucu Seti", "titanyum kaplama", "Bosch", "450,90", "399,90"),
		plainRow("Zımpara Diski", "125 mm", "Makita", "120", ""),
	))

	records := NewFallbackPipeline("TRY", false).Run(wb, "ACME")
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Name != "Matkap Ucu Seti" || first.Brand != "Bosch" {
		t.Errorf("first record = %+v", first)
	}
	if first.ListPrice != 450.90 {
		t.Errorf("list price = %v, want 450.90", first.ListPrice)
	}
	if first.DiscountedPrice == nil || *first.DiscountedPrice != 399.90 {
		t.Errorf("discounted price = %v, want 399.90", first.DiscountedPrice)
	}
	if first.CurrencyCode != "EUR" {
		t.Errorf("currency = %q, want EUR from the price caption", first.CurrencyCode)
	}

	second := records[1]
	if second.DiscountedPrice != nil {
		t.Errorf("second record discounted price = %v, want nil", *second.DiscountedPrice)
	}
}

func TestFallbackNetPriceOnlyCollapses(t *testing.T) {
	// A sheet that publishes only a net price: the net figure becomes the
	// list price and the discounted slot stays empty.
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("Ürün Adı", "Net Fiyat"),
		plainRow("Matkap Ucu Seti", "399,90"),
	))

	records := NewFallbackPipeline("TRY", false).Run(wb, "ACME")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].ListPrice != 399.90 {
		t.Errorf("list price = %v, want 399.90", records[0].ListPrice)
	}
	if records[0].DiscountedPrice != nil {
		t.Errorf("discounted price = %v, want nil after collapse", *records[0].DiscountedPrice)
	}
}

func TestFallbackNarrowFixedLayout(t *testing.T) {
	// Headerless 4-column vendor format: name, list, discount rate, net.
	// Category title rows have no numeric price and are skipped.
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("EL ALETLERİ", "", "", ""),
		plainRow("Çekiç Sapı Ahşap", "100", "20", "80"),
		plainRow("Keski Takımı Altılı", "250,50", "", ""),
	))

	records := NewFallbackPipeline("TRY", false).Run(wb, "ACME")
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Name != "Çekiç Sapı Ahşap" {
		t.Errorf("name = %q", first.Name)
	}
	if first.ListPrice != 100 {
		t.Errorf("list price = %v, want 100", first.ListPrice)
	}
	if first.DiscountedPrice == nil || *first.DiscountedPrice != 80 {
		t.Errorf("discounted price = %v, want 80", first.DiscountedPrice)
	}
	if first.CurrencyCode != "TRY" {
		t.Errorf("currency = %q, want the TRY default", first.CurrencyCode)
	}

	if records[1].DiscountedPrice != nil {
		t.Errorf("second record discounted price = %v, want nil", *records[1].DiscountedPrice)
	}
}

func TestFallbackNarrowLayoutNetNotBelowList(t *testing.T) {
	// A net price at or above the list price is not a discount.
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("Çekiç Sapı Ahşap", "100", "0", "100"),
	))

	records := NewFallbackPipeline("TRY", false).Run(wb, "ACME")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].DiscountedPrice != nil {
		t.Errorf("discounted price = %v, want nil", *records[0].DiscountedPrice)
	}
}

func TestFallbackWideFixedLayout(t *testing.T) {
	mkRow := func(name, price, rate, net string) []domain.Cell {
		row := make([]domain.Cell, 12)
		row[wideLayoutNameCol] = plain(name)
		row[wideLayoutPriceCol] = plain(price)
		row[wideLayoutRateCol] = plain(rate)
		row[wideLayoutNetPriceCol] = plain(net)
		return row
	}

	wb := workbookOf(domain.Sheet{Name: "Sayfa1", Rows: [][]domain.Cell{
		make([]domain.Cell, 12),
		make([]domain.Cell, 12),
		make([]domain.Cell, 12),
		mkRow("Hidrolik Pompa X200", "250,75", "20", "200,60"),
		mkRow("Redüktör Gövdesi", "480", "", ""),
	}})

	records := NewFallbackPipeline("TRY", false).Run(wb, "ACME")
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Name != "Hidrolik Pompa X200" {
		t.Errorf("name = %q", first.Name)
	}
	if first.ListPrice != 250.75 {
		t.Errorf("list price = %v, want 250.75", first.ListPrice)
	}
	if first.DiscountedPrice == nil || *first.DiscountedPrice != 200.60 {
		t.Errorf("discounted price = %v, want 200.60", first.DiscountedPrice)
	}
}

func TestFallbackWideLayoutSkipsLeadingRows(t *testing.T) {
	// Data inside the three leading noise rows is never read.
	row := make([]domain.Cell, 12)
	row[wideLayoutNameCol] = plain("Hidrolik Pompa X200")
	row[wideLayoutPriceCol] = plain("250,75")

	wb := workbookOf(domain.Sheet{Name: "Sayfa1", Rows: [][]domain.Cell{row}})
	if records := NewFallbackPipeline("TRY", false).Run(wb, "ACME"); len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestFallbackGenericColumns(t *testing.T) {
	// Captions too sparse for the keyword scan ("tutar" alone) and a column
	// count no fixed layout claims. The generic strategy maps what it can
	// and scans the whole sheet for the currency, last match winning.
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("Kod", "Malzeme", "Tutar"),
		plainRow("A-101", "Çekiç Sapı Ahşap", "100"),
		plainRow("A-102", "Keski Takımı Altılı", "250,50"),
		plainRow("", "Fiyatlar TL", ""),
	))

	records := NewFallbackPipeline("TRY", false).Run(wb, "ACME")
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "Çekiç Sapı Ahşap" {
		t.Errorf("name = %q", records[0].Name)
	}
	if records[0].ListPrice != 100 {
		t.Errorf("list price = %v, want 100", records[0].ListPrice)
	}
	if records[0].CurrencyCode != "TRY" {
		t.Errorf("currency = %q, want TRY from the footer note", records[0].CurrencyCode)
	}
}

func TestFallbackGenericColumnsDefaultUSD(t *testing.T) {
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("Kod", "Malzeme", "Tutar"),
		plainRow("A-101", "Çekiç Sapı Ahşap", "100"),
	))

	records := NewFallbackPipeline("TRY", false).Run(wb, "ACME")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].CurrencyCode != "USD" {
		t.Errorf("currency = %q, want the USD generic default", records[0].CurrencyCode)
	}
}

func TestFallbackRowScan(t *testing.T) {
	// One populated row with no captions at all: the longest alphabetic
	// string wins the name slot, the first plausible numeric the price,
	// a later smaller numeric the discount.
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("", "Paslanmaz Endüstriyel Menteşe Takımı", "45,5", "38,2"),
	))

	records := NewFallbackPipeline("TRY", false).Run(wb, "ACME")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Name != "Paslanmaz Endüstriyel Menteşe Takımı" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.ListPrice != 45.5 {
		t.Errorf("list price = %v, want 45.5", rec.ListPrice)
	}
	if rec.DiscountedPrice == nil || *rec.DiscountedPrice != 38.2 {
		t.Errorf("discounted price = %v, want 38.2", rec.DiscountedPrice)
	}
	if rec.CurrencyCode != "USD" {
		t.Errorf("currency = %q, want the row-scan USD default", rec.CurrencyCode)
	}
}

func TestFallbackRowScanRejectsImplausiblePrices(t *testing.T) {
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("", "Paslanmaz Endüstriyel Menteşe Takımı", "350000"),
	))

	if records := NewFallbackPipeline("TRY", false).Run(wb, "ACME"); len(records) != 0 {
		t.Errorf("got %d records, want 0 for a price outside [1, 100000]", len(records))
	}
}

func TestFallbackRowScanNameLengthCountsRunes(t *testing.T) {
	// A 10-rune Turkish string is 20 bytes; the >10 threshold must count
	// runes, so it still misses while an 11-rune string qualifies.
	tooShort := workbookOf(sheetOf("Sayfa1",
		plainRow("", "ÇĞÜŞÖÇĞÜŞÖ", "45,5"),
	))
	if records := NewFallbackPipeline("TRY", false).Run(tooShort, "ACME"); len(records) != 0 {
		t.Errorf("got %d records, want 0 for a 10-rune name", len(records))
	}

	longEnough := workbookOf(sheetOf("Sayfa1",
		plainRow("", "ÇĞÜŞÖÇĞÜŞÖÇ", "45,5"),
	))
	records := NewFallbackPipeline("TRY", false).Run(longEnough, "ACME")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 for an 11-rune name", len(records))
	}
	if records[0].Name != "ÇĞÜŞÖÇĞÜŞÖÇ" {
		t.Errorf("name = %q", records[0].Name)
	}
}

func TestFallbackRowScanRejectsCodesAsNames(t *testing.T) {
	// Strings with digits never win the name slot.
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("", "PRD-2024-X9171-TK", "45,5"),
	))

	if records := NewFallbackPipeline("TRY", false).Run(wb, "ACME"); len(records) != 0 {
		t.Errorf("got %d records, want 0 when only a product code is present", len(records))
	}
}

func TestFallbackExhausted(t *testing.T) {
	wb := workbookOf(sheetOf("Sayfa1",
		plainRow("", ""),
		plainRow("x", ""),
	))

	if records := NewFallbackPipeline("TRY", false).Run(wb, "ACME"); records != nil {
		t.Errorf("got %v, want nil when every strategy fails", records)
	}
}

func TestIsAlphabetic(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"Paslanmaz Menteşe", true},
		{"PRD-2024", false},
		{"---", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isAlphabetic(tt.s); got != tt.want {
			t.Errorf("isAlphabetic(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
