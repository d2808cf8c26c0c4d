package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/pricesheet/backend/internal/domain"
)

// IngestServiceConfig holds configuration for the ingestion service.
type IngestServiceConfig struct {
	DefaultCurrency    string
	DefaultCompany     string
	Extractor          ExtractorConfig
	EnableDebugLogging bool
}

// IngestService orchestrates price-list ingestion: the color pipeline first,
// the heuristic fallback pipeline when color yields nothing. It holds no
// state across calls and is safe for concurrent use.
type IngestService struct {
	reader          domain.WorkbookReader
	extractor       *RowExtractor
	fallback        *FallbackPipeline
	defaultCurrency string
	defaultCompany  string
	debug           bool
}

// NewIngestService creates an ingestion service with dependencies.
func NewIngestService(reader domain.WorkbookReader, config IngestServiceConfig) *IngestService {
	currency := config.DefaultCurrency
	if currency == "" {
		currency = "TRY"
	}

	config.Extractor.EnableDebugLogging = config.EnableDebugLogging

	return &IngestService{
		reader:          reader,
		extractor:       NewRowExtractor(config.Extractor),
		fallback:        NewFallbackPipeline(currency, config.EnableDebugLogging),
		defaultCurrency: currency,
		defaultCompany:  config.DefaultCompany,
		debug:           config.EnableDebugLogging,
	}
}

// Ingest extracts product records from raw workbook bytes.
// Flow: read workbook -> color pipeline -> fallback pipeline -> records.
// An empty result is a valid outcome ("nothing usable found"); the only
// surfaced error is total failure, wrapped as domain.ErrIngestFailed.
func (s *IngestService) Ingest(ctx context.Context, file []byte, company string) ([]domain.ProductRecord, error) {
	if len(file) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrIngestFailed)
	}
	if company == "" {
		company = s.defaultCompany
	}

	wb, err := s.reader.Read(file)
	if err != nil {
		// Neither pipeline can run without a grid.
		return nil, fmt.Errorf("%w: %v", domain.ErrIngestFailed, err)
	}

	records := s.colorPipeline(wb, company)
	if len(records) > 0 {
		log.Printf("[INGEST] color pipeline extracted %d records", len(records))
		return records, nil
	}

	if s.debug {
		log.Printf("[INGEST] color pipeline empty, trying heuristic fallbacks")
	}

	records = s.fallback.Run(wb, company)
	log.Printf("[INGEST] finished with %d records", len(records))
	return records, nil
}

// colorPipeline runs the color-driven extraction across every sheet in
// workbook order, concatenating results. A panic anywhere inside it degrades
// to "no result" so the controller falls through to the heuristics.
func (s *IngestService) colorPipeline(wb *domain.Workbook, company string) (records []domain.ProductRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[INGEST] color pipeline panicked, falling back: %v", r)
			records = nil
		}
	}()

	for _, sheet := range wb.Sheets {
		headerRow, hasHeader := LocateHeader(sheet)

		cm := MapColumns(sheet, headerRow, hasHeader, s.defaultCurrency)
		if cm.Empty() {
			// No usable color signal on this sheet at all.
			if s.debug {
				log.Printf("[INGEST] sheet %q skipped: no color signal", sheet.Name)
			}
			continue
		}

		startRow := 0
		if hasHeader {
			startRow = headerRow + 1
		}

		sheetRecords := s.extractor.ExtractRows(sheet, startRow, cm, company)
		if s.debug {
			log.Printf("[INGEST] sheet %q: %d records", sheet.Name, len(sheetRecords))
		}
		records = append(records, sheetRecords...)
	}

	return records
}
