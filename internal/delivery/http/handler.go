package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pricesheet/backend/internal/domain"
	"github.com/pricesheet/backend/internal/usecase"
)

// maxUploadSize caps accepted price-list files at 20 MB.
const maxUploadSize = 20 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	ingest    *usecase.IngestService
	converter domain.CurrencyConverter
	cache     domain.CacheRepository
	cacheTTL  time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(ingest *usecase.IngestService, converter domain.CurrencyConverter, cache domain.CacheRepository, cacheTTL time.Duration) *Handler {
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	return &Handler{
		ingest:    ingest,
		converter: converter,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricesheet-backend",
		"version": "1.0.0",
	})
}

// ingestResponse is the upload endpoint's success payload.
type ingestResponse struct {
	Products []domain.ProductRecord `json:"products"`
	Count    int                    `json:"count"`
	Message  string                 `json:"message,omitempty"`
	Cached   bool                   `json:"cached,omitempty"`
}

// IngestPriceList handles a vendor price-list upload. A successful call with
// zero records means "no products found in file"; an ingestion error means
// the file itself could not be read. The two are distinct on the wire.
func (h *Handler) IngestPriceList(c *gin.Context) {
	if h.ingest == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "ingestion service unavailable"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		invalidRequest(c, "missing file upload")
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		invalidRequest(c, "unreadable file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		invalidRequest(c, "unreadable file upload")
		return
	}

	company := c.PostForm("company")
	settlement := c.Query("currency")

	cacheKey := ingestCacheKey(data, company)

	if records, ok := h.cachedRecords(c, cacheKey); ok {
		h.respond(c, records, settlement, true)
		return
	}

	records, err := h.ingest.Ingest(c.Request.Context(), data, company)
	if err != nil {
		if errors.Is(err, domain.ErrIngestFailed) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "file could not be read"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ingestion failed unexpectedly"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), cacheKey, records, h.cacheTTL); err != nil {
			log.Printf("[HTTP] failed to cache ingestion result: %v", err)
		}
	}

	h.respond(c, records, settlement, false)
}

// invalidRequest writes the 400 payload for a malformed upload.
func invalidRequest(c *gin.Context, reason string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": fmt.Sprintf("%v: %s", domain.ErrInvalidRequest, reason),
	})
}

// respond optionally converts prices to the requested settlement currency,
// then writes the success payload.
func (h *Handler) respond(c *gin.Context, records []domain.ProductRecord, settlement string, cached bool) {
	if settlement != "" && h.converter != nil {
		records = h.convertRecords(c, records, settlement)
	}

	resp := ingestResponse{
		Products: records,
		Count:    len(records),
		Cached:   cached,
	}
	if resp.Products == nil {
		resp.Products = []domain.ProductRecord{}
	}
	if len(records) == 0 {
		resp.Message = "no products found in file"
	}

	c.JSON(http.StatusOK, resp)
}

// convertRecords converts each record's prices into the settlement currency.
// Conversion failures leave the record in its source currency rather than
// failing the whole upload.
func (h *Handler) convertRecords(c *gin.Context, records []domain.ProductRecord, settlement string) []domain.ProductRecord {
	converted := make([]domain.ProductRecord, 0, len(records))

	for _, record := range records {
		if record.CurrencyCode == settlement {
			converted = append(converted, record)
			continue
		}

		listPrice, err := h.converter.Convert(c.Request.Context(), record.ListPrice, record.CurrencyCode, settlement)
		if err != nil {
			log.Printf("[HTTP] conversion to %s failed, keeping %s: %v", settlement, record.CurrencyCode, err)
			converted = append(converted, record)
			continue
		}

		record.ListPrice = listPrice
		if record.DiscountedPrice != nil {
			if v, err := h.converter.Convert(c.Request.Context(), *record.DiscountedPrice, record.CurrencyCode, settlement); err == nil {
				record.DiscountedPrice = &v
			}
		}
		record.CurrencyCode = settlement
		converted = append(converted, record)
	}

	return converted
}

// cachedRecords looks up a previous ingestion of the same bytes. The cache
// stores JSON shapes, so the value is re-marshaled into records.
func (h *Handler) cachedRecords(c *gin.Context, key string) ([]domain.ProductRecord, bool) {
	if h.cache == nil {
		return nil, false
	}

	value, err := h.cache.Get(c.Request.Context(), key)
	if err != nil || value == nil {
		return nil, false
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, false
	}

	var records []domain.ProductRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}

	return records, true
}

// ingestCacheKey derives the cache key from the file digest and company, so
// the same bytes uploaded for two vendors stay separate.
func ingestCacheKey(data []byte, company string) string {
	digest := sha256.Sum256(data)
	return "pricelist:" + hex.EncodeToString(digest[:]) + ":" + company
}
