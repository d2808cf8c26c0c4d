package domain

import (
	"context"
	"time"
)

// WorkbookReader turns raw workbook bytes into a Workbook grid.
type WorkbookReader interface {
	Read(data []byte) (*Workbook, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CurrencyConverter converts an amount between currencies. The conversion
// service sits outside the engine; only the delivery layer consumes it.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

// ProductRepository defines the interface for product persistence.
// The upsert/diff consumer lives outside this service; the interface is the
// agreed boundary. (Future use: no implementation ships here.)
type ProductRepository interface {
	SaveBatch(ctx context.Context, records []ProductRecord) error
	FindByName(ctx context.Context, company, name string) (*ProductRecord, error)
}
