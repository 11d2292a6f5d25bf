package db

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"

	"liyu1981.xyz/bp-report-service/pkg/models"
)

const DefaultScanPageLimit = 100

// ReadingStore is the only query path the reports use. ScanReadings returns
// every stored reading, following continuation keys until the backend reports
// no more pages.
type ReadingStore interface {
	PutReading(ctx context.Context, reading *models.Reading) error
	ScanReadings(ctx context.Context) ([]models.Reading, error)
}

func pageLimitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultScanPageLimit
	}
	return limit
}
