package blob

//go:generate mockgen -source=blob.go -destination=mocks/mock_blob.go -package=mocks

import (
	"context"

	"liyu1981.xyz/bp-report-service/pkg/models"
)

const ContentTypeText = "text/plain; charset=utf-8"

// ObjectStore writes generated reports. Writing an existing key replaces it.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte) (models.StorageLocation, error)
}
