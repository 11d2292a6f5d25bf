package bp

//go:generate mockgen -source=bp.go -destination=mocks/mock_bp.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"liyu1981.xyz/bp-report-service/pkg/blob"
	"liyu1981.xyz/bp-report-service/pkg/db"
	"liyu1981.xyz/bp-report-service/pkg/models"
)

type IReading interface {
	// StoreReading validates a raw request body and persists it, returning the new reading_id.
	StoreReading(ctx context.Context, body []byte) (string, error)
}

type IReport interface {
	GenerateOnDemandReport(ctx context.Context) (*models.Report, error)
	GenerateWeeklyReport(ctx context.Context) (*models.Report, error)
}

// BP holds the injected stores and the services built on them. Now and NewID
// are replaceable so tests can pin the clock and the generated ids.
type BP struct {
	Store   db.ReadingStore
	Blob    blob.ObjectStore
	Now     func() time.Time
	NewID   func() string
	Reading IReading
	Report  IReport
}

type ServiceOpts struct {
	Reading IReading
	Report  IReport
}

func New(store db.ReadingStore, objects blob.ObjectStore) *BP {
	b := &BP{
		Store: store,
		Blob:  objects,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
	return b.WithServices(ServiceOpts{
		Reading: b.GetIReading(),
		Report:  b.GetIReport(),
	})
}

func (b *BP) WithServices(opts ServiceOpts) *BP {
	if opts.Reading != nil {
		b.Reading = opts.Reading
	}
	if opts.Report != nil {
		b.Report = opts.Report
	}
	return b
}

func (b *BP) now() time.Time {
	if b.Now == nil {
		return time.Now().UTC()
	}
	return b.Now().UTC()
}

func (b *BP) newID() string {
	if b.NewID == nil {
		return uuid.NewString()
	}
	return b.NewID()
}
