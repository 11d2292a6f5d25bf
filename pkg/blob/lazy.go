package blob

import (
	"context"
	"sync"

	"liyu1981.xyz/bp-report-service/pkg/models"
)

// LazyStore builds its ObjectStore on the first write. Binaries that never
// write a report, such as ingestion, never touch the bucket or directory.
// A failed build is retried on the next write.
type LazyStore struct {
	New func(ctx context.Context) (ObjectStore, error)

	mu    sync.Mutex
	store ObjectStore
}

func NewLazyStore(build func(ctx context.Context) (ObjectStore, error)) *LazyStore {
	return &LazyStore{New: build}
}

func (l *LazyStore) Store(ctx context.Context) (ObjectStore, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store == nil {
		store, err := l.New(ctx)
		if err != nil {
			return nil, err
		}
		l.store = store
	}
	return l.store, nil
}

func (l *LazyStore) PutObject(ctx context.Context, key string, body []byte) (models.StorageLocation, error) {
	store, err := l.Store(ctx)
	if err != nil {
		return models.StorageLocation{}, err
	}
	return store.PutObject(ctx, key, body)
}
