package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"liyu1981.xyz/bp-report-service/pkg/models"
)

// DirStore keeps reports as files in a local directory. The directory plays
// the role of the bucket.
type DirStore struct {
	Dir string
}

func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("find/create reports directory %s: %w", dir, err)
	}
	return &DirStore{Dir: dir}, nil
}

func (d *DirStore) PutObject(ctx context.Context, key string, body []byte) (models.StorageLocation, error) {
	if err := ctx.Err(); err != nil {
		return models.StorageLocation{}, err
	}
	if key == "" || strings.ContainsAny(key, `/\`) {
		return models.StorageLocation{}, fmt.Errorf("invalid object key %q", key)
	}

	if err := os.WriteFile(filepath.Join(d.Dir, key), body, 0o644); err != nil {
		return models.StorageLocation{}, fmt.Errorf("write %s: %w", key, err)
	}
	return models.StorageLocation{Bucket: d.Dir, Key: key}, nil
}
