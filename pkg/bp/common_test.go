package bp

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/bp-report-service/pkg/blob"
	blobMocks "liyu1981.xyz/bp-report-service/pkg/blob/mocks"
	"liyu1981.xyz/bp-report-service/pkg/db"
	dbMocks "liyu1981.xyz/bp-report-service/pkg/db/mocks"
)

var testNow = time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

// GetBPWithMemorySqlite wires a BP to a fresh in-memory sqlite store and a
// temp report directory, with the clock pinned to testNow.
func GetBPWithMemorySqlite(t *testing.T, pageLimit int) (*BP, *db.DB, *blob.DirStore) {
	store, err := db.Open(db.UseMemorySqliteDialector(), pageLimit)
	require.NoError(t, err)

	objects, err := blob.NewDirStore(t.TempDir())
	require.NoError(t, err)

	b := New(store, objects)
	b.Now = fixedClock
	return b, store, objects
}

func GetBPWithMocks(t *testing.T) (*gomock.Controller, *BP, *dbMocks.MockReadingStore, *blobMocks.MockObjectStore) {
	ctrl := gomock.NewController(t)

	store := dbMocks.NewMockReadingStore(ctrl)
	objects := blobMocks.NewMockObjectStore(ctrl)

	b := New(store, objects)
	b.Now = fixedClock
	return ctrl, b, store, objects
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
