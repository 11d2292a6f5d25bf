package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"liyu1981.xyz/bp-report-service/pkg/common"
	"liyu1981.xyz/bp-report-service/pkg/models"
)

// DB is the sqlite-backed ReadingStore used for local development and tests.
type DB struct {
	Conn      *gorm.DB
	PageLimit int
}

func Open(dialector gorm.Dialector, pageLimit int) (*DB, error) {
	logger := common.GetLoggerWith(common.LoggerNameStore)

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if err := conn.AutoMigrate(&models.Reading{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed")

	if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		return nil, fmt.Errorf("failed to set sqlite journal mode: %w", err)
	}

	return &DB{Conn: conn, PageLimit: pageLimitOrDefault(pageLimit)}, nil
}

func UseSqliteDialector(dbPath string) gorm.Dialector {
	if dbPath == "" {
		dbPath = "readings.db"
	}
	return sqlite.Open(dbPath)
}

// UseMemorySqliteDialector returns a private in-memory database. The shared
// cache keeps it alive across the connections of one gorm pool.
func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func (d *DB) PutReading(ctx context.Context, reading *models.Reading) error {
	return d.Conn.WithContext(ctx).Create(reading).Error
}

// ScanReadings pages through the table ordered by reading_id, using the last
// id of each page as the continuation key.
func (d *DB) ScanReadings(ctx context.Context) ([]models.Reading, error) {
	limit := pageLimitOrDefault(d.PageLimit)

	var readings []models.Reading
	lastKey := ""
	for {
		var page []models.Reading
		query := d.Conn.WithContext(ctx).Order("reading_id").Limit(limit)
		if lastKey != "" {
			query = query.Where("reading_id > ?", lastKey)
		}
		if err := query.Find(&page).Error; err != nil {
			return nil, err
		}

		readings = append(readings, page...)
		if len(page) < limit {
			return readings, nil
		}
		lastKey = page[len(page)-1].ReadingID
	}
}
