// Package app builds the stores and the BP core from configuration. Each
// entry point calls Build once at start-up and injects the result.
package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"liyu1981.xyz/bp-report-service/pkg/blob"
	"liyu1981.xyz/bp-report-service/pkg/bp"
	"liyu1981.xyz/bp-report-service/pkg/common"
	"liyu1981.xyz/bp-report-service/pkg/db"
)

// awsConfigLoader is swapped in tests so no credentials are needed.
var awsConfigLoader = func(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx)
}

type builder struct {
	cfg    *common.Config
	awsCfg *aws.Config
}

func (b *builder) aws(ctx context.Context) (aws.Config, error) {
	if b.awsCfg == nil {
		cfg, err := awsConfigLoader(ctx)
		if err != nil {
			return aws.Config{}, fmt.Errorf("load aws config: %w", err)
		}
		b.awsCfg = &cfg
	}
	return *b.awsCfg, nil
}

func (b *builder) readingStore(ctx context.Context) (db.ReadingStore, error) {
	switch b.cfg.DBType {
	case common.DBTypeDynamoDB:
		awsCfg, err := b.aws(ctx)
		if err != nil {
			return nil, err
		}
		return db.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), b.cfg.TableName, b.cfg.ScanPageLimit), nil
	case common.DBTypeFile:
		return db.Open(db.UseSqliteDialector(b.cfg.DBPath), b.cfg.ScanPageLimit)
	case common.DBTypeMemory:
		return db.Open(db.UseMemorySqliteDialector(), b.cfg.ScanPageLimit)
	default:
		return nil, fmt.Errorf("unknown %s: %s", common.EnvKeyBPDBType, b.cfg.DBType)
	}
}

// objectStore runs on the first report write, not in Build, so the ingestion
// function starts with TABLE_NAME alone.
func (b *builder) objectStore(ctx context.Context) (blob.ObjectStore, error) {
	if b.cfg.BucketName == "" {
		common.GetLogger().Info("storing reports in local directory", zap.String("dir", b.cfg.ReportsDir))
		return blob.NewDirStore(b.cfg.ReportsDir)
	}
	awsCfg, err := b.aws(ctx)
	if err != nil {
		return nil, err
	}
	return blob.NewS3Store(s3.NewFromConfig(awsCfg), b.cfg.BucketName), nil
}

func Build(ctx context.Context, cfg *common.Config) (*bp.BP, error) {
	logger := common.GetLogger()

	b := &builder{cfg: cfg}

	store, err := b.readingStore(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("BP core created with:",
		zap.String("db_type", cfg.DBType),
		zap.String("table", cfg.TableName),
		zap.String("bucket", cfg.BucketName),
		zap.Int("scan_page_limit", cfg.ScanPageLimit))

	return bp.New(store, blob.NewLazyStore(b.objectStore)), nil
}
